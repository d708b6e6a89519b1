package chart

import (
	"encoding/json"
	"fmt"

	"finviz/internal/config"
	"finviz/pkg/contracts/domain"
)

// Spec is a faceted Vega-Lite specification
type Spec struct {
	Schema string   `json:"$schema"`
	Config Config   `json:"config"`
	Data   Data     `json:"data"`
	Facet  Facet    `json:"facet"`
	Spec   UnitSpec `json:"spec"`
}

// Config holds chart-wide styling
type Config struct {
	Background string     `json:"background"`
	View       ViewConfig `json:"view"`
	Axis       AxisConfig `json:"axis"`
}

type ViewConfig struct {
	StrokeWidth int    `json:"strokeWidth"`
	Fill        string `json:"fill"`
}

type AxisConfig struct {
	DomainColor string `json:"domainColor"`
	TickColor   string `json:"tickColor"`
}

// Data carries the inline rows of the chart
type Data struct {
	Values []domain.AggregationRow `json:"values"`
}

// Facet splits the chart into one column per factor
type Facet struct {
	Column FacetField `json:"column"`
}

// FacetField is the column facet channel. A nil Title is written as null,
// which hides the facet title.
type FacetField struct {
	Field  string   `json:"field"`
	Type   string   `json:"type"`
	Title  *string  `json:"title"`
	Sort   []string `json:"sort,omitempty"`
	Header Header   `json:"header"`
}

type Header struct {
	LabelFontSize   int    `json:"labelFontSize"`
	LabelFont       string `json:"labelFont"`
	LabelFontWeight string `json:"labelFontWeight"`
	LabelPadding    int    `json:"labelPadding"`
}

// UnitSpec is the bar chart drawn in every facet
type UnitSpec struct {
	Mark     Mark     `json:"mark"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Encoding Encoding `json:"encoding"`
}

type Mark struct {
	Type string `json:"type"`
}

type Encoding struct {
	X       PositionDef  `json:"x"`
	Y       PositionDef  `json:"y"`
	Color   ColorDef     `json:"color"`
	Order   OrderDef     `json:"order"`
	Tooltip []TooltipDef `json:"tooltip"`
}

type PositionDef struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
	Scale *Scale `json:"scale,omitempty"`
	Axis  *Axis  `json:"axis,omitempty"`
}

type Scale struct {
	Domain []interface{} `json:"domain,omitempty"`
	Range  []string      `json:"range,omitempty"`
}

type Axis struct {
	LabelFontSize int     `json:"labelFontSize,omitempty"`
	TitleFontSize int     `json:"titleFontSize,omitempty"`
	LabelFont     string  `json:"labelFont,omitempty"`
	TitleFont     string  `json:"titleFont,omitempty"`
	Grid          *bool   `json:"grid,omitempty"`
	GridOpacity   float64 `json:"gridOpacity,omitempty"`
	GridDash      []int   `json:"gridDash,omitempty"`
}

type ColorDef struct {
	Field  string  `json:"field"`
	Type   string  `json:"type"`
	Scale  *Scale  `json:"scale,omitempty"`
	Legend *Legend `json:"legend,omitempty"`
}

type Legend struct {
	Title         string `json:"title"`
	TitleFontSize int    `json:"titleFontSize"`
	LabelFontSize int    `json:"labelFontSize"`
	TitleFont     string `json:"titleFont"`
	LabelFont     string `json:"labelFont"`
	Orient        string `json:"orient"`
	FillColor     string `json:"fillColor"`
	StrokeColor   string `json:"strokeColor"`
	Padding       int    `json:"padding"`
	CornerRadius  int    `json:"cornerRadius"`
}

type OrderDef struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Sort  string `json:"sort"`
}

type TooltipDef struct {
	Field  string `json:"field"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Format string `json:"format,omitempty"`
}

// Options controls chart dimensions and styling
type Options struct {
	Width  int
	Height int
	Font   string
	// Colors are the bar colors of Graduate, Enrolled and Dropout
	Colors []string
}

// DefaultOptions returns the report's fixed styling
func DefaultOptions() Options {
	return OptionsFrom(config.Default().Chart)
}

// OptionsFrom builds chart options from configuration
func OptionsFrom(cfg config.ChartConfig) Options {
	colors := make([]string, len(cfg.Colors))
	copy(colors, cfg.Colors)
	return Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		Font:   cfg.Font,
		Colors: colors,
	}
}

// BuildSpec assembles the faceted bar chart of rows
func BuildSpec(rows []domain.AggregationRow, opts Options) (*Spec, error) {
	outcomes := domain.Outcomes()
	if len(opts.Colors) != len(outcomes) {
		return nil, fmt.Errorf("expected %d outcome colors, got %d", len(outcomes), len(opts.Colors))
	}

	values := make([]domain.AggregationRow, len(rows))
	copy(values, rows)

	outcomeDomain := make([]interface{}, len(outcomes))
	for i, o := range outcomes {
		outcomeDomain[i] = string(o)
	}

	factors := domain.Factors()
	factorOrder := make([]string, len(factors))
	for i, f := range factors {
		factorOrder[i] = string(f)
	}

	grid := true

	return &Spec{
		Schema: fmt.Sprintf("https://vega.github.io/schema/vega-lite/v%s.json", config.VegaLiteVersion),
		Config: Config{
			Background: config.ChartBackgroundColor,
			View:       ViewConfig{StrokeWidth: 0, Fill: config.ChartBackgroundColor},
			Axis:       AxisConfig{DomainColor: config.AxisDomainColor, TickColor: config.AxisDomainColor},
		},
		Data: Data{Values: values},
		Facet: Facet{Column: FacetField{
			Field: "Factor",
			Type:  "nominal",
			Sort:  factorOrder,
			Header: Header{
				LabelFontSize:   config.FacetHeaderFontSize,
				LabelFont:       opts.Font,
				LabelFontWeight: "bold",
				LabelPadding:    config.FacetHeaderPadding,
			},
		}},
		Spec: UnitSpec{
			Mark:   Mark{Type: "bar"},
			Width:  opts.Width,
			Height: opts.Height,
			Encoding: Encoding{
				X: PositionDef{
					Field: "Status",
					Type:  "nominal",
					Title: "Status (Yes / No)",
					Axis: &Axis{
						LabelFontSize: config.AxisLabelFontSize,
						TitleFontSize: config.AxisTitleFontSize,
						LabelFont:     opts.Font,
						TitleFont:     opts.Font,
					},
				},
				Y: PositionDef{
					Field: "Percentage",
					Type:  "quantitative",
					Title: "Percentage of Students (%)",
					Scale: &Scale{Domain: []interface{}{0, 100}},
					Axis: &Axis{
						LabelFontSize: config.AxisYLabelFontSize,
						TitleFontSize: config.AxisTitleFontSize,
						LabelFont:     opts.Font,
						TitleFont:     opts.Font,
						Grid:          &grid,
						GridOpacity:   config.GridOpacity,
						GridDash:      []int{3, 3},
					},
				},
				Color: ColorDef{
					Field: "Outcome",
					Type:  "nominal",
					Scale: &Scale{Domain: outcomeDomain, Range: opts.Colors},
					Legend: &Legend{
						Title:         "Outcome",
						TitleFontSize: config.LegendTitleFontSize,
						LabelFontSize: config.LegendLabelFontSize,
						TitleFont:     opts.Font,
						LabelFont:     opts.Font,
						Orient:        "right",
						FillColor:     config.ChartBackgroundColor,
						StrokeColor:   config.LegendStrokeColor,
						Padding:       config.LegendPadding,
						CornerRadius:  config.LegendCornerRadius,
					},
				},
				Order: OrderDef{Field: "Outcome", Type: "nominal", Sort: "ascending"},
				Tooltip: []TooltipDef{
					{Field: "Factor", Type: "nominal", Title: "Financial Factor"},
					{Field: "Status", Type: "nominal", Title: "Status"},
					{Field: "Outcome", Type: "nominal", Title: "Outcome"},
					{Field: "Percentage", Type: "quantitative", Title: "Percentage", Format: config.PercentageTooltipSpec},
				},
			},
		},
	}, nil
}

// JSON encodes the spec. encoding/json escapes <, > and &, so the result
// is safe inside a script element.
func (s *Spec) JSON() ([]byte, error) {
	return json.Marshal(s)
}
