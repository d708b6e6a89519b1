package summary

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"finviz/internal/config"
	"finviz/pkg/contracts/domain"
)

// Summary is what a finished run reports on the console
type Summary struct {
	// HTMLPath is printed as given, normally the configured output name
	HTMLPath string
	// Exports lists side artifacts written by the run
	Exports  []string
	Snapshot string
	Total    int
	Outcomes []domain.OutcomeCount
}

// Printer writes run summaries
type Printer struct {
	out     io.Writer
	success *color.Color
	heading *color.Color
}

// NewPrinter creates a printer writing to out. Colors follow fatih/color's
// terminal detection.
func NewPrinter(out io.Writer) *Printer {
	return newPrinter(out, !color.NoColor)
}

// NewPlainPrinter creates a printer that never emits color codes
func NewPlainPrinter(out io.Writer) *Printer {
	return newPrinter(out, false)
}

func newPrinter(out io.Writer, colored bool) *Printer {
	p := &Printer{
		out:     out,
		success: color.New(color.FgGreen),
		heading: color.New(color.Bold),
	}
	if colored {
		p.success.EnableColor()
		p.heading.EnableColor()
	} else {
		p.success.DisableColor()
		p.heading.DisableColor()
	}
	return p
}

// Print writes the summary: the saved artifacts, the number of students and
// the frequency of each outcome
func (p *Printer) Print(s Summary) error {
	if _, err := p.success.Fprintln(p.out, config.MsgChartSaved); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "HTML: %s\n", s.HTMLPath)
	for _, path := range s.Exports {
		fmt.Fprintf(p.out, "Export: %s\n", path)
	}
	if s.Snapshot != "" {
		fmt.Fprintf(p.out, "PNG: %s\n", s.Snapshot)
	}

	fmt.Fprintln(p.out)
	p.heading.Fprintln(p.out, config.MsgDataSummary)
	fmt.Fprintf(p.out, "Total students: %d\n", s.Total)

	fmt.Fprintln(p.out)
	p.heading.Fprintln(p.out, config.MsgOutcomeHeadline)

	table := tablewriter.NewWriter(p.out)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{domain.TargetColumn, "count"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, c := range s.Outcomes {
		table.Append([]string{c.Outcome, strconv.Itoa(c.Count)})
	}
	table.Render()

	return nil
}
