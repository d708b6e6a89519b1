package chart

import (
	"fmt"
	"html/template"
	"io"
	"log/slog"

	"finviz/internal/config"
	apperrors "finviz/internal/errors"
	"finviz/internal/files"
	"finviz/internal/infrastructure"
)

// PageTitle is the title of the generated HTML page
const PageTitle = "Financial Stability and Academic Outcomes"

const cdnBase = "https://cdn.jsdelivr.net/npm/"

var pageTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    #vis.vega-embed { width: 100%; display: flex; }
    #vis.vega-embed details, #vis.vega-embed details summary { position: relative; }
  </style>
  <script type="text/javascript" src="{{.VegaURL}}"></script>
  <script type="text/javascript" src="{{.VegaLiteURL}}"></script>
  <script type="text/javascript" src="{{.VegaEmbedURL}}"></script>
</head>
<body>
  <div id="vis"></div>
  <script>
    (function(vegaEmbed) {
      var spec = {{.Spec}};
      var embedOpt = {"mode": "vega-lite"};

      function showError(el, error) {
        el.innerHTML = ('<div style="color:red;">'
                        + '<p>JavaScript Error: ' + error.message + '</p>'
                        + "<p>This usually means there's a typo in your chart specification. "
                        + "See the javascript console for the full traceback.</p>"
                        + '</div>');
        throw error;
      }
      const el = document.getElementById('vis');
      vegaEmbed("#vis", spec, embedOpt)
        .catch(error => showError(el, error));
    })(vegaEmbed);
  </script>
</body>
</html>
`))

type pageData struct {
	Title        string
	VegaURL      string
	VegaLiteURL  string
	VegaEmbedURL string
	Spec         template.JS
}

// Renderer writes chart specs as self-rendering HTML pages
type Renderer struct {
	logger *slog.Logger
	files  *files.Manager
}

// NewRenderer creates a renderer. A nil logger uses the global logger.
func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{
		logger: infrastructure.WithComponent(logger, "chart"),
		files:  files.NewManager(logger),
	}
}

// RenderHTML writes the page embedding spec to w
func RenderHTML(w io.Writer, spec *Spec) error {
	specJSON, err := spec.JSON()
	if err != nil {
		return apperrors.NewRenderError("failed to encode chart spec", err)
	}

	data := pageData{
		Title:        PageTitle,
		VegaURL:      fmt.Sprintf("%svega@%s", cdnBase, config.VegaVersion),
		VegaLiteURL:  fmt.Sprintf("%svega-lite@%s", cdnBase, config.VegaLiteVersion),
		VegaEmbedURL: fmt.Sprintf("%svega-embed@%s", cdnBase, config.VegaEmbedVersion),
		Spec:         template.JS(specJSON),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return apperrors.NewRenderError("failed to render chart page", err)
	}
	return nil
}

// WriteHTML atomically writes the page embedding spec to path
func (r *Renderer) WriteHTML(path string, spec *Spec) error {
	err := r.files.Write(path, func(w io.Writer) error {
		return RenderHTML(w, spec)
	})
	if err != nil {
		if apperrors.TypeOf(err) == apperrors.ErrTypeRender {
			return err
		}
		return apperrors.NewStorageError(fmt.Sprintf("failed to write chart to %s", path), err)
	}

	r.logger.Info("Chart written",
		slog.String("path", path),
		slog.Int("rows", len(spec.Data.Values)),
		slog.Int64("size", files.FileSize(path)))
	return nil
}
