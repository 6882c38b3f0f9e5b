package output

import (
	"context"
	"html/template"
	"io"
)

// ResultsTemplate renders a report's display lines as a standalone page.
var ResultsTemplate = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html>
<head><title>Time log statistics</title></head>
<body>
<h1>Time log statistics</h1>
{{range .Lines}}<pre>{{.}}</pre>
{{end}}{{if .Verbose}}{{with .Skipped}}<h2>Skipped lines</h2>
<ul>
{{range .}}<li>line {{.Line}}: <code>{{.Text}}</code> ({{.Err}})</li>
{{end}}</ul>
{{end}}{{end}}<p><a href="/">Parse another log</a></p>
</body>
</html>
`))

// HTMLFormatter formats reports as an HTML page.
type HTMLFormatter struct {
	opts FormatOptions
}

// NewHTMLFormatter creates a new HTML formatter with the given options.
func NewHTMLFormatter(opts FormatOptions) *HTMLFormatter {
	return &HTMLFormatter{opts: opts}
}

// Name returns the format name.
func (f *HTMLFormatter) Name() string {
	return "html"
}

// Format renders the report as HTML.
func (f *HTMLFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	return ResultsTemplate.Execute(w, struct {
		*Report
		Verbose bool
	}{report, f.opts.Verbose})
}
