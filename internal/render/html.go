package render

import (
	"embed"
	"html/template"
	"io"
	"sync"

	"curriculum-backend/internal/curriculum"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

const (
	PageForm = "form.tmpl"
)

var funcs = template.FuncMap{
	"heading":     Heading,
	"tierHeading": TierHeading,
	"totalLine":   TotalLine,
	"tierClass":   func(t curriculum.TierName) string { return string(t) },
	"emptyText":   func() string { return curriculum.EmptyMessage },
}

var (
	parseOnce sync.Once
	parsed    *template.Template
)

// Templates returns the embedded HTML templates, parsed once.
func Templates() *template.Template {
	parseOnce.Do(func() {
		parsed = template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFiles, "templates/*.tmpl"))
	})
	return parsed
}

// FormPage is the data the form template expects. View is nil until a submission succeeds.
type FormPage struct {
	Input string
	Error string
	View  *curriculum.View
}

// HTML writes the full form page with p's state.
func HTML(w io.Writer, p FormPage) error {
	return Templates().ExecuteTemplate(w, PageForm, p)
}
