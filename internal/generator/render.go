package generator

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// templateFuncs are the helpers available to file-middleware templates.
var templateFuncs = template.FuncMap{
	"title": func(s string) string { return titleCaser.String(s) },
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"kebab": func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(s, "_", "-"), " ", "-"))
	},
}

// renderTemplate is the render capability handed to file middlewares. The
// body is a text/template; missing keys are errors so a template cannot
// silently render an empty field.
func (g *Generator) renderTemplate(body string, data map[string]any) (string, error) {
	tpl, err := template.New("body").Funcs(templateFuncs).Option("missingkey=error").Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse template body: %w", err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template body: %w", err)
	}
	return buf.String(), nil
}
