package notes

import (
	"strings"

	"github.com/aymerick/raymond"
)

// TemplateError reports a header or footer template that fails to compile
// or execute.
type TemplateError struct {
	Err error
}

func (e *TemplateError) Error() string {
	return "template error: " + e.Err.Error()
}

func (e *TemplateError) Unwrap() error { return e.Err }

// ParseVariables turns "key=value" pairs into a map. Only the first "="
// separates key from value. Entries without a key are ignored.
func ParseVariables(pairs []string) map[string]string {
	vars := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, _ := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = value
	}
	return vars
}

// TemplateData builds the placeholder values for header and footer
// templates. User variables override the built-in names.
func TemplateData(rc ReleaseContext, variables []string) map[string]string {
	data := map[string]string{
		"version":                 rc.NextTag,
		"version-number":          strings.TrimPrefix(rc.NextTag, "v"),
		"previous-version":        rc.LatestTag,
		"previous-version-number": strings.TrimPrefix(rc.LatestTag, "v"),
	}
	for k, v := range ParseVariables(variables) {
		data[k] = v
	}
	return data
}

// RenderTemplate renders tpl as a Handlebars template over data. Double
// braces HTML-escape the value, triple braces insert it as is, and unknown
// names render as the empty string. Block helpers such as {{#if name}}
// treat an empty value as false.
func RenderTemplate(tpl string, data map[string]string) (string, error) {
	compiled, err := raymond.Parse(tpl)
	if err != nil {
		return "", &TemplateError{Err: err}
	}
	if data == nil {
		data = map[string]string{}
	}
	out, err := compiled.Exec(data)
	if err != nil {
		return "", &TemplateError{Err: err}
	}
	return out, nil
}
