package render

import "fmt"

// RenderError reports a template referencing a field the rendered object does
// not carry. These are fail-fast: they indicate a template/model mismatch the
// document author cannot fix by editing their CV.
type RenderError struct {
	Template string
	Field    string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("render %s: undefined field %q", e.Template, e.Field)
	}
	return fmt.Sprintf("render %s: %v", e.Template, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
