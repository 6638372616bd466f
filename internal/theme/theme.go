// Package theme holds the built-in design themes and their option schemas.
// Themes are looked up through an explicit registration table populated at
// process start and read-only afterward, so concurrent renders need no
// locking.
package theme

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/xeipuuv/gojsonschema"

	"cvgen/internal/model"
	"cvgen/internal/render"
)

// Options are the recognized design options shared by the built-in themes.
// Unknown keys in the input are rejected by the theme's schema.
type Options struct {
	FontSize           string
	PageSize           string
	Color              string
	DisablePageNumbers bool
	ShowLastUpdated    bool
}

// AccentHex returns the accent color as the uppercase hex digits xcolor's
// HTML model expects.
func (o Options) AccentHex() string {
	return strings.ToUpper(strings.TrimPrefix(o.Color, "#"))
}

func defaultOptions() Options {
	return Options{
		FontSize: "10pt",
		PageSize: "a4paper",
		Color:    "#004f90",
	}
}

// optionsSchema validates the raw design option mapping. The pattern keeps
// colors to hex form so they can be spliced into the LaTeX preamble.
func optionsSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"font_size":              map[string]any{"enum": []any{"10pt", "11pt", "12pt"}},
			"page_size":              map[string]any{"enum": []any{"a4paper", "letterpaper"}},
			"color":                  map[string]any{"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
			"disable_page_numbering": map[string]any{"type": "boolean"},
			"show_last_updated_date": map[string]any{"type": "boolean"},
		},
		"additionalProperties": false,
	}
}

// Theme is one registered design: a named LaTeX preamble plus the CSS used
// for the HTML rendering, both driven by validated options.
type Theme struct {
	name     string
	opts     Options
	preamble *template.Template
	css      string
}

func (t *Theme) Name() string { return t.name }

// CSS returns the stylesheet for the HTML page shell.
func (t *Theme) CSS() string {
	return strings.ReplaceAll(t.css, "ACCENT", t.opts.Color)
}

// Preamble renders the theme's LaTeX preamble for its options. A preamble
// template referencing an undefined field fails with a RenderError naming
// the template.
func (t *Theme) Preamble() (string, error) {
	var buf bytes.Buffer
	if err := t.preamble.Execute(&buf, t.opts); err != nil {
		return "", &render.RenderError{Template: t.name + " preamble", Field: missingField(err), Err: err}
	}
	return buf.String(), nil
}

var missingFieldRe = regexp.MustCompile(`can't evaluate field (\S+)`)

func missingField(err error) string {
	m := missingFieldRe.FindStringSubmatch(err.Error())
	if m == nil {
		return ""
	}
	return strings.Trim(m[1], `"`)
}

// ApplyOptions validates a raw option mapping against the theme schema and
// applies it on top of the defaults. Unknown keys and out-of-range values
// come back as collected field errors with design.-prefixed paths, the same
// user-fixable class the document validators produce.
func (t *Theme) ApplyOptions(raw map[string]any) error {
	res, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(optionsSchema()),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("theme %s: validate options: %w", t.name, err)
	}
	if !res.Valid() {
		var errs model.ErrorList
		for _, e := range res.Errors() {
			errs.Add(model.NewFieldError("design."+e.Field(), "", "%s", e.Description()))
		}
		return errs.Err()
	}

	if v, ok := raw["font_size"].(string); ok {
		t.opts.FontSize = v
	}
	if v, ok := raw["page_size"].(string); ok {
		t.opts.PageSize = v
	}
	if v, ok := raw["color"].(string); ok {
		t.opts.Color = v
	}
	if v, ok := raw["disable_page_numbering"].(bool); ok {
		t.opts.DisablePageNumbers = v
	}
	if v, ok := raw["show_last_updated_date"].(bool); ok {
		t.opts.ShowLastUpdated = v
	}
	return nil
}

// Constructor builds a fresh theme instance with default options.
type Constructor func() *Theme

var registry = map[string]Constructor{}

// Register adds a theme constructor to the table. It is called from init
// functions only; the table is read-only once the process is up.
func Register(name string, c Constructor) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("theme %q registered twice", name))
	}
	registry[name] = c
}

// New looks a theme up by name.
func New(name string) (*Theme, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q, available: %s", name, strings.Join(Names(), ", "))
	}
	return c(), nil
}

// Names lists the registered themes sorted by name.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
