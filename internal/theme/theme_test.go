package theme_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvgen/internal/model"
	"cvgen/internal/theme"
)

func TestBuiltinRegistry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"classic", "engineering", "modern"}, theme.Names())

	for _, name := range theme.Names() {
		th, err := theme.New(name)
		require.NoError(t, err)
		assert.Equal(t, name, th.Name())
	}
}

func TestNewUnknownTheme(t *testing.T) {
	t.Parallel()

	_, err := theme.New("brutalist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "brutalist"`)
	assert.Contains(t, err.Error(), "classic")
}

func TestApplyOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     map[string]any
		wantErr string
	}{
		{name: "empty keeps defaults", raw: map[string]any{}},
		{name: "valid overrides", raw: map[string]any{
			"font_size": "12pt", "page_size": "letterpaper", "color": "#aa33cc",
			"disable_page_numbering": true,
		}},
		{name: "unknown key", raw: map[string]any{"margin": "2cm"},
			wantErr: "design.(root): Additional property margin is not allowed"},
		{name: "bad font size", raw: map[string]any{"font_size": "13pt"}, wantErr: "design.font_size"},
		{name: "non hex color", raw: map[string]any{"color": "blue"}, wantErr: "design.color"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			th, err := theme.New("classic")
			require.NoError(t, err)

			err = th.ApplyOptions(tc.raw)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)

				// option problems are user-fixable and must surface as the
				// same collected field errors document validation produces
				list, ok := model.AsErrorList(err)
				require.True(t, ok)
				var fieldErr *model.FieldError
				assert.ErrorAs(t, list[0], &fieldErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPreambleRendersOptions(t *testing.T) {
	t.Parallel()

	th, err := theme.New("classic")
	require.NoError(t, err)
	require.NoError(t, th.ApplyOptions(map[string]any{"font_size": "11pt", "color": "#aa33cc"}))

	out, err := th.Preamble()
	require.NoError(t, err)
	assert.Contains(t, out, "11pt")
	// xcolor's HTML model wants bare uppercase hex digits
	assert.Contains(t, out, "{AA33CC}")
	assert.NotContains(t, out, "#aa33cc")
}

func TestCSSCarriesAccentColor(t *testing.T) {
	t.Parallel()

	th, err := theme.New("modern")
	require.NoError(t, err)
	require.NoError(t, th.ApplyOptions(map[string]any{"color": "#112233"}))

	css := th.CSS()
	assert.Contains(t, css, "#112233")
	assert.NotContains(t, css, "ACCENT")
}

func TestScaffold(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	dir, err := theme.Scaffold("mytheme", parent)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, "mytheme"), dir)

	for _, name := range []string{"preamble.tex.tmpl", "style.css", "options.yaml"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected scaffold file %s", name)
	}

	// a second scaffold into the same place must not clobber the first
	_, err = theme.Scaffold("mytheme", parent)
	require.Error(t, err)
}

func TestScaffoldRejectsBuiltinNames(t *testing.T) {
	t.Parallel()

	_, err := theme.Scaffold("classic", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "built-in")
}
