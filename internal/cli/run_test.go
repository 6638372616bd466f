package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvgen/internal/cli"
)

const validCV = `
cv:
  name: Jane Doe
  sections:
    experience:
      - company: Initech
        position: Engineer
        start_date: 2022-06
        end_date: present
    skills:
      - label: Languages
        details: Go
`

func run(t *testing.T, args ...string) (cli.Result, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	res := cli.Run(context.Background(), args, &out, &errOut)
	return res, out.String(), errOut.String()
}

func TestParseInvocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		check    func(t *testing.T, inv cli.Invocation)
	}{
		{
			name: "render with skips and theme",
			args: []string{"render", "cv.yaml", "--dont-generate-pdf", "--dont-generate-png", "--theme", "modern"},
			check: func(t *testing.T, inv cli.Invocation) {
				assert.Equal(t, "cv.yaml", inv.InputPath)
				assert.True(t, inv.SkipPDF)
				assert.True(t, inv.SkipPNG)
				assert.False(t, inv.SkipMD)
				assert.Equal(t, "modern", inv.Theme)
			},
		},
		{
			name: "render with overrides",
			args: []string{"render", "cv.yaml", "--cv.name", "Jane Doe", "--cv.sections.education.1.institution", "New U"},
			check: func(t *testing.T, inv cli.Invocation) {
				require.Len(t, inv.Overrides, 2)
				assert.Equal(t, "cv.name", inv.Overrides[0].Path)
				assert.Equal(t, "Jane Doe", inv.Overrides[0].Value)
				assert.Equal(t, "cv.sections.education.1.institution", inv.Overrides[1].Path)
			},
		},
		{
			name:     "render without input",
			args:     []string{"render", "--theme", "modern"},
			wantCode: cli.ExitUsage,
		},
		{
			name:     "render with dotless unknown flag",
			args:     []string{"render", "cv.yaml", "--fast"},
			wantCode: cli.ExitUsage,
		},
		{
			name:     "override with bad index",
			args:     []string{"render", "cv.yaml", "--cv.sections.education.0.area", "CS"},
			wantCode: cli.ExitUsage,
		},
		{
			name:     "no arguments",
			args:     nil,
			wantCode: cli.ExitUsage,
		},
		{
			name:     "unknown command",
			args:     []string{"frobnicate"},
			wantCode: cli.ExitUsage,
		},
		{
			name:     "help exits zero",
			args:     []string{"help"},
			wantCode: cli.ExitOK,
		},
		{
			name: "new",
			args: []string{"new", "Jane Doe"},
			check: func(t *testing.T, inv cli.Invocation) {
				assert.Equal(t, "Jane Doe", inv.Name)
			},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			inv, err := cli.ParseInvocation(tc.args)
			if tc.check != nil {
				require.NoError(t, err)
				tc.check(t, inv)
				return
			}
			require.Error(t, err)
			var invErr *cli.InvocationError
			require.ErrorAs(t, err, &invErr)
			assert.Equal(t, tc.wantCode, invErr.ExitCode)
		})
	}
}

func TestRunRender(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cv.yaml")
	require.NoError(t, os.WriteFile(input, []byte(validCV), 0o644))

	res, out, _ := run(t, "render", input,
		"--dont-generate-pdf", "--dont-generate-png",
		"--output-dir", filepath.Join(dir, "out"))
	assert.Equal(t, cli.ExitOK, res.ExitCode)
	assert.Contains(t, out, "Jane_Doe_CV.tex")
	assert.Contains(t, out, "Jane_Doe_CV.md")
	assert.Contains(t, out, "Jane_Doe_CV.html")

	_, err := os.Stat(filepath.Join(dir, "out", "Jane_Doe_CV.tex"))
	assert.NoError(t, err)
}

func TestRunRenderValidationExitCode(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cv.yaml")
	bad := `
cv:
  name: Jane Doe
  sections:
    experience:
      - company: Initech
        position: Engineer
        start_date: 2023-05
        end_date: 2021-01
`
	require.NoError(t, os.WriteFile(input, []byte(bad), 0o644))

	res, _, errOut := run(t, "render", input,
		"--dont-generate-pdf", "--dont-generate-png",
		"--output-dir", filepath.Join(dir, "out"))
	assert.Equal(t, cli.ExitValidation, res.ExitCode)
	assert.Contains(t, errOut, "problem(s):")
	assert.Contains(t, errOut, "cv.sections.experience.1.start_date")
}

func TestRunRenderBadThemeOptionExitCode(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cv.yaml")
	withBadOption := validCV + `design:
  theme: classic
  margin: 2cm
`
	require.NoError(t, os.WriteFile(input, []byte(withBadOption), 0o644))

	res, _, errOut := run(t, "render", input,
		"--dont-generate-pdf", "--dont-generate-png",
		"--output-dir", filepath.Join(dir, "out"))
	assert.Equal(t, cli.ExitValidation, res.ExitCode)
	assert.Contains(t, errOut, "design.")
	assert.Contains(t, errOut, "margin")
}

func TestRunRenderBadOverridePath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cv.yaml")
	require.NoError(t, os.WriteFile(input, []byte(validCV), 0o644))

	res, _, errOut := run(t, "render", input,
		"--cv.nickname", "JD",
		"--dont-generate-pdf", "--dont-generate-png",
		"--output-dir", filepath.Join(dir, "out"))
	assert.Equal(t, cli.ExitValidation, res.ExitCode)
	assert.Contains(t, errOut, `override "cv.nickname"`)
}

func TestRunRenderMissingInputFile(t *testing.T) {
	res, _, errOut := run(t, "render", filepath.Join(t.TempDir(), "nope.yaml"),
		"--dont-generate-pdf", "--dont-generate-png")
	assert.Equal(t, cli.ExitInternalError, res.ExitCode)
	assert.Contains(t, errOut, "read input")
}

func TestRunNew(t *testing.T) {
	chdir(t, t.TempDir())

	res, out, _ := run(t, "new", "Jane Doe")
	assert.Equal(t, cli.ExitOK, res.ExitCode)
	assert.Contains(t, out, "Jane_Doe_CV.yaml")

	data, err := os.ReadFile("Jane_Doe_CV.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Jane Doe")

	// the starter must not be silently overwritten
	res, _, errOut := run(t, "new", "Jane Doe")
	assert.Equal(t, cli.ExitUsage, res.ExitCode)
	assert.Contains(t, errOut, "already exists")
}

func TestRunSchema(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "schema.json")
	res, _, _ := run(t, "schema", "-o", out)
	assert.Equal(t, cli.ExitOK, res.ExitCode)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Contains(t, schema, "properties")
}

func TestRunCreateTheme(t *testing.T) {
	chdir(t, t.TempDir())

	res, out, _ := run(t, "create-theme", "mytheme")
	assert.Equal(t, cli.ExitOK, res.ExitCode)
	assert.Contains(t, out, "mytheme")

	_, err := os.Stat(filepath.Join("mytheme", "preamble.tex.tmpl"))
	assert.NoError(t, err)
}

// chdir changes the working directory for the duration of the test,
// restoring the previous directory on cleanup (testing.T.Chdir needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
