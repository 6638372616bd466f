package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvgen/internal/model"
	"cvgen/internal/render"
)

const sampleInput = `
cv:
  name: Jane Doe
  headline: Systems Engineer
  location: Ankara, Turkey
  email: jane@example.com
  website: https://www.janedoe.dev/about
  social_networks:
    - network: GitHub
      username: janedoe
  sections:
    experience:
      - company: Initech
        position: Staff Engineer at **Initech**
        start_date: 2022-06
        end_date: present
        highlights:
          - Cut build times by 40%
          - Led C++ & Python_2 migration
    education:
      - institution: State University
        area: Computer Science
        degree: BSc
        start_date: 2018
        end_date: 2022
    publications:
      - title: A Result
        authors: [Jane Doe]
        doi: 10.1000/182
        date: 2023-04
    skills:
      - label: Languages
        details: Go, Python
    interests:
      - "Hiking & camping"
`

func sampleDocument(t *testing.T) *model.Document {
	t.Helper()
	raw, order, err := model.ParseDocument([]byte(sampleInput))
	require.NoError(t, err)
	doc, err := model.NewDocument(raw, order)
	require.NoError(t, err)
	return doc
}

func TestRenderLaTeX(t *testing.T) {
	t.Parallel()

	doc := sampleDocument(t)
	out, err := render.RenderLaTeX(doc, "\\documentclass{article}\n")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "\\documentclass{article}\n"))
	assert.Contains(t, out, "\\begin{document}")
	assert.Contains(t, out, "\\end{document}")
	assert.Contains(t, out, "\\cvheader{Jane Doe}{Systems Engineer}")

	// sections come out in input order
	expIdx := strings.Index(out, "\\cvsection{experience}")
	eduIdx := strings.Index(out, "\\cvsection{education}")
	require.Greater(t, expIdx, 0)
	require.Greater(t, eduIdx, 0)
	assert.Less(t, expIdx, eduIdx)

	// bold marker in a bold title column un-bolds instead of nesting
	assert.Contains(t, out, "Staff Engineer at \\textmd{Initech}")

	assert.Contains(t, out, `Cut build times by 40\%`)
	assert.Contains(t, out, `Led C++ \& Python\_2 migration`)
	assert.Contains(t, out, "June 2022 – present")
	assert.Contains(t, out, "BSc in Computer Science")
	assert.Contains(t, out, `\href{https://doi.org/10.1000/182}{doi.org/10.1000/182}`)
	assert.Contains(t, out, `\cvbullet{Hiking \& camping}`)
	assert.Contains(t, out, `\href{https://github.com/janedoe}{GitHub/janedoe}`)
	assert.Contains(t, out, `\href{https://www.janedoe.dev/about}{janedoe.dev}`)
}

// % and # are legal in the local part of an address and must not leak into
// the \href argument unescaped.
func TestRenderLaTeXEscapesEmailAddress(t *testing.T) {
	t.Parallel()

	raw, order, err := model.ParseDocument([]byte(`
cv:
  name: Jane Doe
  email: jane%doe#root@example.com
`))
	require.NoError(t, err)
	doc, err := model.NewDocument(raw, order)
	require.NoError(t, err)

	out, err := render.RenderLaTeX(doc, "")
	require.NoError(t, err)
	assert.Contains(t, out, `\href{mailto:jane\%doe\#root@example.com}{jane\%doe\#root@example.com}`)
	assert.NotContains(t, out, "mailto:jane%doe")
}

func TestRenderLaTeXOngoingRangeCarriesDuration(t *testing.T) {
	t.Parallel()

	doc := sampleDocument(t)
	out, err := render.RenderLaTeX(doc, "")
	require.NoError(t, err)

	// the experience entry runs 2022-06 to present; the column shows the
	// range plus a parenthesized elapsed span
	i := strings.Index(out, "June 2022 – present (")
	require.Greater(t, i, 0, "expected a duration suffix on the ongoing range")
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	doc := sampleDocument(t)
	out, err := render.RenderMarkdown(doc)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Jane Doe\n"))
	assert.Contains(t, out, "## experience")
	assert.Contains(t, out, "**Staff Engineer at Initech**")
	assert.Contains(t, out, "- Led C++ & Python_2 migration")
	assert.Contains(t, out, "[jane@example.com](mailto:jane@example.com)")
	assert.Contains(t, out, "[GitHub/janedoe](https://github.com/janedoe)")
	assert.Contains(t, out, "[doi.org/10.1000/182](https://doi.org/10.1000/182)")
	assert.Contains(t, out, "**Languages:** Go, Python")
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	doc := sampleDocument(t)
	out, err := render.RenderHTML(doc, "body { color: black }")
	require.NoError(t, err)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "body { color: black }")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Hiking &amp; camping")
	assert.Contains(t, out, `<a href="https://github.com/janedoe">GitHub/janedoe</a>`)
}
