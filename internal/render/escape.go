// Package render turns a validated document into LaTeX, Markdown, and HTML
// text. Escaping and markup translation are pure functions over strings; all
// file I/O stays with the caller.
package render

import "strings"

// latexSpecials maps each LaTeX special character to its escaped form. The
// escaper works in a single pass over the input, so an escape sequence it
// emits is never re-escaped.
var latexSpecials = map[rune]string{
	'\\': `\textbackslash{}`,
	'#':  `\#`,
	'$':  `\$`,
	'%':  `\%`,
	'&':  `\&`,
	'_':  `\_`,
	'{':  `\{`,
	'}':  `\}`,
	'~':  `\textasciitilde{}`,
	'^':  `\textasciicircum{}`,
}

// EscapeLaTeX escapes the LaTeX special characters in literal user text.
// Text without special characters comes back unchanged.
func EscapeLaTeX(s string) string {
	if !strings.ContainsAny(s, `\#$%&_{}~^`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if esc, ok := latexSpecials[r]; ok {
			b.WriteString(esc)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// EscapeLaTeXURL escapes only the characters that break a \href argument,
// leaving the URL otherwise intact.
func EscapeLaTeXURL(s string) string {
	r := strings.NewReplacer("%", `\%`, "#", `\#`)
	return r.Replace(s)
}

// EscapeHTML escapes the HTML metacharacters in literal user text.
func EscapeHTML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

// EscapeMarkdown backslash-escapes the characters our Markdown subset would
// otherwise interpret as markup.
func EscapeMarkdown(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"*", `\*`,
		"[", `\[`,
		"]", `\]`,
	)
	return r.Replace(s)
}
