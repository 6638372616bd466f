package render

import "strings"

// Target selects the output syntax.
type Target int

const (
	TargetLaTeX Target = iota
	TargetMarkdown
	TargetHTML
)

func (t Target) String() string {
	switch t {
	case TargetLaTeX:
		return "latex"
	case TargetMarkdown:
		return "markdown"
	case TargetHTML:
		return "html"
	default:
		return "unknown"
	}
}

// Style is the surrounding typographic context a piece of text is rendered
// in. Inside a styled context the matching marker un-styles its span instead
// of doubling it, which is how explicit normal-text markers work.
type Style int

const (
	StyleNormal Style = iota
	StyleBold
	StyleItalic
)

type spanKind int

const (
	spanText spanKind = iota
	spanBold
	spanItalic
	spanLink
)

// span is one lexed piece of inline markup: literal text, a styled run, or a
// link. Styled runs and link labels hold literal text only; the subset does
// not nest.
type span struct {
	kind spanKind
	text string
	url  string
}

// parseInline lexes the Markdown subset: **bold**, *italic*, and
// [label](url). Unterminated markers fall back to literal text.
func parseInline(s string) []span {
	var spans []span
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			spans = append(spans, span{kind: spanText, text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "**"):
			end := strings.Index(s[i+2:], "**")
			if end < 0 || end == 0 {
				literal.WriteString("**")
				i += 2
				continue
			}
			flush()
			spans = append(spans, span{kind: spanBold, text: s[i+2 : i+2+end]})
			i += 2 + end + 2
		case s[i] == '*':
			end := strings.IndexByte(s[i+1:], '*')
			if end < 0 || end == 0 {
				literal.WriteByte('*')
				i++
				continue
			}
			flush()
			spans = append(spans, span{kind: spanItalic, text: s[i+1 : i+1+end]})
			i += 1 + end + 1
		case s[i] == '[':
			label, url, rest, ok := parseLink(s[i:])
			if !ok {
				literal.WriteByte('[')
				i++
				continue
			}
			flush()
			spans = append(spans, span{kind: spanLink, text: label, url: url})
			i += rest
		default:
			literal.WriteByte(s[i])
			i++
		}
	}
	flush()
	return spans
}

// parseLink matches a leading [label](url) and returns its length.
func parseLink(s string) (label, url string, length int, ok bool) {
	close := strings.IndexByte(s, ']')
	if close < 0 || close+1 >= len(s) || s[close+1] != '(' {
		return "", "", 0, false
	}
	end := strings.IndexByte(s[close+2:], ')')
	if end < 0 {
		return "", "", 0, false
	}
	return s[1:close], s[close+2 : close+2+end], close + 2 + end + 1, true
}

// Inline translates a field's Markdown subset into the target syntax. The
// literal text of every span is escaped for the target; the markup emitted
// around it is not, which is why translation happens before escaping rather
// than after. base is the typographic context the text lands in: a bold
// marker inside a bold context un-bolds its span, likewise for italics.
func Inline(s string, target Target, base Style) string {
	var b strings.Builder
	for _, sp := range parseInline(s) {
		writeSpan(&b, sp, target, base)
	}
	return b.String()
}

func writeSpan(b *strings.Builder, sp span, target Target, base Style) {
	text := escapeLiteral(sp.text, target)
	switch sp.kind {
	case spanText:
		b.WriteString(text)
	case spanBold:
		if base == StyleBold {
			wrap(b, target, "\\textmd{", "}", `<span style="font-weight:normal">`, "</span>", "", "", text)
			return
		}
		wrap(b, target, "\\textbf{", "}", "<b>", "</b>", "**", "**", text)
	case spanItalic:
		if base == StyleItalic {
			wrap(b, target, "\\textup{", "}", `<span style="font-style:normal">`, "</span>", "", "", text)
			return
		}
		wrap(b, target, "\\textit{", "}", "<i>", "</i>", "*", "*", text)
	case spanLink:
		switch target {
		case TargetLaTeX:
			b.WriteString(`\href{`)
			b.WriteString(EscapeLaTeXURL(sp.url))
			b.WriteString("}{")
			b.WriteString(text)
			b.WriteString("}")
		case TargetHTML:
			b.WriteString(`<a href="`)
			b.WriteString(EscapeHTML(sp.url))
			b.WriteString(`">`)
			b.WriteString(text)
			b.WriteString("</a>")
		default:
			b.WriteString("[")
			b.WriteString(text)
			b.WriteString("](")
			b.WriteString(sp.url)
			b.WriteString(")")
		}
	}
}

func wrap(b *strings.Builder, target Target, texOpen, texClose, htmlOpen, htmlClose, mdOpen, mdClose, text string) {
	switch target {
	case TargetLaTeX:
		b.WriteString(texOpen)
		b.WriteString(text)
		b.WriteString(texClose)
	case TargetHTML:
		b.WriteString(htmlOpen)
		b.WriteString(text)
		b.WriteString(htmlClose)
	default:
		b.WriteString(mdOpen)
		b.WriteString(text)
		b.WriteString(mdClose)
	}
}

func escapeLiteral(s string, target Target) string {
	switch target {
	case TargetLaTeX:
		return EscapeLaTeX(s)
	case TargetHTML:
		return EscapeHTML(s)
	default:
		return EscapeMarkdown(s)
	}
}
