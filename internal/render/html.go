package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"cvgen/internal/model"
)

// pageShell wraps the rendered body in a standalone HTML page. The body is
// built by the structured renderers below and injected pre-escaped.
const pageShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
{{.CSS}}
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`

var pageTemplate = template.Must(template.New("page").Parse(pageShell))

// RenderHTML produces the HTML rendering, derived from the same structure as
// the Markdown output and wrapped in a page shell carrying the theme's CSS.
func RenderHTML(doc *model.Document, css string) (string, error) {
	body, err := htmlBody(doc)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	data := struct {
		Title string
		CSS   template.CSS
		Body  template.HTML
	}{
		Title: doc.CV.Name,
		CSS:   template.CSS(css),
		Body:  template.HTML(body),
	}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", &RenderError{Template: "html page", Err: err}
	}
	return buf.String(), nil
}

func htmlBody(doc *model.Document) (string, error) {
	var b strings.Builder
	cv := doc.CV

	fmt.Fprintf(&b, "<header>\n<h1>%s</h1>\n", Inline(cv.Name, TargetHTML, StyleNormal))
	if cv.Headline != "" {
		fmt.Fprintf(&b, "<p class=\"headline\">%s</p>\n", Inline(cv.Headline, TargetHTML, StyleNormal))
	}
	if contacts := htmlContacts(cv); contacts != "" {
		fmt.Fprintf(&b, "<p class=\"contacts\">%s</p>\n", contacts)
	}
	b.WriteString("</header>\n")

	for _, title := range cv.SectionOrder {
		sec := cv.Sections[title]
		fmt.Fprintf(&b, "<section>\n<h2>%s</h2>\n", EscapeHTML(title))
		for _, entry := range sec.Entries {
			if err := writeHTMLEntry(&b, entry, doc.Locale); err != nil {
				return "", err
			}
		}
		b.WriteString("</section>\n")
	}
	return b.String(), nil
}

func htmlContacts(cv *model.CV) string {
	var parts []string
	if cv.Location != "" {
		parts = append(parts, EscapeHTML(cv.Location))
	}
	if cv.Email != "" {
		parts = append(parts, fmt.Sprintf("<a href=\"mailto:%s\">%s</a>", EscapeHTML(cv.Email), EscapeHTML(cv.Email)))
	}
	if cv.Phone != "" {
		parts = append(parts, EscapeHTML(cv.Phone))
	}
	if cv.Website != "" {
		parts = append(parts, fmt.Sprintf("<a href=\"%s\">%s</a>",
			EscapeHTML(cv.Website), EscapeHTML(model.LinkLabel(cv.Website))))
	}
	for _, sn := range cv.Social {
		parts = append(parts, fmt.Sprintf("<a href=\"%s\">%s</a>",
			EscapeHTML(sn.URL()), EscapeHTML(sn.Network+"/"+sn.Username)))
	}
	return strings.Join(parts, " · ")
}

func writeHTMLEntry(b *strings.Builder, entry model.Entry, loc *model.Locale) error {
	switch e := entry.(type) {
	case *model.EducationEntry:
		sub := e.Area
		if e.StudyType != "" {
			sub = e.StudyType + " in " + e.Area
		}
		writeHTMLEvent(b, e.Institution, sub,
			dateColumn(e.StartDate, e.EndDate, e.Date, loc), e.Location, e.Summary, e.Highlights)
	case *model.ExperienceEntry:
		writeHTMLEvent(b, e.Position, e.Company,
			dateColumn(e.StartDate, e.EndDate, e.Date, loc), e.Location, e.Summary, e.Highlights)
	case *model.PublicationEntry:
		fmt.Fprintf(b, "<div class=\"entry\">\n<h3>%s</h3>\n", Inline(e.Title, TargetHTML, StyleBold))
		fmt.Fprintf(b, "<p>%s", EscapeHTML(strings.Join(e.Authors, ", ")))
		if date := e.Date.Format(loc); date != "" {
			fmt.Fprintf(b, " — %s", EscapeHTML(date))
		}
		b.WriteString("</p>\n")
		if e.DOI != "" {
			fmt.Fprintf(b, "<p><a href=\"https://doi.org/%s\">doi.org/%s</a></p>\n",
				EscapeHTML(e.DOI), EscapeHTML(e.DOI))
		} else if e.URL != "" {
			fmt.Fprintf(b, "<p><a href=\"%s\">%s</a></p>\n",
				EscapeHTML(e.URL), EscapeHTML(model.LinkLabel(e.URL)))
		}
		b.WriteString("</div>\n")
	case *model.NormalEntry:
		writeHTMLEvent(b, e.Name, "",
			dateColumn(e.StartDate, e.EndDate, e.Date, loc), e.Location, e.Summary, e.Highlights)
	case *model.OneLineEntry:
		fmt.Fprintf(b, "<p><b>%s:</b> %s</p>\n",
			EscapeHTML(e.Label), Inline(e.Details, TargetHTML, StyleNormal))
	case *model.BulletEntry:
		fmt.Fprintf(b, "<ul><li>%s</li></ul>\n", Inline(e.Bullet, TargetHTML, StyleNormal))
	default:
		return &RenderError{Template: "html body", Err: fmt.Errorf("no renderer for entry type %T", entry)}
	}
	return nil
}

func writeHTMLEvent(b *strings.Builder, title, subtitle, dates, location, summary string, highlights []string) {
	b.WriteString("<div class=\"entry\">\n")
	fmt.Fprintf(b, "<h3>%s</h3>\n", Inline(title, TargetHTML, StyleBold))
	var meta []string
	if subtitle != "" {
		meta = append(meta, Inline(subtitle, TargetHTML, StyleNormal))
	}
	if dates != "" {
		meta = append(meta, EscapeHTML(dates))
	}
	if location != "" {
		meta = append(meta, EscapeHTML(location))
	}
	if len(meta) > 0 {
		fmt.Fprintf(b, "<p class=\"meta\">%s</p>\n", strings.Join(meta, " · "))
	}
	if summary != "" {
		fmt.Fprintf(b, "<p>%s</p>\n", Inline(summary, TargetHTML, StyleNormal))
	}
	if len(highlights) > 0 {
		b.WriteString("<ul>\n")
		for _, h := range highlights {
			fmt.Fprintf(b, "<li>%s</li>\n", Inline(h, TargetHTML, StyleNormal))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</div>\n")
}
