package render

import (
	"fmt"
	"strings"

	"cvgen/internal/model"
)

// RenderMarkdown produces the Markdown rendering of a document. It mirrors
// the LaTeX body structure with one rendering function per entry type.
func RenderMarkdown(doc *model.Document) (string, error) {
	var b strings.Builder
	cv := doc.CV

	fmt.Fprintf(&b, "# %s\n", Inline(cv.Name, TargetMarkdown, StyleNormal))
	if cv.Headline != "" {
		fmt.Fprintf(&b, "\n%s\n", Inline(cv.Headline, TargetMarkdown, StyleNormal))
	}
	if contacts := markdownContacts(cv); contacts != "" {
		fmt.Fprintf(&b, "\n%s\n", contacts)
	}

	for _, title := range cv.SectionOrder {
		sec := cv.Sections[title]
		fmt.Fprintf(&b, "\n## %s\n\n", EscapeMarkdown(title))
		for _, entry := range sec.Entries {
			if err := writeMarkdownEntry(&b, entry, doc.Locale); err != nil {
				return "", err
			}
		}
	}
	return b.String(), nil
}

func markdownContacts(cv *model.CV) string {
	var parts []string
	if cv.Location != "" {
		parts = append(parts, EscapeMarkdown(cv.Location))
	}
	if cv.Email != "" {
		parts = append(parts, fmt.Sprintf("[%s](mailto:%s)", cv.Email, cv.Email))
	}
	if cv.Phone != "" {
		parts = append(parts, EscapeMarkdown(cv.Phone))
	}
	if cv.Website != "" {
		parts = append(parts, fmt.Sprintf("[%s](%s)", model.LinkLabel(cv.Website), cv.Website))
	}
	for _, sn := range cv.Social {
		parts = append(parts, fmt.Sprintf("[%s](%s)", sn.Network+"/"+sn.Username, sn.URL()))
	}
	return strings.Join(parts, " · ")
}

func writeMarkdownEntry(b *strings.Builder, entry model.Entry, loc *model.Locale) error {
	switch e := entry.(type) {
	case *model.EducationEntry:
		sub := e.Area
		if e.StudyType != "" {
			sub = e.StudyType + " in " + e.Area
		}
		writeMarkdownEvent(b, e.Institution, sub,
			dateColumn(e.StartDate, e.EndDate, e.Date, loc), e.Location, e.Summary, e.Highlights)
	case *model.ExperienceEntry:
		writeMarkdownEvent(b, e.Position, e.Company,
			dateColumn(e.StartDate, e.EndDate, e.Date, loc), e.Location, e.Summary, e.Highlights)
	case *model.PublicationEntry:
		fmt.Fprintf(b, "**%s**\n\n", Inline(e.Title, TargetMarkdown, StyleBold))
		fmt.Fprintf(b, "%s", EscapeMarkdown(strings.Join(e.Authors, ", ")))
		if date := e.Date.Format(loc); date != "" {
			fmt.Fprintf(b, " — %s", EscapeMarkdown(date))
		}
		b.WriteString("\n\n")
		if e.DOI != "" {
			fmt.Fprintf(b, "[doi.org/%s](https://doi.org/%s)\n\n", e.DOI, e.DOI)
		} else if e.URL != "" {
			fmt.Fprintf(b, "[%s](%s)\n\n", model.LinkLabel(e.URL), e.URL)
		}
	case *model.NormalEntry:
		writeMarkdownEvent(b, e.Name, "",
			dateColumn(e.StartDate, e.EndDate, e.Date, loc), e.Location, e.Summary, e.Highlights)
	case *model.OneLineEntry:
		fmt.Fprintf(b, "**%s:** %s\n\n",
			EscapeMarkdown(e.Label), Inline(e.Details, TargetMarkdown, StyleNormal))
	case *model.BulletEntry:
		fmt.Fprintf(b, "- %s\n", Inline(e.Bullet, TargetMarkdown, StyleNormal))
	default:
		return &RenderError{Template: "markdown body", Err: fmt.Errorf("no renderer for entry type %T", entry)}
	}
	return nil
}

func writeMarkdownEvent(b *strings.Builder, title, subtitle, dates, location, summary string, highlights []string) {
	fmt.Fprintf(b, "**%s**", Inline(title, TargetMarkdown, StyleBold))
	if subtitle != "" {
		fmt.Fprintf(b, ", %s", Inline(subtitle, TargetMarkdown, StyleNormal))
	}
	var meta []string
	if dates != "" {
		meta = append(meta, dates)
	}
	if location != "" {
		meta = append(meta, location)
	}
	if len(meta) > 0 {
		fmt.Fprintf(b, " — %s", EscapeMarkdown(strings.Join(meta, ", ")))
	}
	b.WriteString("\n\n")
	if summary != "" {
		fmt.Fprintf(b, "%s\n\n", Inline(summary, TargetMarkdown, StyleNormal))
	}
	for _, h := range highlights {
		fmt.Fprintf(b, "- %s\n", Inline(h, TargetMarkdown, StyleNormal))
	}
	if len(highlights) > 0 {
		b.WriteString("\n")
	}
}
