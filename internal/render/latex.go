package render

import (
	"fmt"
	"strings"

	"cvgen/internal/model"
)

// RenderLaTeX produces the full LaTeX source for a document. The theme's
// preamble defines the macros the body relies on (\cvsection, \cvevent,
// \cvheader); the body itself is theme-independent. Control flow lives here
// in ordinary code, one rendering function per entry type.
func RenderLaTeX(doc *model.Document, preamble string) (string, error) {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\\begin{document}\n")
	writeLaTeXHeader(&b, doc)

	cv := doc.CV
	for _, title := range cv.SectionOrder {
		sec := cv.Sections[title]
		fmt.Fprintf(&b, "\n\\cvsection{%s}\n", EscapeLaTeX(title))
		for _, entry := range sec.Entries {
			if err := writeLaTeXEntry(&b, entry, doc.Locale); err != nil {
				return "", err
			}
		}
	}

	b.WriteString("\n\\end{document}\n")
	return b.String(), nil
}

func writeLaTeXHeader(b *strings.Builder, doc *model.Document) {
	cv := doc.CV
	fmt.Fprintf(b, "\\cvheader{%s}{%s}\n", Inline(cv.Name, TargetLaTeX, StyleBold),
		Inline(cv.Headline, TargetLaTeX, StyleNormal))

	var contacts []string
	if cv.Location != "" {
		contacts = append(contacts, EscapeLaTeX(cv.Location))
	}
	if cv.Email != "" {
		contacts = append(contacts, fmt.Sprintf("\\href{mailto:%s}{%s}",
			EscapeLaTeXURL(cv.Email), EscapeLaTeX(cv.Email)))
	}
	if cv.Phone != "" {
		contacts = append(contacts, EscapeLaTeX(cv.Phone))
	}
	if cv.Website != "" {
		contacts = append(contacts, fmt.Sprintf("\\href{%s}{%s}",
			EscapeLaTeXURL(cv.Website), EscapeLaTeX(model.LinkLabel(cv.Website))))
	}
	for _, sn := range cv.Social {
		contacts = append(contacts, fmt.Sprintf("\\href{%s}{%s}",
			EscapeLaTeXURL(sn.URL()), EscapeLaTeX(sn.Network+"/"+sn.Username)))
	}
	if len(contacts) > 0 {
		fmt.Fprintf(b, "\\cvcontacts{%s}\n", strings.Join(contacts, " \\quad "))
	}
}

func writeLaTeXEntry(b *strings.Builder, entry model.Entry, loc *model.Locale) error {
	switch e := entry.(type) {
	case *model.EducationEntry:
		title := Inline(e.Institution, TargetLaTeX, StyleBold)
		sub := e.Area
		if e.StudyType != "" {
			sub = e.StudyType + " in " + e.Area
		}
		writeEvent(b, title, Inline(sub, TargetLaTeX, StyleNormal),
			dateColumn(e.StartDate, e.EndDate, e.Date, loc), e.Location, e.Summary, e.Highlights)
	case *model.ExperienceEntry:
		writeEvent(b, Inline(e.Position, TargetLaTeX, StyleBold),
			Inline(e.Company, TargetLaTeX, StyleNormal),
			dateColumn(e.StartDate, e.EndDate, e.Date, loc), e.Location, e.Summary, e.Highlights)
	case *model.PublicationEntry:
		fmt.Fprintf(b, "\\cvevent{%s}{%s}{%s}{%s}\n",
			Inline(e.Title, TargetLaTeX, StyleBold),
			EscapeLaTeX(strings.Join(e.Authors, ", ")),
			EscapeLaTeX(e.Date.Format(loc)),
			EscapeLaTeX(e.Journal))
		if link := publicationLink(e); link != "" {
			fmt.Fprintf(b, "\\cvline{%s}\n", link)
		}
	case *model.NormalEntry:
		writeEvent(b, Inline(e.Name, TargetLaTeX, StyleBold), "",
			dateColumn(e.StartDate, e.EndDate, e.Date, loc), e.Location, e.Summary, e.Highlights)
	case *model.OneLineEntry:
		fmt.Fprintf(b, "\\cvline{\\textbf{%s:} %s}\n",
			EscapeLaTeX(e.Label), Inline(e.Details, TargetLaTeX, StyleNormal))
	case *model.BulletEntry:
		fmt.Fprintf(b, "\\cvbullet{%s}\n", Inline(e.Bullet, TargetLaTeX, StyleNormal))
	default:
		return &RenderError{Template: "latex body", Err: fmt.Errorf("no renderer for entry type %T", entry)}
	}
	return nil
}

func writeEvent(b *strings.Builder, title, subtitle, dates, location, summary string, highlights []string) {
	fmt.Fprintf(b, "\\cvevent{%s}{%s}{%s}{%s}\n",
		title, subtitle, EscapeLaTeX(dates), EscapeLaTeX(location))
	if summary != "" {
		fmt.Fprintf(b, "\\cvline{%s}\n", Inline(summary, TargetLaTeX, StyleNormal))
	}
	if len(highlights) > 0 {
		b.WriteString("\\begin{cvhighlights}\n")
		for _, h := range highlights {
			fmt.Fprintf(b, "\\item %s\n", Inline(h, TargetLaTeX, StyleNormal))
		}
		b.WriteString("\\end{cvhighlights}\n")
	}
}

// dateColumn prefers an explicit single date over a range; ranges on ongoing
// positions carry the elapsed duration.
func dateColumn(start, end, single model.Date, loc *model.Locale) string {
	if !single.IsZero() {
		return single.Format(loc)
	}
	rangeText := model.FormatRange(start, end, loc)
	if rangeText == "" {
		return ""
	}
	endForSpan := end
	if end.IsZero() {
		endForSpan = model.Date{Precision: model.PrecisionPresent}
	}
	if dur := model.FormatDuration(start, endForSpan, loc); dur != "" {
		return rangeText + " (" + dur + ")"
	}
	return rangeText
}

func publicationLink(e *model.PublicationEntry) string {
	if e.DOI != "" {
		return fmt.Sprintf("\\href{https://doi.org/%s}{%s}",
			EscapeLaTeXURL(e.DOI), EscapeLaTeX("doi.org/"+e.DOI))
	}
	if e.URL != "" {
		return fmt.Sprintf("\\href{%s}{%s}", EscapeLaTeXURL(e.URL), EscapeLaTeX(model.LinkLabel(e.URL)))
	}
	return ""
}
