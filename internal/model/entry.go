package model

import (
	"fmt"
	"sort"
	"strings"
)

// EntryKind names one of the fixed structural shapes an entry may take.
type EntryKind string

const (
	KindEducation   EntryKind = "education"
	KindExperience  EntryKind = "experience"
	KindPublication EntryKind = "publication"
	KindNormal      EntryKind = "normal"
	KindOneLine     EntryKind = "one_line"
	KindBullet      EntryKind = "bullet"
)

// Entry is the tagged union over the entry variants.
type Entry interface {
	Kind() EntryKind
}

type EducationEntry struct {
	Institution string
	Area        string
	StudyType   string
	Location    string
	StartDate   Date
	EndDate     Date
	Date        Date
	Summary     string
	Highlights  []string
}

func (EducationEntry) Kind() EntryKind { return KindEducation }

type ExperienceEntry struct {
	Company    string
	Position   string
	Location   string
	StartDate  Date
	EndDate    Date
	Date       Date
	Summary    string
	Highlights []string
}

func (ExperienceEntry) Kind() EntryKind { return KindExperience }

type PublicationEntry struct {
	Title   string
	Authors []string
	DOI     string
	URL     string
	Journal string
	Date    Date
}

func (PublicationEntry) Kind() EntryKind { return KindPublication }

type NormalEntry struct {
	Name       string
	Location   string
	StartDate  Date
	EndDate    Date
	Date       Date
	Summary    string
	Highlights []string
}

func (NormalEntry) Kind() EntryKind { return KindNormal }

type OneLineEntry struct {
	Label   string
	Details string
}

func (OneLineEntry) Kind() EntryKind { return KindOneLine }

type BulletEntry struct {
	Bullet string
}

func (BulletEntry) Kind() EntryKind { return KindBullet }

// fieldSpec declares which mapping keys an entry kind requires and accepts.
// The same tables drive shape matching and JSON Schema generation.
type fieldSpec struct {
	Required []string
	Optional []string
}

var entryFields = map[EntryKind]fieldSpec{
	KindEducation: {
		Required: []string{"institution", "area"},
		Optional: []string{"degree", "location", "start_date", "end_date", "date", "summary", "highlights"},
	},
	KindExperience: {
		Required: []string{"company", "position"},
		Optional: []string{"location", "start_date", "end_date", "date", "summary", "highlights"},
	},
	KindPublication: {
		Required: []string{"title", "authors"},
		Optional: []string{"doi", "url", "journal", "date"},
	},
	KindNormal: {
		Required: []string{"name"},
		Optional: []string{"location", "start_date", "end_date", "date", "summary", "highlights"},
	},
	KindOneLine: {
		Required: []string{"label", "details"},
		Optional: []string{},
	},
	KindBullet: {
		Required: []string{"bullet"},
		Optional: []string{},
	},
}

// kindOrder is the inference priority: field-rich shapes first so a generic
// shape never shadows a specific one.
var kindOrder = []EntryKind{
	KindEducation, KindExperience, KindPublication, KindNormal, KindOneLine, KindBullet,
}

// EntryKindNames lists the pinnable entry_type values.
func EntryKindNames() []string {
	names := make([]string, len(kindOrder))
	for i, k := range kindOrder {
		names[i] = string(k)
	}
	return names
}

func parseEntryKind(name string) (EntryKind, bool) {
	for _, k := range kindOrder {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// matches reports whether a raw entry has the structural shape of kind: every
// required key present and non-empty, no keys outside the declared set.
func matches(kind EntryKind, raw any) bool {
	if s, ok := raw.(string); ok {
		return kind == KindBullet && strings.TrimSpace(s) != ""
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return false
	}
	spec := entryFields[kind]
	for _, key := range spec.Required {
		v, ok := m[key]
		if !ok || v == nil {
			return false
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			return false
		}
	}
	allowed := make(map[string]bool, len(spec.Required)+len(spec.Optional))
	for _, key := range spec.Required {
		allowed[key] = true
	}
	for _, key := range spec.Optional {
		allowed[key] = true
	}
	for key := range m {
		if !allowed[key] {
			return false
		}
	}
	return true
}

// inferKind tries each candidate shape in priority order and adopts the first
// match.
func inferKind(raw any) (EntryKind, bool) {
	for _, kind := range kindOrder {
		if matches(kind, raw) {
			return kind, true
		}
	}
	return "", false
}

// entryDecoder pulls typed fields out of a raw entry mapping, collecting
// field errors instead of failing fast.
type entryDecoder struct {
	m    map[string]any
	path string
	errs ErrorList
}

func (d *entryDecoder) str(key string) string {
	v, ok := d.m[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case int, int64, float64, bool:
		return fmt.Sprintf("%v", t)
	default:
		d.errs.Add(NewFieldError(d.path+"."+key, fmt.Sprintf("%v", v), "expected a string"))
		return ""
	}
}

func (d *entryDecoder) strList(key string) []string {
	v, ok := d.m[key]
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		d.errs.Add(NewFieldError(d.path+"."+key, fmt.Sprintf("%v", v), "expected a list of strings"))
		return nil
	}
	out := make([]string, 0, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			d.errs.Add(NewFieldError(fmt.Sprintf("%s.%s.%d", d.path, key, i+1),
				fmt.Sprintf("%v", item), "expected a string"))
			continue
		}
		out = append(out, s)
	}
	return out
}

func (d *entryDecoder) date(key string) Date {
	raw := d.str(key)
	date, err := ParseDate(d.path+"."+key, raw)
	if err != nil {
		d.errs.Add(err)
		return Date{}
	}
	return date
}

// checkRange enforces start_date <= end_date when both sides are comparable;
// opaque free-text dates skip the check entirely.
func (d *entryDecoder) checkRange(start, end Date) {
	if start.After(end) {
		d.errs.Add(NewFieldError(d.path+".start_date", start.Format(DefaultLocale()),
			"start date is after end date %q", end.Format(DefaultLocale())))
	}
}

// parseEntry decodes a raw entry already known to have the given shape.
func parseEntry(kind EntryKind, raw any, path string) (Entry, error) {
	if kind == KindBullet {
		if s, ok := raw.(string); ok {
			return &BulletEntry{Bullet: s}, nil
		}
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, NewFieldError(path, fmt.Sprintf("%v", raw), "expected a %s entry mapping", kind)
	}
	d := &entryDecoder{m: m, path: path}

	var entry Entry
	switch kind {
	case KindEducation:
		e := &EducationEntry{
			Institution: d.str("institution"),
			Area:        d.str("area"),
			StudyType:   d.str("degree"),
			Location:    d.str("location"),
			StartDate:   d.date("start_date"),
			EndDate:     d.date("end_date"),
			Date:        d.date("date"),
			Summary:     d.str("summary"),
			Highlights:  d.strList("highlights"),
		}
		d.checkRange(e.StartDate, e.EndDate)
		entry = e
	case KindExperience:
		e := &ExperienceEntry{
			Company:    d.str("company"),
			Position:   d.str("position"),
			Location:   d.str("location"),
			StartDate:  d.date("start_date"),
			EndDate:    d.date("end_date"),
			Date:       d.date("date"),
			Summary:    d.str("summary"),
			Highlights: d.strList("highlights"),
		}
		d.checkRange(e.StartDate, e.EndDate)
		entry = e
	case KindPublication:
		entry = &PublicationEntry{
			Title:   d.str("title"),
			Authors: d.strList("authors"),
			DOI:     d.str("doi"),
			URL:     d.str("url"),
			Journal: d.str("journal"),
			Date:    d.date("date"),
		}
	case KindNormal:
		e := &NormalEntry{
			Name:       d.str("name"),
			Location:   d.str("location"),
			StartDate:  d.date("start_date"),
			EndDate:    d.date("end_date"),
			Date:       d.date("date"),
			Summary:    d.str("summary"),
			Highlights: d.strList("highlights"),
		}
		d.checkRange(e.StartDate, e.EndDate)
		entry = e
	case KindOneLine:
		entry = &OneLineEntry{Label: d.str("label"), Details: d.str("details")}
	case KindBullet:
		entry = &BulletEntry{Bullet: d.str("bullet")}
	default:
		return nil, NewFieldError(path, "", "unknown entry type %q", kind)
	}
	return entry, d.errs.Err()
}

// Section is a named, ordered list of entries sharing one entry type.
type Section struct {
	Title   string
	Kind    EntryKind
	Entries []Entry
}

// resolveSection determines the section's entry type from its first entry
// (or the pinned entry_type) and parses every entry against it. Entries that
// do not fit the resolved type are reported as SectionTypeErrors; field-level
// problems inside fitting entries are collected alongside.
func resolveSection(title string, rawEntries []any, pinned EntryKind, basePath string, errs *ErrorList) (Section, bool) {
	sec := Section{Title: title}
	if len(rawEntries) == 0 {
		errs.Add(NewFieldError(basePath, "", "section must contain at least one entry"))
		return sec, false
	}

	kind := pinned
	if kind == "" {
		inferred, ok := inferKind(rawEntries[0])
		if !ok {
			errs.Add(NewFieldError(fmt.Sprintf("%s.1", basePath), describeKeys(rawEntries[0]),
				"entry does not match any known entry type (%s)",
				strings.Join(EntryKindNames(), ", ")))
			return sec, false
		}
		kind = inferred
	}
	sec.Kind = kind

	ok := true
	for i, raw := range rawEntries {
		path := fmt.Sprintf("%s.%d", basePath, i+1)
		if !matches(kind, raw) {
			errs.Add(&SectionTypeError{Section: title, Index: i + 1, Want: kind})
			ok = false
			continue
		}
		entry, err := parseEntry(kind, raw, path)
		if err != nil {
			errs.Add(err)
			ok = false
		}
		if entry != nil {
			sec.Entries = append(sec.Entries, entry)
		}
	}
	return sec, ok
}

func describeKeys(raw any) string {
	m, ok := raw.(map[string]any)
	if !ok {
		return fmt.Sprintf("%v", raw)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "keys: " + strings.Join(keys, ", ")
}
