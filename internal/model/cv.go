// Package model holds the validated CV data model: the document root, the
// entry variants with their candidate parsers, date normalization, and the
// JSON Schema kept in lock-step with the field tables. Validation collects
// every field problem across the document in one pass so users fix the whole
// file in one edit cycle.
package model

import (
	"fmt"
	"sort"
	"strings"
)

// DesignOptions carries the selected theme and its raw per-theme options.
// Option keys are validated against the theme's own schema by the theme
// package; the model only separates the two.
type DesignOptions struct {
	Theme   string
	Options map[string]any
}

// CV is the identity part of the document plus its ordered sections.
type CV struct {
	Name     string
	Headline string
	Location string
	Email    string
	Phone    string
	Website  string
	Social   []SocialNetwork

	SectionOrder []string
	Sections     map[string]Section
}

// Document is the validated root entity. It owns the CV, the design options,
// and the merged locale catalog; after NewDocument succeeds it is never
// mutated.
type Document struct {
	CV     *CV
	Design DesignOptions
	Locale *Locale
}

var cvKeys = map[string]bool{
	"name": true, "headline": true, "location": true, "email": true,
	"phone": true, "website": true, "social_networks": true, "sections": true,
}

// NewDocument validates a raw parsed document and builds the typed model.
// sectionOrder is the cv.sections key order as it appeared in the input.
// All field problems are collected into one ErrorList; a non-nil error means
// the partially built document must be discarded.
func NewDocument(raw map[string]any, sectionOrder []string) (*Document, error) {
	var errs ErrorList

	doc := &Document{Locale: DefaultLocale()}

	for key := range raw {
		switch key {
		case "cv", "design", "locale_catalog":
		default:
			errs.Add(NewFieldError(key, "", "unknown top-level key"))
		}
	}

	if catalog, ok := raw["locale_catalog"]; ok {
		m, ok := catalog.(map[string]any)
		if !ok {
			errs.Add(NewFieldError("locale_catalog", fmt.Sprintf("%v", catalog), "must be a mapping"))
		} else if err := doc.Locale.MergeCatalog(m); err != nil {
			errs.Add(err)
		}
	}

	doc.Design = parseDesign(raw["design"], &errs)

	cvRaw, ok := raw["cv"]
	if !ok {
		errs.Add(NewFieldError("cv", "", "document must contain a cv mapping"))
		return nil, errs.Err()
	}
	cvMap, ok := cvRaw.(map[string]any)
	if !ok {
		errs.Add(NewFieldError("cv", fmt.Sprintf("%v", cvRaw), "must be a mapping"))
		return nil, errs.Err()
	}

	doc.CV = parseCV(cvMap, sectionOrder, &errs)

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseDesign(raw any, errs *ErrorList) DesignOptions {
	design := DesignOptions{Theme: "classic", Options: map[string]any{}}
	if raw == nil {
		return design
	}
	m, ok := raw.(map[string]any)
	if !ok {
		errs.Add(NewFieldError("design", fmt.Sprintf("%v", raw), "must be a mapping"))
		return design
	}
	for key, val := range m {
		if key == "theme" {
			s, ok := val.(string)
			if !ok || s == "" {
				errs.Add(NewFieldError("design.theme", fmt.Sprintf("%v", val), "must be a non-empty string"))
				continue
			}
			design.Theme = s
			continue
		}
		design.Options[key] = val
	}
	return design
}

func parseCV(m map[string]any, sectionOrder []string, errs *ErrorList) *CV {
	d := &entryDecoder{m: m, path: "cv"}

	cv := &CV{
		Name:     d.str("name"),
		Headline: d.str("headline"),
		Location: d.str("location"),
		Email:    d.str("email"),
		Phone:    d.str("phone"),
		Website:  d.str("website"),
		Sections: map[string]Section{},
	}
	errs.Add(d.errs...)

	if strings.TrimSpace(cv.Name) == "" {
		errs.Add(NewFieldError("cv.name", cv.Name, "name is required"))
	}
	validateEmailField("cv.email", cv.Email, errs)
	validatePhoneField("cv.phone", cv.Phone, errs)
	validateURLField("cv.website", cv.Website, errs)

	for key := range m {
		if !cvKeys[key] {
			errs.Add(NewFieldError("cv."+key, "", "unknown key"))
		}
	}

	cv.Social = parseSocial(m["social_networks"], errs)
	parseSections(cv, m["sections"], sectionOrder, errs)
	return cv
}

func parseSocial(raw any, errs *ErrorList) []SocialNetwork {
	if raw == nil {
		return nil
	}
	arr, ok := raw.([]any)
	if !ok {
		errs.Add(NewFieldError("cv.social_networks", fmt.Sprintf("%v", raw), "must be a list"))
		return nil
	}
	out := make([]SocialNetwork, 0, len(arr))
	for i, item := range arr {
		path := fmt.Sprintf("cv.social_networks.%d", i+1)
		m, ok := item.(map[string]any)
		if !ok {
			errs.Add(NewFieldError(path, fmt.Sprintf("%v", item), "must be a mapping with network and username"))
			continue
		}
		d := &entryDecoder{m: m, path: path}
		sn := SocialNetwork{Network: d.str("network"), Username: d.str("username")}
		errs.Add(d.errs...)
		sn.validate(path, errs)
		out = append(out, sn)
	}
	return out
}

func parseSections(cv *CV, raw any, sectionOrder []string, errs *ErrorList) {
	if raw == nil {
		return
	}
	sections, ok := raw.(map[string]any)
	if !ok {
		errs.Add(NewFieldError("cv.sections", fmt.Sprintf("%v", raw), "must be a mapping of title to entries"))
		return
	}
	if len(sectionOrder) != len(sections) {
		// order hints can go stale if the raw tree was rebuilt; fall back to
		// a deterministic order rather than dropping sections
		rebuilt := make([]string, 0, len(sections))
		for title := range sections {
			rebuilt = append(rebuilt, title)
		}
		sort.Strings(rebuilt)
		sectionOrder = rebuilt
	}

	seen := map[string]string{}
	for _, title := range sectionOrder {
		value, ok := sections[title]
		if !ok {
			continue
		}
		basePath := "cv.sections." + title
		normalized := normalizeTitle(title)
		if prev, dup := seen[normalized]; dup {
			errs.Add(NewFieldError(basePath, "", "section title duplicates %q after normalization", prev))
			continue
		}
		seen[normalized] = title

		rawEntries, pinned, ok := sectionBody(value, basePath, errs)
		if !ok {
			continue
		}
		sec, _ := resolveSection(title, rawEntries, pinned, basePath, errs)
		cv.SectionOrder = append(cv.SectionOrder, title)
		cv.Sections[title] = sec
	}
}

// sectionBody accepts either a plain entry list or a mapping with an explicit
// entry_type pin and an entries list.
func sectionBody(value any, basePath string, errs *ErrorList) ([]any, EntryKind, bool) {
	switch t := value.(type) {
	case []any:
		return t, "", true
	case map[string]any:
		for key := range t {
			if key != "entry_type" && key != "entries" {
				errs.Add(NewFieldError(basePath+"."+key, "", "unknown key in pinned section"))
			}
		}
		name, _ := t["entry_type"].(string)
		kind, ok := parseEntryKind(name)
		if !ok {
			errs.Add(NewFieldError(basePath+".entry_type", name,
				"unknown entry type, expected one of: %s", strings.Join(EntryKindNames(), ", ")))
			return nil, "", false
		}
		entries, ok := t["entries"].([]any)
		if !ok {
			errs.Add(NewFieldError(basePath+".entries", fmt.Sprintf("%v", t["entries"]),
				"pinned section must contain an entries list"))
			return nil, "", false
		}
		return entries, kind, true
	default:
		errs.Add(NewFieldError(basePath, fmt.Sprintf("%v", value), "must be a list of entries"))
		return nil, "", false
	}
}

func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
