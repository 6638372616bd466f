package model

import "fmt"

// Locale carries the generated words used when formatting dates and ranges:
// month names, the word rendered for ongoing ranges, and connector words.
// Entries come from the optional locale_catalog block of the input document.
type Locale struct {
	Months      [12]string
	MonthsShort [12]string
	Present     string
	RangeSep    string
	Year        string
	Years       string
	Month       string
	MonthPlural string
}

// DefaultLocale returns the built-in English catalog.
func DefaultLocale() *Locale {
	return &Locale{
		Months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		MonthsShort: [12]string{
			"Jan", "Feb", "Mar", "Apr", "May", "June",
			"July", "Aug", "Sept", "Oct", "Nov", "Dec",
		},
		Present:     "present",
		RangeSep:    "–",
		Year:        "year",
		Years:       "years",
		Month:       "month",
		MonthPlural: "months",
	}
}

// MergeCatalog applies a raw locale_catalog mapping on top of the locale.
// Unknown keys and wrongly shaped values are reported as field errors under
// the locale_catalog path.
func (l *Locale) MergeCatalog(raw map[string]any) error {
	var errs ErrorList
	for key, val := range raw {
		switch key {
		case "month_names", "month_abbreviations":
			arr, ok := val.([]any)
			if !ok || len(arr) != 12 {
				errs.Add(NewFieldError("locale_catalog."+key, fmt.Sprintf("%v", val),
					"must be a list of 12 month names"))
				continue
			}
			for i, item := range arr {
				s, ok := item.(string)
				if !ok || s == "" {
					errs.Add(NewFieldError(fmt.Sprintf("locale_catalog.%s.%d", key, i+1),
						fmt.Sprintf("%v", item), "month name must be a non-empty string"))
					continue
				}
				if key == "month_names" {
					l.Months[i] = s
				} else {
					l.MonthsShort[i] = s
				}
			}
		case "present", "range_separator", "year", "years", "month", "months":
			s, ok := val.(string)
			if !ok || s == "" {
				errs.Add(NewFieldError("locale_catalog."+key, fmt.Sprintf("%v", val),
					"must be a non-empty string"))
				continue
			}
			switch key {
			case "present":
				l.Present = s
			case "range_separator":
				l.RangeSep = s
			case "year":
				l.Year = s
			case "years":
				l.Years = s
			case "month":
				l.Month = s
			case "months":
				l.MonthPlural = s
			}
		default:
			errs.Add(NewFieldError("locale_catalog."+key, "", "unknown locale catalog key"))
		}
	}
	return errs.Err()
}
