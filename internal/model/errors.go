package model

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError reports a single field that failed type or semantic validation.
// Path is the dotted location in the source document, Value the offending raw
// input.
type FieldError struct {
	Path    string
	Value   string
	Message string
}

func (e *FieldError) Error() string {
	var b strings.Builder
	b.WriteString(e.Path)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Value != "" {
		fmt.Fprintf(&b, " (got %q)", e.Value)
	}
	return b.String()
}

// NewFieldError builds a FieldError for a dotted path and raw value.
func NewFieldError(path, value, format string, args ...any) *FieldError {
	return &FieldError{Path: path, Value: value, Message: fmt.Sprintf(format, args...)}
}

// SectionTypeError reports a section whose entries do not share one entry type.
// Index is 1-based, matching the numbering users see in override paths.
type SectionTypeError struct {
	Section string
	Index   int
	Want    EntryKind
}

func (e *SectionTypeError) Error() string {
	return fmt.Sprintf("section %q: entry %d does not match the section's entry type %s",
		e.Section, e.Index, e.Want)
}

// ErrorList collects validation failures so a whole document can be reported
// in one pass instead of stopping at the first problem.
type ErrorList []error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no validation errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error { return l }

// Add appends errs, flattening nested lists.
func (l *ErrorList) Add(errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		var nested ErrorList
		if errors.As(err, &nested) {
			*l = append(*l, nested...)
			continue
		}
		*l = append(*l, err)
	}
}

// Err returns the list as an error, or nil when nothing was collected.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// AsErrorList extracts a collected list from an error returned by validation.
func AsErrorList(err error) (ErrorList, bool) {
	if err == nil {
		return nil, false
	}
	var list ErrorList
	if errors.As(err, &list) {
		return list, true
	}
	return nil, false
}
