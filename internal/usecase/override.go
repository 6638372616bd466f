// Package usecase orchestrates the rendering pipeline: raw document in,
// command-line overrides applied, model validated, artifacts rendered and
// written out.
package usecase

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a dotted override path: either a mapping key or a
// list index. User-facing indices are 1-based; Index stores the raw user
// value and is converted when descending.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Override pairs a dotted path with the replacement value for the leaf it
// resolves to. Created per CLI invocation, applied once, discarded.
type Override struct {
	Path     string
	Segments []Segment
	Value    string
}

// PathError reports an override path that does not resolve against the
// document structure, naming the offending segment.
type PathError struct {
	Path    string
	Segment Segment
	Message string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("override %q: segment %q: %s", e.Path, e.Segment, e.Message)
}

// ParseOverride splits a dotted path into tagged segments. Purely numeric
// segments are list indices, everything else a mapping key.
func ParseOverride(path, value string) (Override, error) {
	if strings.TrimSpace(path) == "" {
		return Override{}, fmt.Errorf("override path must not be empty")
	}
	parts := strings.Split(path, ".")
	segments := make([]Segment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return Override{}, fmt.Errorf("override %q: empty path segment", path)
		}
		if n, err := strconv.Atoi(part); err == nil {
			if n < 1 {
				return Override{}, fmt.Errorf("override %q: index %d: indices are 1-based", path, n)
			}
			segments = append(segments, Segment{Index: n, IsIndex: true})
			continue
		}
		segments = append(segments, Segment{Key: part})
	}
	return Override{Path: path, Segments: segments, Value: value}, nil
}

// ApplyOverrides resolves each override against a deep copy of the raw
// document and replaces the leaf with the raw string value. The input map is
// never mutated, so repeated runs are deterministic. Overrides are applied in
// order; later ones win on overlapping paths.
func ApplyOverrides(raw map[string]any, overrides []Override) (map[string]any, error) {
	if len(overrides) == 0 {
		return raw, nil
	}
	copied := copyTree(raw).(map[string]any)
	for _, ov := range overrides {
		if err := applyOverride(copied, ov); err != nil {
			return nil, err
		}
	}
	return copied, nil
}

func applyOverride(root map[string]any, ov Override) error {
	var parent any = root
	last := len(ov.Segments) - 1
	for i, seg := range ov.Segments {
		container, err := descendTarget(parent, ov, seg)
		if err != nil {
			return err
		}
		if i == last {
			return setLeaf(container, ov, seg)
		}
		parent, err = childOf(container, ov, seg)
		if err != nil {
			return err
		}
	}
	return nil
}

// descendTarget checks the parent container matches the segment kind.
func descendTarget(parent any, ov Override, seg Segment) (any, error) {
	if seg.IsIndex {
		list, ok := parent.([]any)
		if !ok {
			return nil, &PathError{Path: ov.Path, Segment: seg,
				Message: fmt.Sprintf("parent is not a list (got %T)", parent)}
		}
		if seg.Index > len(list) {
			return nil, &PathError{Path: ov.Path, Segment: seg,
				Message: fmt.Sprintf("index out of range, list has %d entries", len(list))}
		}
		return list, nil
	}
	m, ok := parent.(map[string]any)
	if !ok {
		return nil, &PathError{Path: ov.Path, Segment: seg,
			Message: fmt.Sprintf("parent is not a mapping (got %T)", parent)}
	}
	if _, exists := m[seg.Key]; !exists {
		return nil, &PathError{Path: ov.Path, Segment: seg, Message: "no such key"}
	}
	return m, nil
}

func childOf(container any, ov Override, seg Segment) (any, error) {
	if seg.IsIndex {
		return container.([]any)[seg.Index-1], nil
	}
	return container.(map[string]any)[seg.Key], nil
}

func setLeaf(container any, ov Override, seg Segment) error {
	if seg.IsIndex {
		container.([]any)[seg.Index-1] = ov.Value
		return nil
	}
	container.(map[string]any)[seg.Key] = ov.Value
	return nil
}

// copyTree deep-copies a decoded YAML/JSON tree of maps, lists, and scalars.
func copyTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = copyTree(val)
		}
		return m
	case []any:
		arr := make([]any, len(t))
		for i, val := range t {
			arr[i] = copyTree(val)
		}
		return arr
	default:
		return v
	}
}

// ReadPath resolves a dotted path against a raw tree and returns the value.
// It shares the override descent rules, so a written override can always be
// read back.
func ReadPath(raw map[string]any, path string) (any, error) {
	ov, err := ParseOverride(path, "")
	if err != nil {
		return nil, err
	}
	var parent any = raw
	for _, seg := range ov.Segments {
		container, err := descendTarget(parent, ov, seg)
		if err != nil {
			return nil, err
		}
		parent, err = childOf(container, ov, seg)
		if err != nil {
			return nil, err
		}
	}
	return parent, nil
}
