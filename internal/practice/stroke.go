package practice

import (
	"fmt"
	"strings"
)

// Stroke is the main swimming technique of a practice.
type Stroke int

const (
	Freestyle Stroke = iota
	Breaststroke
	Backstroke
	Butterfly
	IM
)

// Strokes lists every stroke in declared order. Statistics iterate this
// order, so ties for the most common stroke go to the earlier entry.
var Strokes = [...]Stroke{Freestyle, Breaststroke, Backstroke, Butterfly, IM}

var strokeNames = [...]string{
	Freestyle:    "Freestyle",
	Breaststroke: "Breaststroke",
	Backstroke:   "Backstroke",
	Butterfly:    "Butterfly",
	IM:           "IM",
}

func (s Stroke) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stroke(%d)", int(s))
	}
	return strokeNames[s]
}

// Valid reports whether s belongs to the closed stroke set.
func (s Stroke) Valid() bool {
	return s >= Freestyle && s <= IM
}

// ParseStroke resolves a stroke name. Matching is exact; "IM" is the
// individual medley.
func ParseStroke(name string) (Stroke, error) {
	for _, s := range Strokes {
		if strokeNames[s] == name {
			return s, nil
		}
	}
	return 0, &ValidationError{
		Field:   "main_stroke",
		Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(StrokeNames(), ", "), name),
	}
}

// StrokeNames returns the stroke names in declared order.
func StrokeNames() []string {
	names := make([]string, len(Strokes))
	for i, s := range Strokes {
		names[i] = s.String()
	}
	return names
}

func (s Stroke) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid stroke %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Stroke) UnmarshalText(text []byte) error {
	parsed, err := ParseStroke(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
