package visualize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SectionType tags a Section.
type SectionType string

const (
	KeyConcepts SectionType = "key_concepts"
	Process     SectionType = "process"
	Stats       SectionType = "stats"
	Comparison  SectionType = "comparison"
	Quote       SectionType = "quote"
)

// Icons the frontend renders. Other values pass through unchanged.
const (
	IconStar   = "star"
	IconZap    = "zap"
	IconTarget = "target"
	IconShield = "shield"
)

// Blueprint is the infographic description returned by /visualize.
type Blueprint struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
	// Skipped counts sections dropped while decoding.
	Skipped int `json:"-"`
}

// UnmarshalJSON accepts any JSON object. Sections of an unknown type or
// with fields of the wrong shape are skipped rather than failing the whole
// blueprint, and a non-string title is kept as its literal text.
func (b *Blueprint) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	bp := Blueprint{Title: literal(fields["title"]), Sections: []Section{}}
	var raws []json.RawMessage
	if err := json.Unmarshal(fields["sections"], &raws); err != nil && len(fields["sections"]) > 0 {
		bp.Skipped++
	}
	for _, raw := range raws {
		var sec Section
		if err := json.Unmarshal(raw, &sec); err != nil {
			bp.Skipped++
			continue
		}
		bp.Sections = append(bp.Sections, sec)
	}
	*b = bp
	return nil
}

// literal returns a JSON string's value, or the raw text of any other
// scalar. Objects, arrays and null yield "".
func literal(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	t := strings.TrimSpace(string(raw))
	if t == "" || t == "null" || strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
		return ""
	}
	return t
}

// Item is an entry of a key_concepts or comparison section.
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Stat is one data point of a stats section. Value is whatever the model
// sent: usually a number, sometimes a string such as "85%".
type Stat struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Section is one block of the infographic. Which fields are meaningful
// depends on Type; the others are left zero.
type Section struct {
	Type   SectionType
	Title  string
	Items  []Item
	Steps  []string
	Data   []Stat
	Text   string
	Author string
}

// ParseSectionType normalizes a type tag: case and the separator used
// ("key-concepts", "Key Concepts") do not matter.
func ParseSectionType(s string) (SectionType, bool) {
	t := SectionType(strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(strings.TrimSpace(s))))
	switch t {
	case KeyConcepts, Process, Stats, Comparison, Quote:
		return t, true
	}
	return t, false
}

type rawSection struct {
	Type   string   `json:"type"`
	Title  string   `json:"title"`
	Items  []Item   `json:"items"`
	Steps  []string `json:"steps"`
	Data   []Stat   `json:"data"`
	Text   string   `json:"text"`
	Author string   `json:"author"`
}

// UnmarshalJSON decodes a section and keeps only the fields of its type.
// An unknown type is an error.
func (s *Section) UnmarshalJSON(b []byte) error {
	var raw rawSection
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	typ, ok := ParseSectionType(raw.Type)
	if !ok {
		return fmt.Errorf("unknown section type %q", raw.Type)
	}
	sec := Section{Type: typ}
	switch typ {
	case KeyConcepts, Comparison:
		sec.Title, sec.Items = raw.Title, nonNil(raw.Items)
	case Process:
		sec.Title, sec.Steps = raw.Title, nonNil(raw.Steps)
	case Stats:
		sec.Title, sec.Data = raw.Title, nonNil(raw.Data)
	case Quote:
		sec.Text, sec.Author = raw.Text, raw.Author
	}
	*s = sec
	return nil
}

// MarshalJSON writes the fields of the section's type.
func (s Section) MarshalJSON() ([]byte, error) {
	switch s.Type {
	case KeyConcepts, Comparison:
		return json.Marshal(struct {
			Type  SectionType `json:"type"`
			Title string      `json:"title"`
			Items []Item      `json:"items"`
		}{s.Type, s.Title, nonNil(s.Items)})
	case Process:
		return json.Marshal(struct {
			Type  SectionType `json:"type"`
			Title string      `json:"title"`
			Steps []string    `json:"steps"`
		}{s.Type, s.Title, nonNil(s.Steps)})
	case Stats:
		return json.Marshal(struct {
			Type  SectionType `json:"type"`
			Title string      `json:"title"`
			Data  []Stat      `json:"data"`
		}{s.Type, s.Title, nonNil(s.Data)})
	case Quote:
		return json.Marshal(struct {
			Type   SectionType `json:"type"`
			Text   string      `json:"text"`
			Author string      `json:"author"`
		}{s.Type, s.Text, s.Author})
	default:
		return nil, fmt.Errorf("unknown section type %q", s.Type)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
