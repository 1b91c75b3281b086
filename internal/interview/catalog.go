package interview

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Option is a selectable value/label pair.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Question is a static catalog entry. Definitions are read-only after load.
type Question struct {
	ID            string   `yaml:"id" json:"id"`
	Prompt        string   `yaml:"prompt" json:"prompt"`
	Cardinality   string   `yaml:"cardinality" json:"cardinality"`
	MaxSelect     int      `yaml:"max_select" json:"max_select,omitempty"`
	Options       []Option `yaml:"options" json:"options"`
	AllowFreeText bool     `yaml:"allow_free_text" json:"allow_free_text,omitempty"`
	Preference    bool     `yaml:"preference" json:"-"`
}

const (
	CardinalitySingle = "single"
	CardinalityMulti  = "multi"
)

type catalogFile struct {
	Questions []*Question `yaml:"questions"`
}

var questionCatalog = mustLoadCatalog(catalogYAML)

type catalog struct {
	byID  map[string]*Question
	order []string
}

func mustLoadCatalog(data []byte) *catalog {
	c, err := loadCatalog(data)
	if err != nil {
		panic(fmt.Sprintf("interview: embedded question catalog is broken: %v", err))
	}
	return c
}

func loadCatalog(data []byte) (*catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &catalog{byID: make(map[string]*Question, len(file.Questions))}
	for _, q := range file.Questions {
		if strings.TrimSpace(q.ID) == "" {
			return nil, fmt.Errorf("question with empty id")
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %q", q.ID)
		}
		if q.Cardinality != CardinalitySingle && q.Cardinality != CardinalityMulti {
			return nil, fmt.Errorf("question %q: invalid cardinality %q", q.ID, q.Cardinality)
		}
		if len(q.Options) == 0 && !q.AllowFreeText {
			return nil, fmt.Errorf("question %q: no options and free text not allowed", q.ID)
		}
		c.byID[q.ID] = q
		c.order = append(c.order, q.ID)
	}
	return c, nil
}

// LookupQuestion returns the catalog entry for the given id.
func LookupQuestion(id string) (*Question, bool) {
	q, ok := questionCatalog.byID[id]
	return q, ok
}

// QuestionIDs returns every catalog id in file order.
func QuestionIDs() []string {
	return append([]string(nil), questionCatalog.order...)
}

// PreferenceFields returns the ids of the preference-gate questions.
func PreferenceFields() []string {
	var out []string
	for _, id := range questionCatalog.order {
		if questionCatalog.byID[id].Preference {
			out = append(out, id)
		}
	}
	return out
}

// IsPreferenceField reports whether the id belongs to the preference gate.
func IsPreferenceField(id string) bool {
	q, ok := questionCatalog.byID[id]
	return ok && q.Preference
}

// HasOption reports whether value is one of the question's options.
func (q *Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// NormalizeAnswer validates a raw answer against the question definition and
// returns the canonical stored form: a string for single-select and free-text
// fields, a []string for multi-select fields.
func (q *Question) NormalizeAnswer(value any) (any, error) {
	switch q.Cardinality {
	case CardinalitySingle:
		s, err := q.normalizeScalar(value)
		if err != nil {
			return nil, err
		}
		return s, nil
	case CardinalityMulti:
		return q.normalizeList(value)
	}
	return nil, fmt.Errorf("invalid cardinality %q", q.Cardinality)
}

func (q *Question) normalizeScalar(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("expected a string answer")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty answer")
	}
	if q.HasOption(s) {
		return s, nil
	}
	if q.AllowFreeText {
		return s, nil
	}
	return "", fmt.Errorf("value %q is not an option", s)
}

func (q *Question) normalizeList(value any) ([]string, error) {
	var items []string
	switch v := value.(type) {
	case []string:
		items = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string entries")
			}
			items = append(items, s)
		}
	case string:
		// Single picks and comma-joined lists both arrive as plain strings
		// from text transports.
		for _, part := range strings.Split(v, ",") {
			items = append(items, part)
		}
	default:
		return nil, fmt.Errorf("expected a list answer")
	}

	seen := map[string]bool{}
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		if !q.HasOption(item) && !q.AllowFreeText {
			return nil, fmt.Errorf("value %q is not an option", item)
		}
		seen[item] = true
		out = append(out, item)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("empty answer")
	}
	if q.MaxSelect > 0 && len(out) > q.MaxSelect {
		out = out[:q.MaxSelect]
	}
	return out, nil
}
