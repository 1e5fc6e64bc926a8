package story

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

// maxSpeakerLen bounds the prefix considered as a speaker tag
const maxSpeakerLen = 24

// Table is the validated scene table keyed by scene id
type Table struct {
	Title string
	Start string

	characters map[string]string
	scenes     map[string]*Scene
	order      []string // declaration order
}

// Parse decodes a TOML story and validates it
func Parse(data []byte) (*Table, error) {
	var doc Document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode story: %w", err)
	}
	return FromDocument(&doc)
}

// Load reads and parses a story file
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadAuto loads the story with priority: path if it exists > embedded
// Returns the source used for logging
func LoadAuto(path, embedded string) (*Table, string, error) {
	if path != "" {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			t, err := Load(path)
			return t, path, err
		}
	}
	t, err := Parse([]byte(embedded))
	if err != nil {
		return nil, "", fmt.Errorf("embedded story: %w", err)
	}
	return t, "embedded", nil
}

// FromDocument builds a table from a decoded document and validates it
func FromDocument(doc *Document) (*Table, error) {
	t := &Table{
		Title:      doc.Title,
		Start:      doc.Start,
		characters: make(map[string]string, len(doc.Characters)),
		scenes:     make(map[string]*Scene, len(doc.Scenes)),
		order:      make([]string, 0, len(doc.Scenes)),
	}
	for name, portrait := range doc.Characters {
		t.characters[name] = portrait
	}

	var dupes []error
	for i := range doc.Scenes {
		s := doc.Scenes[i]
		if _, exists := t.scenes[s.ID]; exists {
			dupes = append(dupes, fmt.Errorf("%w: '%s'", ErrDuplicateScene, s.ID))
			continue
		}
		t.scenes[s.ID] = &s
		t.order = append(t.order, s.ID)
	}
	if len(dupes) > 0 {
		return nil, errors.Join(dupes...)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks every reference and outflow, joining all problems found
func (t *Table) Validate() error {
	if len(t.scenes) == 0 {
		return ErrNoScenes
	}

	var errs []error
	if _, ok := t.scenes[t.Start]; !ok {
		errs = append(errs, fmt.Errorf("%w: '%s'", ErrNoStart, t.Start))
	}

	for _, id := range t.order {
		s := t.scenes[id]
		if id == "" {
			errs = append(errs, fmt.Errorf("%w: empty id", ErrUnknownScene))
		}

		if s.Info && s.Next == "" {
			errs = append(errs, fmt.Errorf("scene '%s': %w", id, ErrMissingNext))
		}

		switch s.Kind() {
		case KindInvalid:
			if s.Decision == nil && s.Next == "" && !s.Ending && !s.Info {
				errs = append(errs, fmt.Errorf("scene '%s': %w", id, ErrNoOutflow))
			} else {
				errs = append(errs, fmt.Errorf("scene '%s': %w", id, ErrAmbiguousOutflow))
			}
		case KindDecision:
			if len(s.Decision.Choices) != 2 {
				errs = append(errs, fmt.Errorf("scene '%s': %w (got %d)", id, ErrInvalidDecision, len(s.Decision.Choices)))
			}
		}

		for _, target := range s.Successors() {
			if _, ok := t.scenes[target]; !ok {
				errs = append(errs, fmt.Errorf("scene '%s' -> '%s': %w", id, target, ErrUnknownScene))
			}
		}
	}

	return errors.Join(errs...)
}

// Scene returns the scene for id
func (t *Table) Scene(id string) (*Scene, bool) {
	s, ok := t.scenes[id]
	return s, ok
}

// IDs returns scene ids in declaration order
func (t *Table) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the scene count
func (t *Table) Len() int {
	return len(t.order)
}

// Portrait returns the portrait path for a speaker, empty when none
func (t *Table) Portrait(speaker string) string {
	return t.characters[speaker]
}

// ParseLine splits an optional "Name: " speaker tag off a raw line
// Only declared characters count as speakers so narration containing a colon stays intact
func (t *Table) ParseLine(raw string) Line {
	name, text, found := strings.Cut(raw, ":")
	if !found {
		return Line{Text: raw}
	}
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxSpeakerLen {
		return Line{Text: raw}
	}
	if _, declared := t.characters[name]; !declared {
		return Line{Text: raw}
	}
	return Line{Speaker: name, Text: strings.TrimSpace(text)}
}

// Reachable returns the set of scene ids reachable from id, id included
func (t *Table) Reachable(from string) map[string]bool {
	seen := make(map[string]bool)
	if _, ok := t.scenes[from]; !ok {
		return seen
	}

	queue := []string{from}
	seen[from] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range t.scenes[id].Successors() {
			if _, ok := t.scenes[next]; ok && !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// Unreachable lists scenes not reachable from Start, sorted
func (t *Table) Unreachable() []string {
	reach := t.Reachable(t.Start)
	var out []string
	for _, id := range t.order {
		if !reach[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Endings lists ending scene ids in declaration order
func (t *Table) Endings() []string {
	var out []string
	for _, id := range t.order {
		if t.scenes[id].Ending {
			out = append(out, id)
		}
	}
	return out
}
