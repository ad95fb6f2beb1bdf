// Package catalog holds the built-in event lists shown when the store has no
// events for a category.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/mahostav/api/internal/model"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// IDPrefix marks event IDs that come from the catalogue rather than the store
const IDPrefix = "default-"

type entry struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Venue       *string `yaml:"venue,omitempty"`
	TeamSize    *string `yaml:"team_size,omitempty"`
}

// Catalog is a parsed set of default events keyed by category
type Catalog struct {
	events map[model.EventType][]model.Event
}

// Default returns the catalogue embedded in the binary
func Default() (*Catalog, error) {
	return Parse(defaultsYAML)
}

// Parse reads a catalogue document of the form {sports: [...], cultural: [...]}
func Parse(data []byte) (*Catalog, error) {
	var raw map[model.EventType][]entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{events: make(map[model.EventType][]model.Event, len(raw))}
	for typ, entries := range raw {
		if !typ.Valid() {
			return nil, fmt.Errorf("parse catalog: unknown category %q", typ)
		}
		seen := make(map[string]bool, len(entries))
		for _, e := range entries {
			if e.Name == "" {
				return nil, fmt.Errorf("parse catalog: %s entry without a name", typ)
			}
			id := IDPrefix + slug.Make(e.Name)
			if seen[id] {
				return nil, fmt.Errorf("parse catalog: duplicate %s entry %q", typ, e.Name)
			}
			seen[id] = true
			c.events[typ] = append(c.events[typ], model.Event{
				ID:          id,
				Name:        e.Name,
				Description: e.Description,
				Type:        typ,
				Venue:       e.Venue,
				TeamSize:    e.TeamSize,
				Placeholder: true,
			})
		}
	}
	return c, nil
}

// Events returns fresh copies of the default events for a category
func (c *Catalog) Events(typ model.EventType) []*model.Event {
	src := c.events[typ]
	out := make([]*model.Event, len(src))
	for i := range src {
		e := src[i]
		out[i] = &e
	}
	return out
}

// Lookup finds a default event by its ID
func (c *Catalog) Lookup(id string) (*model.Event, bool) {
	for _, events := range c.events {
		for i := range events {
			if events[i].ID == id {
				e := events[i]
				return &e, true
			}
		}
	}
	return nil, false
}
