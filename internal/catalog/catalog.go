// Package catalog holds the well-known lesson sections: their default titles,
// student-friendly labels, header colors and deletion rules.
package catalog

import (
	"embed"
	"fmt"
	"sync"

	"github.com/lessonbuilder/backend/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Entry describes one well-known section
type Entry struct {
	ID           string             `yaml:"id"`
	Title        string             `yaml:"title"`
	Type         models.SectionType `yaml:"type"`
	StudentLabel string             `yaml:"studentLabel"`
	Color        string             `yaml:"color"`
	Protected    bool               `yaml:"protected"`
}

// Catalog is the ordered set of well-known sections
type Catalog struct {
	DefaultColor string  `yaml:"defaultColor"`
	Sections     []Entry `yaml:"sections"`

	byID map[string]Entry
}

var (
	defaultCatalog *Catalog
	loadOnce       sync.Once
	loadErr        error
)

// Load parses a catalog from YAML
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal section catalog: %w", err)
	}
	if len(c.Sections) == 0 {
		return nil, fmt.Errorf("section catalog is empty")
	}

	c.byID = make(map[string]Entry, len(c.Sections))
	for _, e := range c.Sections {
		if e.ID == "" {
			return nil, fmt.Errorf("section catalog entry without id")
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate section catalog id %q", e.ID)
		}
		c.byID[e.ID] = e
	}
	return &c, nil
}

// Default returns the catalog embedded in the binary.
// It panics if the embedded file is malformed, which is a build defect.
func Default() *Catalog {
	loadOnce.Do(func() {
		data, err := configFiles.ReadFile("config/sections.yaml")
		if err != nil {
			loadErr = fmt.Errorf("failed to read sections.yaml: %w", err)
			return
		}
		defaultCatalog, loadErr = Load(data)
	})
	if loadErr != nil {
		panic(loadErr)
	}
	return defaultCatalog
}

// Lookup returns the entry of a well-known section id
func (c *Catalog) Lookup(id string) (Entry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// IsWellKnown reports whether id is one of the fixed pedagogical phases
func (c *Catalog) IsWellKnown(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// CanDelete reports whether the interactive layer allows deleting the section
func (c *Catalog) CanDelete(id string) bool {
	e, ok := c.byID[id]
	return !ok || !e.Protected
}

// StudentLabel returns the navigation label for a section, falling back to its title
func (c *Catalog) StudentLabel(id, title string) string {
	if e, ok := c.byID[id]; ok && e.StudentLabel != "" {
		return e.StudentLabel
	}
	return title
}

// Color returns the header color for a section
func (c *Catalog) Color(id string) string {
	if e, ok := c.byID[id]; ok && e.Color != "" {
		return e.Color
	}
	return c.DefaultColor
}

// DefaultSections returns fresh, empty sections in catalog order
func (c *Catalog) DefaultSections() []models.Section {
	sections := make([]models.Section, 0, len(c.Sections))
	for _, e := range c.Sections {
		sections = append(sections, models.Section{
			ID:     e.ID,
			Title:  e.Title,
			Type:   e.Type,
			Blocks: []models.Block{},
		})
	}
	return sections
}
