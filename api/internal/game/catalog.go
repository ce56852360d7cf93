package game

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var levelsYAML []byte

type Level struct {
	Number      int      `yaml:"-" json:"number"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Concept     string   `yaml:"concept" json:"concept"`
	Knowledge   string   `yaml:"knowledge" json:"knowledge"`
	Encrypted   string   `yaml:"encrypted,omitempty" json:"encrypted,omitempty"`
	Instruction string   `yaml:"instruction" json:"instruction"`
	Answer      string   `yaml:"answer" json:"-"`
	Hints       []string `yaml:"hints" json:"hints"`
	Feedback    string   `yaml:"feedback" json:"-"`
}

// Context is the text handed to the hint service as levelContext.
func (l *Level) Context() string { return l.Description }

type Category struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Levels      []*Level `yaml:"levels" json:"levels"`
}

func (c *Category) MaxLevel() int { return len(c.Levels) }

// Level returns level n (1-based) or nil.
func (c *Category) Level(n int) *Level {
	if n < 1 || n > len(c.Levels) {
		return nil
	}
	return c.Levels[n-1]
}

type Catalog struct {
	Categories []*Category `yaml:"categories" json:"categories"`
	byID       map[string]*Category
}

// LoadCatalog parses the embedded level file.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(levelsYAML)
}

func ParseCatalog(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	if len(c.Categories) == 0 {
		return nil, errors.New("levels: no categories")
	}
	c.byID = make(map[string]*Category, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.ID == "" {
			return nil, errors.New("levels: category without id")
		}
		if _, dup := c.byID[cat.ID]; dup {
			return nil, fmt.Errorf("levels: duplicate category %q", cat.ID)
		}
		if len(cat.Levels) == 0 {
			return nil, fmt.Errorf("levels: category %q has no levels", cat.ID)
		}
		for i, l := range cat.Levels {
			l.Number = i + 1
			if strings.TrimSpace(l.Answer) == "" {
				return nil, fmt.Errorf("levels: %s/%d has no answer", cat.ID, l.Number)
			}
		}
		c.byID[cat.ID] = cat
	}
	return &c, nil
}

func (c *Catalog) Category(id string) *Category {
	return c.byID[id]
}

func (c *Catalog) Level(categoryID string, n int) *Level {
	cat := c.Category(categoryID)
	if cat == nil {
		return nil
	}
	return cat.Level(n)
}

// CheckAnswer is the terminal check: trimmed, case-insensitive equality.
func CheckAnswer(l *Level, input string) bool {
	if l == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(l.Answer))
}
