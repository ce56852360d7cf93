package game

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

type Screen int

const (
	ScreenIntro Screen = iota
	ScreenCategory
	ScreenLevel
)

func (s Screen) String() string {
	switch s {
	case ScreenCategory:
		return "category"
	case ScreenLevel:
		return "level"
	default:
		return "intro"
	}
}

// Progress is one player's walk through the catalog. Not safe for
// concurrent use; callers serialize per player.
type Progress struct {
	catalog   *Catalog
	unlocked  map[string]int
	completed mapset.Set[string]
	stars     map[string]int

	Screen   Screen
	Category string
	Level    int
}

func NewProgress(c *Catalog) *Progress {
	p := &Progress{
		catalog:   c,
		unlocked:  make(map[string]int, len(c.Categories)),
		completed: mapset.New[string](),
		stars:     make(map[string]int),
	}
	for _, cat := range c.Categories {
		p.unlocked[cat.ID] = 1
	}
	return p
}

func levelKey(categoryID string, n int) string {
	return fmt.Sprintf("%s-%d", categoryID, n)
}

func (p *Progress) Unlocked(categoryID string) int { return p.unlocked[categoryID] }

func (p *Progress) IsUnlocked(categoryID string, n int) bool {
	return n >= 1 && n <= p.unlocked[categoryID]
}

func (p *Progress) IsCompleted(categoryID string, n int) bool {
	return p.completed.Has(levelKey(categoryID, n))
}

func (p *Progress) Stars(categoryID string, n int) int {
	return p.stars[levelKey(categoryID, n)]
}

func (p *Progress) CompletedCount() int { return p.completed.Size() }

// CompletedKeys lists "<category>-<n>" keys in sorted order.
func (p *Progress) CompletedKeys() []string {
	out := make([]string, 0, p.completed.Size())
	p.completed.Each(func(k string) { out = append(out, k) })
	sort.Strings(out)
	return out
}

func (p *Progress) SelectCategory(id string) error {
	if p.catalog.Category(id) == nil {
		return fmt.Errorf("unknown category %q", id)
	}
	p.Category = id
	p.Level = 0
	p.Screen = ScreenCategory
	return nil
}

func (p *Progress) SelectLevel(n int) (*Level, error) {
	if p.Category == "" {
		return nil, fmt.Errorf("no category selected")
	}
	l := p.catalog.Level(p.Category, n)
	if l == nil {
		return nil, fmt.Errorf("unknown level %s/%d", p.Category, n)
	}
	if !p.IsUnlocked(p.Category, n) {
		return nil, fmt.Errorf("level %s/%d is locked", p.Category, n)
	}
	p.Level = n
	p.Screen = ScreenLevel
	return l, nil
}

// Current returns the open level or nil.
func (p *Progress) Current() *Level {
	if p.Screen != ScreenLevel {
		return nil
	}
	return p.catalog.Level(p.Category, p.Level)
}

// Complete marks the current level done with three stars and unlocks the
// next one. Reports whether a new level was unlocked.
func (p *Progress) Complete() bool {
	if p.Current() == nil {
		return false
	}
	p.completed.Put(levelKey(p.Category, p.Level))
	p.stars[levelKey(p.Category, p.Level)] = 3

	max := p.catalog.Category(p.Category).MaxLevel()
	if p.Level < max && p.unlocked[p.Category] < p.Level+1 {
		p.unlocked[p.Category] = p.Level + 1
		return true
	}
	return false
}

// Back steps level -> category -> intro.
func (p *Progress) Back() Screen {
	switch p.Screen {
	case ScreenLevel:
		p.Screen = ScreenCategory
		p.Level = 0
	case ScreenCategory:
		p.Screen = ScreenIntro
		p.Category = ""
	}
	return p.Screen
}
