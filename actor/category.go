package actor

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category classifies a collision object for filtering purposes.
// It never implies a shape: an enemy may be a sphere or a capsule,
// and the resolver only ever looks at the tag.
type Category int

const (
	CategoryCharacter Category = iota
	CategoryEnemy
	CategoryNPC
	CategoryStatic
	CategoryTrigger
	CategoryInteractable
	CategoryDynamic

	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryCharacter:    "character",
	CategoryEnemy:        "enemy",
	CategoryNPC:          "npc",
	CategoryStatic:       "static",
	CategoryTrigger:      "trigger",
	CategoryInteractable: "interactable",
	CategoryDynamic:      "dynamic",
}

func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c >= 0 && c < categoryCount
}

// ParseCategory maps a name as found in game data files back to its Category.
func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if n == name {
			return Category(c), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

func (c Category) MarshalYAML() (any, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid category %d", int(c))
	}
	return c.String(), nil
}

func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseCategory(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CategorySet is a bitmask over Category values. The zero value is the
// empty set.
type CategorySet uint16

// NewCategorySet builds a set containing the given categories.
func NewCategorySet(categories ...Category) CategorySet {
	var s CategorySet
	for _, c := range categories {
		s = s.With(c)
	}
	return s
}

func (s CategorySet) Has(c Category) bool {
	return s&(1<<uint(c)) != 0
}

func (s CategorySet) With(c Category) CategorySet {
	return s | 1<<uint(c)
}

func (s CategorySet) Without(c Category) CategorySet {
	return s &^ (1 << uint(c))
}

func (s CategorySet) Union(other CategorySet) CategorySet {
	return s | other
}

func (s CategorySet) Empty() bool {
	return s == 0
}

func (s CategorySet) String() string {
	out := ""
	for c := Category(0); c < categoryCount; c++ {
		if s.Has(c) {
			if out != "" {
				out += "|"
			}
			out += c.String()
		}
	}
	if out == "" {
		return "none"
	}
	return out
}
