package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCategory = errors.New("model: unknown category")

// FilterAll selects every task regardless of category.
const FilterAll = "All"

type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorGray   Color = "gray"
)

type Category struct {
	Name  string
	Color Color
}

const (
	CategoryWork     = "Work"
	CategoryPersonal = "Personal"
	CategorySchool   = "School"
	CategoryOthers   = "Others"
)

var registry = [...]Category{
	{Name: CategoryWork, Color: ColorBlue},
	{Name: CategoryPersonal, Color: ColorGreen},
	{Name: CategorySchool, Color: ColorYellow},
	{Name: CategoryOthers, Color: ColorGray},
}

// Categories returns the registry in display order.
func Categories() []Category {
	out := make([]Category, len(registry))
	copy(out, registry[:])
	return out
}

func CategoryNames() []string {
	out := make([]string, 0, len(registry))
	for _, c := range registry {
		out = append(out, c.Name)
	}
	return out
}

func DefaultCategory() Category {
	return registry[0]
}

func LookupCategory(name string) (Category, bool) {
	for _, c := range registry {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// CanonicalCategory matches name case-insensitively against the registry.
func CanonicalCategory(name string) (string, bool) {
	for _, c := range registry {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c.Name, true
		}
	}
	return "", false
}

// CanonicalFilter is CanonicalCategory that also accepts "all".
func CanonicalFilter(s string) (string, bool) {
	if strings.EqualFold(strings.TrimSpace(s), FilterAll) {
		return FilterAll, true
	}
	return CanonicalCategory(s)
}

func ValidateCategory(name string) error {
	if _, ok := LookupCategory(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return nil
}

// ColorFor tolerates dangling names left behind by older data.
func ColorFor(name string) Color {
	if c, ok := LookupCategory(name); ok {
		return c.Color
	}
	return ColorGray
}

func IsValidFilter(s string) bool {
	if s == FilterAll {
		return true
	}
	_, ok := LookupCategory(s)
	return ok
}

// NextCategory steps through the registry, wrapping at the end. Unknown
// names restart from the first entry.
func NextCategory(name string) string {
	for i, c := range registry {
		if c.Name == name {
			return registry[(i+1)%len(registry)].Name
		}
	}
	return registry[0].Name
}

// NextFilter steps All -> Work -> ... -> Others -> All.
func NextFilter(s string) string {
	if s == FilterAll {
		return registry[0].Name
	}
	for i, c := range registry {
		if c.Name == s {
			if i == len(registry)-1 {
				return FilterAll
			}
			return registry[i+1].Name
		}
	}
	return FilterAll
}
