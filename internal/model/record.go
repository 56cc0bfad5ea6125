package model

import (
	"fmt"
	"strings"
)

// MaxTextLen is the longest text the front ends accept, in runes.
const MaxTextLen = 15

// Category partitions records. It doubles as the active mode.
type Category int

const (
	Work Category = iota
	Travel
)

func (c Category) String() string {
	if c == Travel {
		return "Travel"
	}
	return "Work"
}

// Working reports whether c is Work. Persisted data stores the
// category as this boolean.
func (c Category) Working() bool { return c == Work }

// Other returns the opposite category.
func (c Category) Other() Category {
	if c == Work {
		return Travel
	}
	return Work
}

// CategoryFromWorking maps the persisted boolean back to a Category.
func CategoryFromWorking(working bool) Category {
	if working {
		return Work
	}
	return Travel
}

// ParseCategory accepts "work"/"travel" in any case.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "work", "w":
		return Work, nil
	case "travel", "t":
		return Travel, nil
	}
	return Work, fmt.Errorf("unknown mode %q (want work or travel)", s)
}

// Record is one to-do entry. Only these fields are persisted.
type Record struct {
	ID        string
	Text      string
	Category  Category
	Completed bool
}
