// Package jsic defines the data model for the Japan Standard Industrial
// Classification: a strict four-level tree of classification categories.
package jsic

import "regexp"

// Level identifies one of the four nesting levels of the classification,
// from broadest (one-letter code) to most specific (four-digit code).
type Level string

const (
	LevelMajor  Level = "major"
	LevelMiddle Level = "middle"
	LevelMinor  Level = "minor"
	LevelDetail Level = "detail"
)

// Levels lists all levels in nesting order, shallowest first.
var Levels = []Level{LevelMajor, LevelMiddle, LevelMinor, LevelDetail}

var codePatterns = map[Level]*regexp.Regexp{
	LevelMajor:  regexp.MustCompile(`^[A-T]$`),
	LevelMiddle: regexp.MustCompile(`^[0-9]{2}$`),
	LevelMinor:  regexp.MustCompile(`^[0-9]{3}$`),
	LevelDetail: regexp.MustCompile(`^[0-9]{4}$`),
}

// Depth returns the nesting depth of the level: 0 for major through 3 for
// detail, or -1 for an unknown level.
func (l Level) Depth() int {
	for i, level := range Levels {
		if l == level {
			return i
		}
	}
	return -1
}

// ValidCode reports whether code matches the code pattern for this level:
// one uppercase letter A-T for major, or exactly 2, 3, or 4 ASCII digits
// for middle, minor, and detail respectively.
func (l Level) ValidCode(code string) bool {
	p, ok := codePatterns[l]
	return ok && p.MatchString(code)
}

// ExcludedExample is an excluded business type entry: a name and the
// classification codes where that business type belongs instead. Codes are
// recorded verbatim as found in the source text; forward references to
// codes that never appear in the tree are preserved, not resolved.
type ExcludedExample struct {
	Name  string   `json:"name"`
	Codes []string `json:"codes"`
}

// Category is a single classification entry at any level. Children hold
// the categories one level below, in document order.
type Category struct {
	Level            Level
	Code             string
	Name             string
	NameEN           string
	Description      string
	IncludedExamples []string
	ExcludedExamples []ExcludedExample
	Children         []*Category
}

// Tree is a complete classification hierarchy: the ordered list of major
// categories, each nesting middle, minor, and detail categories.
type Tree struct {
	Majors []*Category
}

// Walk traverses the tree depth-first in document order, calling fn for
// every category.
func (t *Tree) Walk(fn func(*Category)) {
	var visit func(*Category)
	visit = func(c *Category) {
		fn(c)
		for _, child := range c.Children {
			visit(child)
		}
	}
	for _, major := range t.Majors {
		visit(major)
	}
}

// CountByLevel returns the number of categories at each level.
func (t *Tree) CountByLevel() map[Level]int {
	counts := make(map[Level]int, len(Levels))
	t.Walk(func(c *Category) {
		counts[c.Level]++
	})
	return counts
}

// Find returns the category with the given code, searching all levels, or
// nil if no category carries that code.
func (t *Tree) Find(code string) *Category {
	var found *Category
	t.Walk(func(c *Category) {
		if found == nil && c.Code == code {
			found = c
		}
	})
	return found
}

// DetailCodes returns the set of all detail-level codes in the tree. Used
// to check excluded-example code references.
func (t *Tree) DetailCodes() map[string]bool {
	codes := make(map[string]bool)
	t.Walk(func(c *Category) {
		if c.Level == LevelDetail {
			codes[c.Code] = true
		}
	})
	return codes
}
