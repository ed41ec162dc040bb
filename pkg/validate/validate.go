// Package validate checks an assembled classification tree against the
// structural invariants of the JSIC scheme and produces an advisory
// report. Validation never blocks output: a tree that fails checks is
// still handed downstream, flagged, because a partial-but-usable result
// beats none for a human-correctable source document.
package validate

import (
	"fmt"
	"sort"

	"github.com/kobesoft-inc/jsic-data/pkg/jsic"
)

// Status is the overall validation outcome.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Severity levels for individual issues.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Issue categories.
const (
	CategoryCardinality   = "cardinality"
	CategoryCodeFormat    = "code_format"
	CategoryDuplicateCode = "duplicate_code"
	CategoryOrder         = "document_order"
	CategoryLinkage       = "single_parent"
	CategoryExcludedRef   = "excluded_reference"
)

// Issue is a single violation or observation.
type Issue struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
}

// Result is the complete validation report. All checks run independently;
// a single run reports every violation found.
type Result struct {
	Status Status             `json:"status"`
	Counts map[jsic.Level]int `json:"counts"`
	Issues []Issue            `json:"issues"`
}

// Errors returns only the error-severity issues.
func (r *Result) Errors() []Issue {
	var errs []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Profile holds the expected per-level totals. The counts are acceptance
// invariants of the published classification, not structural constraints:
// a mismatch signals a parsing defect, not an unusable tree.
type Profile struct {
	Name           string `yaml:"name" json:"name"`
	ExpectedMajor  int    `yaml:"expected_major" json:"expected_major"`
	ExpectedMiddle int    `yaml:"expected_middle" json:"expected_middle"`
	ExpectedMinor  int    `yaml:"expected_minor" json:"expected_minor"`
	ExpectedDetail int    `yaml:"expected_detail" json:"expected_detail"`
}

// DefaultProfile returns the totals of the current JSIC revision (Rev. 14).
func DefaultProfile() *Profile {
	return &Profile{
		Name:           "jsic-rev14",
		ExpectedMajor:  20,
		ExpectedMiddle: 99,
		ExpectedMinor:  536,
		ExpectedDetail: 1473,
	}
}

func (p *Profile) expected(level jsic.Level) int {
	switch level {
	case jsic.LevelMajor:
		return p.ExpectedMajor
	case jsic.LevelMiddle:
		return p.ExpectedMiddle
	case jsic.LevelMinor:
		return p.ExpectedMinor
	case jsic.LevelDetail:
		return p.ExpectedDetail
	}
	return 0
}

// Validate runs every check against the tree. Checks never short-circuit.
func Validate(tree *jsic.Tree, profile *Profile) *Result {
	if profile == nil {
		profile = DefaultProfile()
	}
	result := &Result{
		Status: StatusPass,
		Counts: tree.CountByLevel(),
	}

	checkCardinality(profile, result)
	checkCodes(tree, result)
	checkLinkage(tree, result)
	checkOrder(tree, result)
	checkExcludedReferences(tree, result)

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			result.Status = StatusFail
		case SeverityWarning:
			if result.Status == StatusPass {
				result.Status = StatusWarn
			}
		}
	}
	return result
}

// checkCardinality compares per-level node counts to the expected totals.
func checkCardinality(profile *Profile, result *Result) {
	for _, level := range jsic.Levels {
		want := profile.expected(level)
		got := result.Counts[level]
		if got != want {
			result.Issues = append(result.Issues, Issue{
				Category: CategoryCardinality,
				Severity: SeverityError,
				Message:  fmt.Sprintf("%s count mismatch: got %d, want %d", level, got, want),
			})
		}
	}
}

// checkCodes verifies every code against its level pattern and uniqueness
// within its level. The synthetic "?" bucket for orphan headings is
// reported as a warning rather than a format error.
func checkCodes(tree *jsic.Tree, result *Result) {
	seen := make(map[jsic.Level]map[string]bool)
	tree.Walk(func(c *jsic.Category) {
		if c.Code == "?" {
			result.Issues = append(result.Issues, Issue{
				Category: CategoryCodeFormat,
				Severity: SeverityWarning,
				Code:     c.Code,
				Message:  "synthetic bucket for orphan headings present in tree",
			})
			return
		}
		if !c.Level.ValidCode(c.Code) {
			result.Issues = append(result.Issues, Issue{
				Category: CategoryCodeFormat,
				Severity: SeverityError,
				Code:     c.Code,
				Message:  fmt.Sprintf("code %q does not match the %s pattern", c.Code, c.Level),
			})
		}
		if seen[c.Level] == nil {
			seen[c.Level] = make(map[string]bool)
		}
		if seen[c.Level][c.Code] {
			result.Issues = append(result.Issues, Issue{
				Category: CategoryDuplicateCode,
				Severity: SeverityError,
				Code:     c.Code,
				Message:  fmt.Sprintf("code %q appears more than once at the %s level", c.Code, c.Level),
			})
		}
		seen[c.Level][c.Code] = true
	})
}

// checkLinkage verifies every node below the majors is reachable exactly
// once: a category attached under two parents means the builder aliased a
// node instead of creating one, and mutations through one parent would
// silently show up under the other.
func checkLinkage(tree *jsic.Tree, result *Result) {
	seen := make(map[*jsic.Category]bool)
	var visit func(*jsic.Category)
	visit = func(c *jsic.Category) {
		if seen[c] {
			result.Issues = append(result.Issues, Issue{
				Category: CategoryLinkage,
				Severity: SeverityError,
				Code:     c.Code,
				Message:  fmt.Sprintf("category %q is attached to more than one parent", c.Code),
			})
			return
		}
		seen[c] = true
		for _, child := range c.Children {
			visit(child)
		}
	}
	for _, major := range tree.Majors {
		visit(major)
	}
}

// checkOrder verifies major categories and every node's children appear in
// ascending code order, the document order of the published classification.
// The builder never re-sorts, so a violation points at a mis-attributed
// heading. The synthetic "?" bucket is appended after the real majors and
// is exempt from the root-level check.
func checkOrder(tree *jsic.Tree, result *Result) {
	majorCodes := make([]string, 0, len(tree.Majors))
	for _, major := range tree.Majors {
		if major.Code == "?" {
			continue
		}
		majorCodes = append(majorCodes, major.Code)
	}
	if !sort.StringsAreSorted(majorCodes) {
		result.Issues = append(result.Issues, Issue{
			Category: CategoryOrder,
			Severity: SeverityWarning,
			Message:  "major categories are not in ascending code order",
		})
	}

	tree.Walk(func(c *jsic.Category) {
		codes := make([]string, 0, len(c.Children))
		for _, child := range c.Children {
			codes = append(codes, child.Code)
		}
		if !sort.StringsAreSorted(codes) {
			result.Issues = append(result.Issues, Issue{
				Category: CategoryOrder,
				Severity: SeverityWarning,
				Code:     c.Code,
				Message:  fmt.Sprintf("children of %s are not in ascending code order", c.Code),
			})
		}
	})
}

// checkExcludedReferences reports excluded-example code references that
// never appear as detail codes in the tree. These may be typos or
// cross-revision references in the source; they are preserved verbatim
// and only surfaced for inspection.
func checkExcludedReferences(tree *jsic.Tree, result *Result) {
	detailCodes := tree.DetailCodes()
	tree.Walk(func(c *jsic.Category) {
		for _, ex := range c.ExcludedExamples {
			for _, code := range ex.Codes {
				if len(code) == 4 && !detailCodes[code] {
					result.Issues = append(result.Issues, Issue{
						Category: CategoryExcludedRef,
						Severity: SeverityInfo,
						Code:     c.Code,
						Message:  fmt.Sprintf("excluded example %q references code %s, which does not appear in the tree", ex.Name, code),
					})
				}
			}
		}
	})
}
