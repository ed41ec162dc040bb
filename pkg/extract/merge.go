package extract

import (
	"fmt"

	"github.com/kobesoft-inc/jsic-data/pkg/jsic"
)

// MergeWarning records a disagreement between the index and detail passes:
// a code present in only one of them, or a code whose display names differ.
type MergeWarning struct {
	Level      jsic.Level `json:"level"`
	Code       string     `json:"code"`
	IndexName  string     `json:"index_name,omitempty"`
	DetailName string     `json:"detail_name,omitempty"`
}

func (w MergeWarning) String() string {
	switch {
	case w.DetailName == "":
		return fmt.Sprintf("code %s (%s): only in index: %q", w.Code, w.Level, w.IndexName)
	case w.IndexName == "":
		return fmt.Sprintf("code %s (%s): only in detail pages: %q", w.Code, w.Level, w.DetailName)
	default:
		return fmt.Sprintf("code %s (%s): name mismatch: index %q, detail %q", w.Code, w.Level, w.IndexName, w.DetailName)
	}
}

// Merge enriches the tree built from the detail pages with the index
// entries: English names come from the index (the detail pages carry
// none), and every disagreement between the two passes is recorded. The
// tree structure itself is never changed by the merge; the detail-page
// stream is the authority on hierarchy.
func Merge(tree *jsic.Tree, entries []IndexEntry) []MergeWarning {
	byCode := make(map[string]*jsic.Category)
	tree.Walk(func(c *jsic.Category) {
		if c.Code != "" && c.Code != "?" {
			byCode[c.Code] = c
		}
	})

	var warnings []MergeWarning
	indexed := make(map[string]bool, len(entries))
	for _, e := range entries {
		indexed[e.Code] = true
		node, ok := byCode[e.Code]
		if !ok {
			warnings = append(warnings, MergeWarning{Level: e.Level, Code: e.Code, IndexName: e.Name})
			continue
		}
		if e.NameEN != "" {
			node.NameEN = e.NameEN
		}
		if e.Name != "" && node.Name != "" && e.Name != node.Name {
			warnings = append(warnings, MergeWarning{
				Level:      e.Level,
				Code:       e.Code,
				IndexName:  e.Name,
				DetailName: node.Name,
			})
		}
	}

	tree.Walk(func(c *jsic.Category) {
		if c.Code == "" || c.Code == "?" {
			return
		}
		if !indexed[c.Code] {
			warnings = append(warnings, MergeWarning{Level: c.Level, Code: c.Code, DetailName: c.Name})
		}
	})
	return warnings
}
