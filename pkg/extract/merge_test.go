package extract

import (
	"testing"

	"github.com/kobesoft-inc/jsic-data/pkg/jsic"
)

func mergeFixtureTree() *jsic.Tree {
	return &jsic.Tree{
		Majors: []*jsic.Category{
			{
				Level: jsic.LevelMajor, Code: "A", Name: "農業，林業",
				Children: []*jsic.Category{
					{
						Level: jsic.LevelMiddle, Code: "01", Name: "農業",
						Children: []*jsic.Category{
							{
								Level: jsic.LevelMinor, Code: "011", Name: "耕種農業",
								Children: []*jsic.Category{
									{Level: jsic.LevelDetail, Code: "0111", Name: "米作農業"},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestMergeSetsEnglishNames(t *testing.T) {
	tree := mergeFixtureTree()
	entries := []IndexEntry{
		{Level: jsic.LevelMajor, Code: "A", Name: "農業，林業", NameEN: "AGRICULTURE AND FORESTRY"},
		{Level: jsic.LevelMiddle, Code: "01", Name: "農業", NameEN: "AGRICULTURE"},
		{Level: jsic.LevelMinor, Code: "011", Name: "耕種農業", NameEN: "Crop farming"},
		{Level: jsic.LevelDetail, Code: "0111", Name: "米作農業", NameEN: "Rice farming"},
	}

	warnings := Merge(tree, entries)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if got := tree.Find("0111").NameEN; got != "Rice farming" {
		t.Errorf("0111 NameEN = %q", got)
	}
	if got := tree.Find("A").NameEN; got != "AGRICULTURE AND FORESTRY" {
		t.Errorf("A NameEN = %q", got)
	}
}

func TestMergeWarnings(t *testing.T) {
	tree := mergeFixtureTree()
	entries := []IndexEntry{
		{Level: jsic.LevelMajor, Code: "A", Name: "農業，林業", NameEN: "AGRICULTURE AND FORESTRY"},
		{Level: jsic.LevelMiddle, Code: "01", Name: "農業", NameEN: "AGRICULTURE"},
		{Level: jsic.LevelMinor, Code: "011", Name: "耕種農業"},
		// Name disagrees with the detail pages.
		{Level: jsic.LevelDetail, Code: "0111", Name: "稲作農業", NameEN: "Rice farming"},
		// Present only in the index.
		{Level: jsic.LevelDetail, Code: "0112", Name: "米作以外の穀作農業"},
	}

	warnings := Merge(tree, entries)

	byCode := map[string]MergeWarning{}
	for _, w := range warnings {
		byCode[w.Code] = w
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", warnings)
	}

	mismatch, ok := byCode["0111"]
	if !ok || mismatch.IndexName != "稲作農業" || mismatch.DetailName != "米作農業" {
		t.Errorf("0111 warning = %+v", mismatch)
	}
	// The disputed English name still merges; the warning is advisory.
	if got := tree.Find("0111").NameEN; got != "Rice farming" {
		t.Errorf("0111 NameEN = %q", got)
	}

	indexOnly, ok := byCode["0112"]
	if !ok || indexOnly.DetailName != "" || indexOnly.IndexName != "米作以外の穀作農業" {
		t.Errorf("0112 warning = %+v", indexOnly)
	}
}

func TestMergeDetailOnlyCode(t *testing.T) {
	tree := mergeFixtureTree()
	entries := []IndexEntry{
		{Level: jsic.LevelMajor, Code: "A", Name: "農業，林業"},
		{Level: jsic.LevelMiddle, Code: "01", Name: "農業"},
		{Level: jsic.LevelMinor, Code: "011", Name: "耕種農業"},
		// 0111 is absent from the index.
	}

	warnings := Merge(tree, entries)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", warnings)
	}
	w := warnings[0]
	if w.Code != "0111" || w.IndexName != "" || w.DetailName != "米作農業" {
		t.Errorf("warning = %+v", w)
	}
}

func TestMergeIgnoresUnknownBucket(t *testing.T) {
	tree := mergeFixtureTree()
	tree.Majors = append(tree.Majors, &jsic.Category{
		Level: jsic.LevelMajor, Code: "?", Name: "不明な大分類",
	})

	warnings := Merge(tree, []IndexEntry{
		{Level: jsic.LevelMajor, Code: "A", Name: "農業，林業"},
		{Level: jsic.LevelMiddle, Code: "01", Name: "農業"},
		{Level: jsic.LevelMinor, Code: "011", Name: "耕種農業"},
		{Level: jsic.LevelDetail, Code: "0111", Name: "米作農業"},
	})
	for _, w := range warnings {
		if w.Code == "?" {
			t.Errorf("synthetic bucket reported by merge: %+v", w)
		}
	}
}
