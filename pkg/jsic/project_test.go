package jsic

import (
	"encoding/json"
	"strings"
	"testing"
)

func fixtureTree() *Tree {
	return &Tree{
		Majors: []*Category{
			{
				Level: LevelMajor, Code: "A", Name: "農業，林業",
				NameEN:      "AGRICULTURE AND FORESTRY",
				Description: "この大分類の説明。",
				Children: []*Category{
					{
						Level: LevelMiddle, Code: "01", Name: "農業",
						NameEN:      "AGRICULTURE",
						Description: "この中分類の説明。",
						Children: []*Category{
							{
								Level: LevelMinor, Code: "011", Name: "耕種農業",
								NameEN: "Crop farming",
								Children: []*Category{
									{
										Level: LevelDetail, Code: "0111", Name: "米作農業",
										NameEN:           "Rice farming",
										Description:      "主として稲を栽培する事業所をいう。",
										IncludedExamples: []string{"米作農業", "稲作農業"},
										ExcludedExamples: []ExcludedExample{
											{Name: "育苗事業", Codes: []string{"0113"}},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"full", "simple", "en"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", name, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat should reject unknown formats")
	}
}

func TestProjectFull(t *testing.T) {
	out := Project(fixtureTree(), FormatFull)

	major := out.MajorCategories[0]
	if major.Code != "A" || major.Name != "農業，林業" {
		t.Errorf("major = %s %q", major.Code, major.Name)
	}
	if major.NameEN != "AGRICULTURE AND FORESTRY" || major.Description == "" {
		t.Errorf("full view dropped fields: %+v", major)
	}

	detail := major.MiddleCategories[0].MinorCategories[0].DetailCategories[0]
	if detail.Description == "" || len(detail.IncludedExamples) != 2 || len(detail.ExcludedExamples) != 1 {
		t.Errorf("detail = %+v", detail)
	}
}

func TestProjectSimple(t *testing.T) {
	out := Project(fixtureTree(), FormatSimple)

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, field := range []string{"name_en", "description", "included_examples", "excluded_examples"} {
		if strings.Contains(s, field) {
			t.Errorf("simple view emitted %q: %s", field, s)
		}
	}
	for _, field := range []string{"major_categories", "middle_categories", "minor_categories", "detail_categories", `"code"`, `"name"`} {
		if !strings.Contains(s, field) {
			t.Errorf("simple view missing %q", field)
		}
	}
}

func TestProjectEN(t *testing.T) {
	out := Project(fixtureTree(), FormatEN)

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"name_en":"Rice farming"`) {
		t.Errorf("en view missing english names: %s", s)
	}
	for _, field := range []string{"description", "included_examples", "excluded_examples"} {
		if strings.Contains(s, field) {
			t.Errorf("en view emitted %q", field)
		}
	}
}

func TestProjectMinorNeverHasDescription(t *testing.T) {
	out := Project(fixtureTree(), FormatFull)
	minor := out.MajorCategories[0].MiddleCategories[0].MinorCategories[0]

	data, err := json.Marshal(minor)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "description") {
		t.Errorf("minor view emitted a description: %s", data)
	}
}

func TestProjectEmptyChildrenEmitAsEmptyArrays(t *testing.T) {
	tree := &Tree{Majors: []*Category{{Level: LevelMajor, Code: "T", Name: "分類不能の産業"}}}
	out := Project(tree, FormatSimple)

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"middle_categories":[]`) {
		t.Errorf("childless major should emit an empty array, got %s", data)
	}
}

func TestParseOutputRoundTrip(t *testing.T) {
	original := fixtureTree()
	data, err := json.Marshal(Project(original, FormatFull))
	if err != nil {
		t.Fatal(err)
	}

	tree, err := ParseOutput(data)
	if err != nil {
		t.Fatal(err)
	}

	wantCounts := original.CountByLevel()
	gotCounts := tree.CountByLevel()
	for _, level := range Levels {
		if gotCounts[level] != wantCounts[level] {
			t.Errorf("%s count = %d, want %d", level, gotCounts[level], wantCounts[level])
		}
	}

	detail := tree.Find("0111")
	if detail == nil {
		t.Fatal("0111 missing after round trip")
	}
	if detail.Level != LevelDetail || detail.Name != "米作農業" || detail.NameEN != "Rice farming" {
		t.Errorf("detail = %+v", detail)
	}
	if len(detail.ExcludedExamples) != 1 || detail.ExcludedExamples[0].Codes[0] != "0113" {
		t.Errorf("excluded = %+v", detail.ExcludedExamples)
	}
}

func TestParseOutputRejectsInvalidJSON(t *testing.T) {
	if _, err := ParseOutput([]byte("{not json")); err == nil {
		t.Error("ParseOutput should reject malformed JSON")
	}
}
