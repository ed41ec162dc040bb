package jsic

import "fmt"

// Format selects which field subset a projection emits.
type Format string

const (
	// FormatFull emits every field: code, name, name_en, description, and
	// example lists.
	FormatFull Format = "full"
	// FormatSimple emits only code and name.
	FormatSimple Format = "simple"
	// FormatEN emits code, name, and name_en.
	FormatEN Format = "en"
)

// ParseFormat validates a format name from user input.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatFull, FormatSimple, FormatEN:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want full, simple, or en)", s)
}

// Output is the serialized form of a projected tree.
type Output struct {
	MajorCategories []MajorView `json:"major_categories"`
}

// MajorView is the serialized form of a major category.
type MajorView struct {
	Code             string            `json:"code"`
	Name             string            `json:"name"`
	NameEN           string            `json:"name_en,omitempty"`
	Description      string            `json:"description,omitempty"`
	IncludedExamples []string          `json:"included_examples,omitempty"`
	ExcludedExamples []ExcludedExample `json:"excluded_examples,omitempty"`
	MiddleCategories []MiddleView      `json:"middle_categories"`
}

// MiddleView is the serialized form of a middle category.
type MiddleView struct {
	Code             string            `json:"code"`
	Name             string            `json:"name"`
	NameEN           string            `json:"name_en,omitempty"`
	Description      string            `json:"description,omitempty"`
	IncludedExamples []string          `json:"included_examples,omitempty"`
	ExcludedExamples []ExcludedExample `json:"excluded_examples,omitempty"`
	MinorCategories  []MinorView       `json:"minor_categories"`
}

// MinorView is the serialized form of a minor category. Minor categories
// carry no description in the source, so the view has no description
// field in any format.
type MinorView struct {
	Code             string            `json:"code"`
	Name             string            `json:"name"`
	NameEN           string            `json:"name_en,omitempty"`
	IncludedExamples []string          `json:"included_examples,omitempty"`
	ExcludedExamples []ExcludedExample `json:"excluded_examples,omitempty"`
	DetailCategories []DetailView      `json:"detail_categories"`
}

// DetailView is the serialized form of a detail category, the leaf level.
type DetailView struct {
	Code             string            `json:"code"`
	Name             string            `json:"name"`
	NameEN           string            `json:"name_en,omitempty"`
	Description      string            `json:"description,omitempty"`
	IncludedExamples []string          `json:"included_examples,omitempty"`
	ExcludedExamples []ExcludedExample `json:"excluded_examples,omitempty"`
}

// Project emits the field subset for the requested format. Projection is a
// pure subset of tree fields: no field values are re-derived. Absent
// optional fields are omitted from the JSON output, never emitted as null
// or empty.
func Project(t *Tree, format Format) *Output {
	out := &Output{MajorCategories: make([]MajorView, 0, len(t.Majors))}
	for _, major := range t.Majors {
		out.MajorCategories = append(out.MajorCategories, projectMajor(major, format))
	}
	return out
}

func projectMajor(c *Category, format Format) MajorView {
	v := MajorView{
		Code:             c.Code,
		Name:             c.Name,
		MiddleCategories: make([]MiddleView, 0, len(c.Children)),
	}
	if format == FormatEN || format == FormatFull {
		v.NameEN = c.NameEN
	}
	if format == FormatFull {
		v.Description = c.Description
		v.IncludedExamples = c.IncludedExamples
		v.ExcludedExamples = c.ExcludedExamples
	}
	for _, child := range c.Children {
		v.MiddleCategories = append(v.MiddleCategories, projectMiddle(child, format))
	}
	return v
}

func projectMiddle(c *Category, format Format) MiddleView {
	v := MiddleView{
		Code:            c.Code,
		Name:            c.Name,
		MinorCategories: make([]MinorView, 0, len(c.Children)),
	}
	if format == FormatEN || format == FormatFull {
		v.NameEN = c.NameEN
	}
	if format == FormatFull {
		v.Description = c.Description
		v.IncludedExamples = c.IncludedExamples
		v.ExcludedExamples = c.ExcludedExamples
	}
	for _, child := range c.Children {
		v.MinorCategories = append(v.MinorCategories, projectMinor(child, format))
	}
	return v
}

func projectMinor(c *Category, format Format) MinorView {
	v := MinorView{
		Code:             c.Code,
		Name:             c.Name,
		DetailCategories: make([]DetailView, 0, len(c.Children)),
	}
	if format == FormatEN || format == FormatFull {
		v.NameEN = c.NameEN
	}
	if format == FormatFull {
		v.IncludedExamples = c.IncludedExamples
		v.ExcludedExamples = c.ExcludedExamples
	}
	for _, child := range c.Children {
		v.DetailCategories = append(v.DetailCategories, projectDetail(child, format))
	}
	return v
}

func projectDetail(c *Category, format Format) DetailView {
	v := DetailView{
		Code: c.Code,
		Name: c.Name,
	}
	if format == FormatEN || format == FormatFull {
		v.NameEN = c.NameEN
	}
	if format == FormatFull {
		v.Description = c.Description
		v.IncludedExamples = c.IncludedExamples
		v.ExcludedExamples = c.ExcludedExamples
	}
	return v
}
