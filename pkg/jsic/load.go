package jsic

import (
	"encoding/json"
	"fmt"
)

// ParseOutput reads a serialized projection (any format) back into a Tree.
// Fields absent from the projection come back zero-valued; the tree is
// suitable for structural validation, not for re-projection to a richer
// format.
func ParseOutput(data []byte) (*Tree, error) {
	var out Output
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing classification JSON: %w", err)
	}
	tree := &Tree{Majors: make([]*Category, 0, len(out.MajorCategories))}
	for _, mv := range out.MajorCategories {
		major := &Category{
			Level:            LevelMajor,
			Code:             mv.Code,
			Name:             mv.Name,
			NameEN:           mv.NameEN,
			Description:      mv.Description,
			IncludedExamples: mv.IncludedExamples,
			ExcludedExamples: mv.ExcludedExamples,
		}
		for _, midv := range mv.MiddleCategories {
			middle := &Category{
				Level:            LevelMiddle,
				Code:             midv.Code,
				Name:             midv.Name,
				NameEN:           midv.NameEN,
				Description:      midv.Description,
				IncludedExamples: midv.IncludedExamples,
				ExcludedExamples: midv.ExcludedExamples,
			}
			for _, minv := range midv.MinorCategories {
				minor := &Category{
					Level:            LevelMinor,
					Code:             minv.Code,
					Name:             minv.Name,
					NameEN:           minv.NameEN,
					IncludedExamples: minv.IncludedExamples,
					ExcludedExamples: minv.ExcludedExamples,
				}
				for _, dv := range minv.DetailCategories {
					minor.Children = append(minor.Children, &Category{
						Level:            LevelDetail,
						Code:             dv.Code,
						Name:             dv.Name,
						NameEN:           dv.NameEN,
						Description:      dv.Description,
						IncludedExamples: dv.IncludedExamples,
						ExcludedExamples: dv.ExcludedExamples,
					})
				}
				middle.Children = append(middle.Children, minor)
			}
			major.Children = append(major.Children, middle)
		}
		tree.Majors = append(tree.Majors, major)
	}
	return tree, nil
}
