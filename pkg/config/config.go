// Package config holds the extraction profile: where the source PDF
// lives, which page ranges carry the index and the detail definitions,
// the errata table, and the expected category counts.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kobesoft-inc/jsic-data/pkg/pdfio"
	"github.com/kobesoft-inc/jsic-data/pkg/validate"
)

// PageRange is a 1-indexed, inclusive span of PDF pages.
type PageRange struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Profile describes one edition of the classification document.
type Profile struct {
	Name        string             `yaml:"name" json:"name"`
	SourceURL   string             `yaml:"source_url" json:"source_url"`
	CachePath   string             `yaml:"cache_path" json:"cache_path"`
	IndexPages  PageRange          `yaml:"index_pages" json:"index_pages"`
	DetailPages PageRange          `yaml:"detail_pages" json:"detail_pages"`
	Corrections []pdfio.Correction `yaml:"corrections" json:"corrections"`
	Expected    ExpectedCounts     `yaml:"expected" json:"expected"`
}

// ExpectedCounts is the published category cardinality per level.
type ExpectedCounts struct {
	Major  int `yaml:"major" json:"major"`
	Middle int `yaml:"middle" json:"middle"`
	Minor  int `yaml:"minor" json:"minor"`
	Detail int `yaml:"detail" json:"detail"`
}

// Default returns the profile for the 14th revision (October 2023) as
// published by the Ministry of Internal Affairs and Communications.
func Default() *Profile {
	return &Profile{
		Name:        "jsic-rev14",
		SourceURL:   "https://www.soumu.go.jp/main_content/000941216.pdf",
		CachePath:   "tmp/jsic.pdf",
		IndexPages:  PageRange{Start: 51, End: 102},
		DetailPages: PageRange{Start: 105, End: 534},
		Corrections: pdfio.DefaultCorrections,
		Expected:    ExpectedCounts{Major: 20, Middle: 99, Minor: 536, Detail: 1473},
	}
}

// Load reads a YAML profile from path, layered over the defaults: fields
// absent from the file keep their default values.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	profile := Default()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := profile.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return profile, nil
}

func (p *Profile) validate() error {
	if p.SourceURL == "" {
		return fmt.Errorf("source_url must not be empty")
	}
	for _, r := range []struct {
		name string
		pr   PageRange
	}{
		{"index_pages", p.IndexPages},
		{"detail_pages", p.DetailPages},
	} {
		if r.pr.Start < 1 || r.pr.End < r.pr.Start {
			return fmt.Errorf("%s: invalid range %d-%d", r.name, r.pr.Start, r.pr.End)
		}
	}
	return nil
}

// ValidationProfile converts the expected counts into the form the tree
// validator consumes.
func (p *Profile) ValidationProfile() *validate.Profile {
	return &validate.Profile{
		Name:           p.Name,
		ExpectedMajor:  p.Expected.Major,
		ExpectedMiddle: p.Expected.Middle,
		ExpectedMinor:  p.Expected.Minor,
		ExpectedDetail: p.Expected.Detail,
	}
}
