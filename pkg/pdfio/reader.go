// Package pdfio reads the JSIC source PDF: downloading it with an on-disk
// cache, extracting text lines page by page, stripping page-number noise,
// and applying the errata table of known source typos. The hierarchy
// parser in pkg/extract consumes the resulting lines and never touches
// the PDF itself.
package pdfio

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Correction is one errata entry: a literal pattern replaced wherever it
// occurs in the extracted text, before parsing.
type Correction struct {
	Pattern     string `yaml:"pattern" json:"pattern"`
	Replacement string `yaml:"replacement" json:"replacement"`
	Note        string `yaml:"note,omitempty" json:"note,omitempty"`
}

// DefaultCorrections lists the known typos in the published PDF.
var DefaultCorrections = []Correction{
	{
		Pattern:     "定期観光バス業；［4311］",
		Replacement: "定期観光バス業［4311］",
		Note:        "stray item separator inside an excluded example",
	},
	{
		Pattern:     "醸造酒類製造業（果実酒、清酒を除く。）",
		Replacement: "醸造酒類製造業（果実酒、清酒を除く）",
		Note:        "trailing period inside parentheses",
	},
	{
		Pattern:     "Ｈead offices primarily engaged in managerial operations",
		Replacement: "Head offices primarily engaged in managerial operations",
		Note:        "full-width H in an English name",
	},
}

// pageNumberNoise matches the "- N -" page footers the PDF embeds in the
// text layer.
var pageNumberNoise = regexp.MustCompile(`-\s*[0-9０-９]+\s*-`)

// Reader holds the extracted text of every page of a source PDF.
type Reader struct {
	pages       [][]string
	corrections []Correction
}

// Open extracts text from the PDF at path. Extraction walks each page's
// positioned text rows top to bottom, joining row fragments in horizontal
// order, so the returned lines follow the printed layout.
func Open(path string, corrections []Correction) (*Reader, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	reader := &Reader{corrections: corrections}
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			reader.pages = append(reader.pages, nil)
			continue
		}
		lines, err := extractPageLines(page)
		if err != nil {
			return nil, fmt.Errorf("extracting page %d: %w", i, err)
		}
		reader.pages = append(reader.pages, lines)
	}
	return reader, nil
}

// extractPageLines reads one page's text rows in layout order.
func extractPageLines(page pdf.Page) ([]string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, row := range rows {
		var b strings.Builder
		for _, word := range row.Content {
			b.WriteString(word.S)
		}
		line := pageNumberNoise.ReplaceAllString(b.String(), "")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// TotalPages returns the number of pages in the source PDF.
func (r *Reader) TotalPages() int {
	return len(r.pages)
}

// ReadPages returns the text lines of the 1-indexed, inclusive page range
// with the errata corrections applied.
func (r *Reader) ReadPages(start, end int) ([]string, error) {
	if start < 1 || end < start {
		return nil, fmt.Errorf("invalid page range: %d-%d", start, end)
	}
	if end > len(r.pages) {
		return nil, fmt.Errorf("page range %d-%d exceeds document (%d pages)", start, end, len(r.pages))
	}
	var lines []string
	for i := start; i <= end; i++ {
		lines = append(lines, r.pages[i-1]...)
	}
	return ApplyCorrections(lines, r.corrections), nil
}

// ApplyCorrections replaces every errata pattern occurring in lines.
func ApplyCorrections(lines []string, corrections []Correction) []string {
	if len(corrections) == 0 {
		return lines
	}
	corrected := make([]string, len(lines))
	for i, line := range lines {
		for _, c := range corrections {
			if strings.Contains(line, c.Pattern) {
				line = strings.ReplaceAll(line, c.Pattern, c.Replacement)
			}
		}
		corrected[i] = line
	}
	return corrected
}

// Download fetches the PDF at url into cachePath unless a cached copy
// already exists, and returns the local path.
func Download(url, cachePath string) (string, error) {
	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	out, err := os.Create(cachePath)
	if err != nil {
		return "", fmt.Errorf("creating cache file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(cachePath)
		return "", fmt.Errorf("writing cache file: %w", err)
	}
	return cachePath, nil
}
