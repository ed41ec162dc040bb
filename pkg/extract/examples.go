package extract

import (
	"regexp"
	"strings"

	"github.com/kobesoft-inc/jsic-data/pkg/jsic"
)

// Markers the source uses to introduce example lists inside a category's
// trailing prose block.
const (
	inclusionMarker = "○"
	exclusionMarker = "×"
)

// itemSeparator delimits individual examples within one marker line.
const itemSeparator = "；"

var (
	codeRefPattern = regexp.MustCompile(`[0-9]{2,4}`)
	// Square and lenticular brackets always open a code list. Parentheses
	// are ambiguous: names carry parenthesized qualifiers too, so a paren
	// group only counts as a code list when its content is code-like.
	codeListBracket = regexp.MustCompile(`[［\[〔]`)
	codeParenGroup  = regexp.MustCompile(`[（(]([^（(）)]*)[）)]`)
	codeListContent = regexp.MustCompile(`^[0-9]{2,4}(?:\s*(?:、|，|,|又は)\s*[0-9]{2,4})*$`)
)

// Block is the parsed content of the prose block between two headings:
// the description text plus the included and excluded example lists.
type Block struct {
	Description string
	Included    []string
	Excluded    []jsic.ExcludedExample
	Anomalies   []Anomaly
}

// ExtractBlock parses the normalized lines following a heading, up to but
// not including the next heading. Lines before the first marker form the
// description; a ○ line opens the included-examples list and a × line the
// excluded-examples list, each continuing over following lines until the
// next marker. Minor-level blocks carry no markers and naturally yield
// empty results.
func ExtractBlock(lines []string) Block {
	var desc, included, excluded []string
	target := &desc

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, inclusionMarker):
			target = &included
			line = strings.TrimSpace(strings.TrimPrefix(line, inclusionMarker))
		case strings.HasPrefix(line, exclusionMarker):
			target = &excluded
			line = strings.TrimSpace(strings.TrimPrefix(line, exclusionMarker))
		}
		if line != "" {
			*target = append(*target, line)
		}
	}

	block := Block{
		Description: CleanDescription(desc),
		Included:    splitItems(included),
	}
	block.Excluded, block.Anomalies = parseExcluded(excluded)
	return block
}

// splitItems joins marker lines (continuations concatenate with no
// separator, like all Japanese prose here) and splits on the item
// separator, dropping empty entries.
func splitItems(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	var items []string
	for _, item := range strings.Split(strings.Join(lines, ""), itemSeparator) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseExcluded splits the excluded-examples text into entries. Each entry
// is a name followed by a bracket- or parenthesis-delimited list of the
// codes that classification belongs to instead; codes are recorded
// verbatim, never resolved. An entry with no recognizable code list is
// still kept, with empty codes, so the record survives for inspection.
func parseExcluded(lines []string) ([]jsic.ExcludedExample, []Anomaly) {
	items := splitItems(lines)
	if len(items) == 0 {
		return nil, nil
	}

	var examples []jsic.ExcludedExample
	var anomalies []Anomaly
	for _, item := range items {
		name, codeText := splitCodeList(item)

		// Codes only count inside the code list; digits in the name itself
		// (year qualifiers, ordinals) are not code references.
		var codes []string
		if codeText != "" {
			codes = codeRefPattern.FindAllString(codeText, -1)
		}

		if len(codes) == 0 {
			anomalies = append(anomalies, Anomaly{
				Kind:    AnomalyUnparsableExcludedEntry,
				Message: "excluded example has no recognizable code list: " + item,
			})
			examples = append(examples, jsic.ExcludedExample{Name: name, Codes: []string{}})
			continue
		}
		examples = append(examples, jsic.ExcludedExample{Name: name, Codes: codes})
	}
	return examples, anomalies
}

// splitCodeList divides an excluded-example item into its name and the
// code-list text that follows it. A bracket starts the code list wherever
// it appears; a parenthesized group does so only when its content is a
// code enumeration (digits joined by 、 or 又は), so a name qualifier like
// バター製造業（乳業メーカーによるもの） stays part of the name.
func splitCodeList(item string) (name, codeText string) {
	if loc := codeListBracket.FindStringIndex(item); loc != nil {
		return strings.TrimSpace(item[:loc[0]]), item[loc[0]:]
	}
	for _, m := range codeParenGroup.FindAllStringSubmatchIndex(item, -1) {
		content := strings.TrimSpace(item[m[2]:m[3]])
		if codeListContent.MatchString(content) {
			return strings.TrimSpace(item[:m[0]]), item[m[0]:]
		}
	}
	return strings.TrimSpace(item), ""
}
