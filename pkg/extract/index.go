package extract

import (
	"regexp"
	"strings"

	"github.com/kobesoft-inc/jsic-data/pkg/jsic"
)

// IndexEntry is one entry parsed from the table-of-contents pages. The
// index is the only place the source carries English names, and it lists
// every code independently of the detail pages, so it doubles as a
// cross-check during the merge.
type IndexEntry struct {
	Level  jsic.Level
	Code   string
	Name   string
	NameEN string
}

// IndexParser parses the table-of-contents pages into flat entries.
type IndexParser struct {
	majorPattern  *regexp.Regexp
	middlePattern *regexp.Regexp
	codePattern   *regexp.Regexp
	pagePattern   *regexp.Regexp
	dotsPattern   *regexp.Regexp

	// English name runs. Main lines require an uppercase (or quoted or
	// accented) start; continuation lines may start lowercase.
	englishPattern     *regexp.Regexp
	englishContPattern *regexp.Regexp
	englishOnlyLine    *regexp.Regexp
	englishParenLine   *regexp.Regexp

	majorCodePrefix *regexp.Regexp
	trailingNumber  *regexp.Regexp
	trailingQuotes  *regexp.Regexp
}

// NewIndexParser builds an IndexParser with the source's TOC patterns.
func NewIndexParser() *IndexParser {
	const englishBody = `A-Za-z0-9\s,\.\-\x{2013}&\(\)'\x{2018}\x{2019}"\x{201C}\x{201D}\x{00C0}-\x{00FF}\x{FF08}\x{FF09}\x{FF0C}\x{FF0D}`
	const englishStart = `"'\x{2018}\x{2019}\x{201C}\x{00C0}-\x{00FF}`
	return &IndexParser{
		majorPattern:  regexp.MustCompile(`大分類([A-TＡ-Ｔ])[－\-]`),
		middlePattern: regexp.MustCompile(`中分類\s*([0-9]{2})`),
		codePattern:   regexp.MustCompile(`^([0-9]{3,4})\s+`),
		pagePattern:   regexp.MustCompile(`[･\s]+([0-9]+)\s*$`),
		dotsPattern:   regexp.MustCompile(`[･]{2,}`),

		englishPattern:     regexp.MustCompile(`[A-Z` + englishStart + `][` + englishBody + `]+`),
		englishContPattern: regexp.MustCompile(`[A-Za-z` + englishStart + `][` + englishBody + `]+`),
		englishOnlyLine:    regexp.MustCompile(`^[a-zA-Z][a-zA-Z\s,\.\-&\(\)]+$`),
		englishParenLine:   regexp.MustCompile(`^\([a-zA-Z\s,\.\-&]+\)$`),

		majorCodePrefix: regexp.MustCompile(`^[A-T]-`),
		trailingNumber:  regexp.MustCompile(`\s*[0-9]+\s*$`),
		trailingQuotes:  regexp.MustCompile(`["'\x{201C}\x{201D}]+$`),
	}
}

// Parse reads TOC lines in document order and returns the flat entry list.
// Lines before the first 大分類 heading are front matter and are skipped.
// A line with no trailing page number continues the preceding entry's
// name, split by the PDF's column layout.
func (p *IndexParser) Parse(lines []string) []IndexEntry {
	var entries []IndexEntry
	var current *IndexEntry
	foundMajor := false

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for _, raw := range lines {
		line := NormalizeFragment(raw)
		if line == "" {
			continue
		}

		if m := p.majorPattern.FindStringSubmatchIndex(line); m != nil {
			foundMajor = true
			flush()
			code := NormalizeAlpha(line[m[2]:m[3]])
			name, nameEN := p.extractNames(line[m[1]:], false)
			// English major names repeat the code prefix: A-AGRICULTURE.
			nameEN = strings.TrimSpace(p.majorCodePrefix.ReplaceAllString(nameEN, ""))
			current = &IndexEntry{Level: jsic.LevelMajor, Code: code, Name: name, NameEN: nameEN}
			continue
		}

		if !foundMajor {
			continue
		}

		if m := p.middlePattern.FindStringSubmatchIndex(line); m != nil {
			flush()
			code := line[m[2]:m[3]]
			name, nameEN := p.extractNames(line[m[1]:], false)
			current = &IndexEntry{Level: jsic.LevelMiddle, Code: code, Name: name, NameEN: nameEN}
			continue
		}

		if m := p.codePattern.FindStringSubmatch(line); m != nil {
			flush()
			code := m[1]
			level := jsic.LevelMinor
			if len(code) == 4 {
				level = jsic.LevelDetail
			}
			name, nameEN := p.extractNames(line[len(m[0]):], false)
			current = &IndexEntry{Level: level, Code: code, Name: name, NameEN: nameEN}
			continue
		}

		// Continuation line: no page number at the end, names only.
		if current != nil && !p.pagePattern.MatchString(line) {
			if p.englishOnlyLine.MatchString(line) || p.englishParenLine.MatchString(line) {
				current.NameEN = joinEnglish(current.NameEN, line)
				continue
			}
			name, nameEN := p.extractNames(line, true)
			current.Name += name
			current.NameEN = joinEnglish(current.NameEN, nameEN)
		}
	}
	flush()

	for i := range entries {
		p.finalize(&entries[i])
	}
	return entries
}

// extractNames splits a TOC line remainder into its Japanese and English
// name parts. English runs are located by pattern; the Japanese name is
// the concatenation of everything between them, with dot leaders, page
// numbers, and stray trailing digits or quotes removed.
func (p *IndexParser) extractNames(text string, allowLowercase bool) (string, string) {
	text = p.pagePattern.ReplaceAllString(text, "")
	text = p.dotsPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}

	pattern := p.englishPattern
	if allowLowercase {
		pattern = p.englishContPattern
	}
	matches := pattern.FindAllStringIndex(text, -1)
	if matches == nil {
		return strings.TrimSpace(p.trailingNumber.ReplaceAllString(text, "")), ""
	}

	var jpParts, enParts []string
	last := 0
	appendJP := func(part string) {
		part = strings.TrimSpace(part)
		part = p.trailingNumber.ReplaceAllString(part, "")
		part = p.trailingQuotes.ReplaceAllString(part, "")
		part = strings.TrimSpace(part)
		if part != "" && !isAllDigits(part) {
			jpParts = append(jpParts, part)
		}
	}
	for _, m := range matches {
		if m[0] > last {
			appendJP(text[last:m[0]])
		}
		enParts = append(enParts, strings.TrimSpace(text[m[0]:m[1]]))
		last = m[1]
	}
	if last < len(text) {
		appendJP(text[last:])
	}

	return strings.Join(jpParts, ""), strings.Join(enParts, " ")
}

// finalize applies the post-pass cleanups: minor names drop their trailing
// (NN...) cross reference, Japanese names are canonicalized, and English
// names lose typographic punctuation and paren padding.
func (p *IndexParser) finalize(e *IndexEntry) {
	if e.Level == jsic.LevelMinor {
		e.Name = strings.TrimSpace(minorNameSuffix.ReplaceAllString(e.Name, ""))
	}
	e.Name = CleanJapaneseName(e.Name)
	if e.NameEN != "" {
		e.NameEN = CleanEnglishName(e.NameEN)
	}
}

func joinEnglish(existing, more string) string {
	more = strings.TrimSpace(more)
	if more == "" {
		return existing
	}
	if existing == "" {
		return more
	}
	return existing + " " + more
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
