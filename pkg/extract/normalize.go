// Package extract turns text lines extracted from the JSIC source PDF into
// a validated classification tree: normalizing text, recognizing heading
// codes, parsing example lists, and assembling the four-level hierarchy.
package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// isJapanese reports whether r is hiragana, katakana, or a CJK ideograph.
func isJapanese(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) ||
		(r >= 0x30A0 && r <= 0x30FF) ||
		(r >= 0x4E00 && r <= 0x9FFF)
}

func isFullWidthLetter(r rune) bool {
	return (r >= 'Ａ' && r <= 'Ｚ') || (r >= 'ａ' && r <= 'ｚ')
}

func isFullWidthDigit(r rune) bool {
	return r >= '０' && r <= '９'
}

// NormalizeFragment maps a raw extracted fragment to canonical form:
// Unicode NFC, full-width digits and the full-width period folded to
// half-width, full-width Latin letters folded to half-width unless the
// letter run is immediately followed by a Japanese character (so ＰＨＳ電話機
// keeps its full-width letters while Ｈead offices does not), whitespace
// trimmed and interior runs collapsed to a single space. The function is
// idempotent: a canonical fragment is returned unchanged.
func NormalizeFragment(s string) string {
	s = norm.NFC.String(s)
	runes := []rune(s)

	// Mark full-width letter runs that precede a Japanese character; those
	// stay full-width.
	keep := make([]bool, len(runes))
	for i := 0; i < len(runes); i++ {
		if !isFullWidthLetter(runes[i]) {
			continue
		}
		end := i
		for end < len(runes) && isFullWidthLetter(runes[end]) {
			end++
		}
		if end < len(runes) && isJapanese(runes[end]) {
			for j := i; j < end; j++ {
				keep[j] = true
			}
		}
		i = end - 1
	}

	var b strings.Builder
	b.Grow(len(s))
	for i, r := range runes {
		switch {
		case keep[i]:
			b.WriteRune(r)
		case isFullWidthDigit(r) || isFullWidthLetter(r) || r == '．':
			if narrow := width.LookupRune(r).Narrow(); narrow != 0 {
				b.WriteRune(narrow)
			} else {
				b.WriteRune(r)
			}
		default:
			b.WriteRune(r)
		}
	}

	return collapseWhitespace(b.String())
}

// collapseWhitespace trims the fragment and replaces every interior run of
// whitespace (including full-width spaces) with a single ASCII space.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// CleanDescription joins description fragments into one unbroken sentence.
// Line breaks and every other whitespace character are removed with no
// separator inserted, matching the source convention that Japanese prose
// reads as one continuous string.
func CleanDescription(fragments []string) string {
	var b strings.Builder
	for _, f := range fragments {
		for _, r := range f {
			if unicode.IsSpace(r) {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanJapaneseName canonicalizes a Japanese display name: all spaces
// removed, half-width parentheses and nakaguro widened, the full-width
// hyphen replaced by the long vowel mark, and ASCII letters widened to
// full-width (the canonical form for Latin letters inside Japanese names).
func CleanJapaneseName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '(':
			b.WriteRune('（')
		case r == ')':
			b.WriteRune('）')
		case r == '･':
			b.WriteRune('・')
		case r == '－':
			b.WriteRune('ー')
		case r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z':
			if wide := width.LookupRune(r).Wide(); wide != 0 {
				b.WriteRune(wide)
			} else {
				b.WriteRune(r)
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

var englishReplacer = strings.NewReplacer(
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"，", ",", // full-width comma
	"－", "-", // full-width hyphen-minus
	"–", "-", // en dash
	"―", "-", // horizontal bar
	"（", "(", // full-width left parenthesis
	"）", ")", // full-width right parenthesis
)

// CleanEnglishName folds the typographic Unicode punctuation the source
// PDF uses in English names down to plain ASCII.
func CleanEnglishName(name string) string {
	name = englishReplacer.Replace(name)
	// The PDF extractor sometimes pads the inside of parentheses.
	name = strings.ReplaceAll(name, "( ", "(")
	name = strings.ReplaceAll(name, " )", ")")
	return strings.TrimSpace(name)
}

// NormalizeDigits folds full-width digits in s to half-width, leaving
// everything else untouched. Heading code tokens use this before pattern
// matching.
func NormalizeDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isFullWidthDigit(r) {
			if narrow := width.LookupRune(r).Narrow(); narrow != 0 {
				b.WriteRune(narrow)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeAlpha folds a full-width Latin letter to half-width. Major
// classification codes appear both ways in the source.
func NormalizeAlpha(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isFullWidthLetter(r) {
			if narrow := width.LookupRune(r).Narrow(); narrow != 0 {
				b.WriteRune(narrow)
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
