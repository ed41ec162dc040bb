package extract

import (
	"regexp"
	"strings"

	"github.com/kobesoft-inc/jsic-data/pkg/jsic"
)

// Heading is a recognized classification heading: a level-tagged code and
// the display name that follows it.
type Heading struct {
	Level jsic.Level
	Code  string
	Name  string
}

// Recognizer classifies text fragments as classification headings or
// prose. The source carries two heading forms: marker lines used on the
// detail pages (大分類Ａ－..., 中分類01－...) and bare code tokens (a leading
// token of exactly one uppercase letter or exactly 2, 3, or 4 digits
// followed by the name). Partial-prefix matches are impossible because the
// entire leading token must satisfy a level pattern: 011 is a minor code,
// never the middle code 01.
type Recognizer struct {
	majorMarker  *regexp.Regexp
	middleMarker *regexp.Regexp
	majorToken   *regexp.Regexp
	codeToken    *regexp.Regexp
	digitToken   *regexp.Regexp
	middleRef    *regexp.Regexp
}

// NewRecognizer builds a Recognizer with the source's heading patterns.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		majorMarker:  regexp.MustCompile(`^大分類([A-TＡ-Ｔ])\s*[－\-―]\s*(.+)$`),
		middleMarker: regexp.MustCompile(`^中分類([0-9０-９]{2})\s*[－\-―]\s*(.+)$`),
		majorToken:   regexp.MustCompile(`^([A-T])\s+(.+)$`),
		codeToken:    regexp.MustCompile(`^([0-9]{2,4})\s+(.+)$`),
		digitToken:   regexp.MustCompile(`^([0-9]+)\s+`),
		middleRef:    regexp.MustCompile(`、[0-9０-９]{2}[－\-―]`),
	}
}

// descriptionStarts are particles and conjunctions a heading name never
// begins with; a code token followed by one of these is a line of prose
// that happens to start with a code reference.
var descriptionStarts = []string{"又は", "に、", "に分類", "を除く", "に設け"}

// Recognize classifies a normalized fragment. It returns the heading and
// true when the fragment starts a new classification entry, or false when
// the fragment is prose or example content.
func (r *Recognizer) Recognize(line string) (Heading, bool) {
	if m := r.majorMarker.FindStringSubmatch(line); m != nil {
		name := strings.TrimSpace(m[2])
		if r.isMajorReference(name) {
			return Heading{}, false
		}
		return Heading{Level: jsic.LevelMajor, Code: NormalizeAlpha(m[1]), Name: name}, true
	}

	if m := r.middleMarker.FindStringSubmatch(line); m != nil {
		name := strings.TrimSpace(m[2])
		if r.isMiddleReference(name) {
			return Heading{}, false
		}
		return Heading{Level: jsic.LevelMiddle, Code: NormalizeDigits(m[1]), Name: name}, true
	}

	if m := r.codeToken.FindStringSubmatch(line); m != nil {
		name := strings.TrimSpace(m[2])
		for _, prefix := range descriptionStarts {
			if strings.HasPrefix(name, prefix) {
				return Heading{}, false
			}
		}
		code := m[1]
		var level jsic.Level
		switch len(code) {
		case 2:
			level = jsic.LevelMiddle
		case 3:
			level = jsic.LevelMinor
		case 4:
			level = jsic.LevelDetail
		}
		return Heading{Level: level, Code: code, Name: name}, true
	}

	if m := r.majorToken.FindStringSubmatch(line); m != nil {
		return Heading{Level: jsic.LevelMajor, Code: m[1], Name: strings.TrimSpace(m[2])}, true
	}

	return Heading{}, false
}

// MalformedToken reports a leading all-digit token that fails every level
// pattern (wrong digit count). The caller logs the anomaly and treats the
// fragment as prose.
func (r *Recognizer) MalformedToken(line string) (string, bool) {
	m := r.digitToken.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if n := len(m[1]); n >= 2 && n <= 4 {
		return "", false
	}
	return m[1], true
}

// isMajorReference filters 大分類 lines that reference another major
// classification from inside prose rather than opening a new one.
func (r *Recognizer) isMajorReference(name string) bool {
	return strings.ContainsAny(name, "［〔") ||
		strings.HasSuffix(name, "に分類される。") ||
		strings.HasSuffix(name, "に分類される")
}

// isMiddleReference filters 中分類 lines that enumerate several middle
// classifications (、52－...) or carry bracketed code references.
func (r *Recognizer) isMiddleReference(name string) bool {
	return strings.ContainsAny(name, "［〔") || r.middleRef.MatchString(name)
}
