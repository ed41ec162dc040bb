package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/kobesoft-inc/jsic-data/pkg/jsic"
)

// ErrNoClassificationsFound is returned by Finish when the entire input
// stream contained no recognizable heading. This is the only fatal
// extraction failure; every other irregularity is recovered and recorded
// as an Anomaly.
var ErrNoClassificationsFound = errors.New("no classification headings found in input")

// Layout noise on the detail pages: section banners and table headers that
// belong to neither a description nor an example list.
var (
	sousetsuPattern     = regexp.MustCompile(`^総\s*説$`)
	bunruiHeaderPattern = regexp.MustCompile(`^小分類\s*細分類`)
	banngouPattern      = regexp.MustCompile(`^[番号\s　]+$`)
)

// Builder assembles the classification tree from the linear fragment
// stream. It keeps one cursor per level rather than a stack: a heading at
// any level seals every deeper open node in a single transition, which
// matches the document's skip patterns (a major followed directly by the
// next major, a middle with no minors, and so on).
type Builder struct {
	rec *Recognizer

	majors  []*jsic.Category
	unknown *jsic.Category

	// Cursor per level; cursors[i] is the open node at depth i. A node is
	// sealed (no further mutation) as soon as its cursor is cleared.
	cursors [4]*jsic.Category

	// Prose fragments accumulated since the last heading. Flushed as one
	// block because descriptions and example lists span source lines.
	pending []string

	// The heading created by the immediately preceding fragment, still
	// eligible for a name-continuation line.
	lastCreated *jsic.Category

	anomalies []Anomaly
	headings  int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{rec: NewRecognizer()}
}

// FeedAll feeds every line through Feed in document order.
func (b *Builder) FeedAll(lines []string) {
	for _, line := range lines {
		b.Feed(line)
	}
}

// Feed consumes the next fragment in document order.
func (b *Builder) Feed(fragment string) {
	line := NormalizeFragment(fragment)
	if line == "" {
		return
	}
	if sousetsuPattern.MatchString(line) || bunruiHeaderPattern.MatchString(line) || banngouPattern.MatchString(line) {
		return
	}

	heading, ok := b.rec.Recognize(line)
	if !ok {
		if token, malformed := b.rec.MalformedToken(line); malformed {
			b.anomalies = append(b.anomalies, Anomaly{
				Kind:    AnomalyMalformedHeading,
				Code:    token,
				Message: "code token fails every level pattern, treated as prose: " + line,
			})
		}
		if b.lastCreated != nil && nameContinues(b.lastCreated.Name, line) {
			b.lastCreated.Name += line
			b.lastCreated = nil
			return
		}
		b.lastCreated = nil
		b.pending = append(b.pending, line)
		return
	}

	b.flushPending()
	b.headings++

	node := &jsic.Category{Level: heading.Level, Code: heading.Code, Name: heading.Name}
	depth := heading.Level.Depth()

	parent := b.openAncestor(depth)
	if depth == 0 {
		b.majors = append(b.majors, node)
	} else if parent == nil {
		b.anomalies = append(b.anomalies, Anomaly{
			Kind:    AnomalyOrphanChild,
			Code:    heading.Code,
			Message: "heading has no open parent, attached to unknown major bucket",
		})
		parent = b.unknownBucket()
		parent.Children = append(parent.Children, node)
	} else {
		if parent.Level.Depth() != depth-1 {
			b.anomalies = append(b.anomalies, Anomaly{
				Kind:    AnomalyOrphanChild,
				Code:    heading.Code,
				Message: "no open " + string(jsic.Levels[depth-1]) + " cursor, attached under " + string(parent.Level) + " " + parent.Code,
			})
		}
		parent.Children = append(parent.Children, node)
	}

	// Seal this level and everything deeper, then open the new node.
	for i := depth; i < len(b.cursors); i++ {
		b.cursors[i] = nil
	}
	b.cursors[depth] = node
	b.lastCreated = node
}

// Finish flushes the trailing prose block, seals all open nodes, cleans
// names, and returns the assembled tree with every recorded anomaly.
func (b *Builder) Finish() (*jsic.Tree, []Anomaly, error) {
	b.flushPending()
	if b.headings == 0 {
		return nil, b.anomalies, ErrNoClassificationsFound
	}

	tree := &jsic.Tree{Majors: b.majors}
	if b.unknown != nil {
		tree.Majors = append(tree.Majors, b.unknown)
	}
	tree.Walk(cleanNode)
	return tree, b.anomalies, nil
}

// Anomalies returns the anomalies recorded so far.
func (b *Builder) Anomalies() []Anomaly {
	return b.anomalies
}

// openAncestor returns the deepest open cursor strictly shallower than
// depth, or nil when no ancestor is open.
func (b *Builder) openAncestor(depth int) *jsic.Category {
	for i := depth - 1; i >= 0; i-- {
		if b.cursors[i] != nil {
			return b.cursors[i]
		}
	}
	return nil
}

// unknownBucket lazily creates the synthetic major that collects orphan
// headings so malformed input still yields a complete, reviewable tree.
func (b *Builder) unknownBucket() *jsic.Category {
	if b.unknown == nil {
		b.unknown = &jsic.Category{Level: jsic.LevelMajor, Code: "?", Name: "不明な大分類"}
	}
	return b.unknown
}

// flushPending routes the accumulated prose block to the deepest open
// node. A block with no open node is front matter and is discarded.
func (b *Builder) flushPending() {
	b.lastCreated = nil
	if len(b.pending) == 0 {
		return
	}
	block := b.pending
	b.pending = nil

	var target *jsic.Category
	for i := len(b.cursors) - 1; i >= 0; i-- {
		if b.cursors[i] != nil {
			target = b.cursors[i]
			break
		}
	}
	if target == nil {
		return
	}

	parsed := ExtractBlock(block)
	for i := range parsed.Anomalies {
		parsed.Anomalies[i].Code = target.Code
	}
	b.anomalies = append(b.anomalies, parsed.Anomalies...)

	if parsed.Description != "" {
		target.Description += parsed.Description
	}
	target.IncludedExamples = append(target.IncludedExamples, parsed.Included...)
	target.ExcludedExamples = append(target.ExcludedExamples, parsed.Excluded...)
}

// completeNameEndings are suffixes after which a heading name is complete;
// a short following fragment is then a description, not a continuation.
var completeNameEndings = []string{"業", "所", "類", "品", "等", "他", "外"}

// nameContinues reports whether line is the continuation of a heading name
// split across physical lines: either the name has an unclosed parenthesis,
// or the fragment is short and the name ends mid-word.
func nameContinues(name, line string) bool {
	if strings.HasPrefix(line, "主として") || strings.HasPrefix(line, "この") ||
		strings.HasPrefix(line, inclusionMarker) || strings.HasPrefix(line, exclusionMarker) {
		return false
	}
	if strings.Contains(name, "（") && !strings.Contains(name, "）") {
		return true
	}
	if len([]rune(line)) <= 10 {
		for _, suffix := range completeNameEndings {
			if strings.HasSuffix(name, suffix) {
				return false
			}
		}
		return true
	}
	return false
}

// minorNameSuffix strips the (NN...) cross reference some minor names end
// with, e.g. 管理、補助的経済活動を行う事業所（01農業） keeps only the name part.
var minorNameSuffix = regexp.MustCompile(`[（(][0-9]{2}[^）)]*[）)]$`)

func cleanNode(c *jsic.Category) {
	if c.Level == jsic.LevelMinor {
		c.Name = strings.TrimSpace(minorNameSuffix.ReplaceAllString(c.Name, ""))
	}
	c.Name = CleanJapaneseName(c.Name)
	if c.NameEN != "" {
		c.NameEN = CleanEnglishName(c.NameEN)
	}
}
