package extract

import "fmt"

// AnomalyKind classifies an irregularity recovered during extraction.
type AnomalyKind string

const (
	// AnomalyMalformedHeading marks a fragment whose leading code token
	// fails every level pattern; the fragment was treated as prose.
	AnomalyMalformedHeading AnomalyKind = "malformed_heading"
	// AnomalyOrphanChild marks a heading found with no open valid parent;
	// the node was attached to the nearest still-open ancestor.
	AnomalyOrphanChild AnomalyKind = "orphan_child"
	// AnomalyUnparsableExcludedEntry marks an excluded-example entry with
	// no extractable code list; the entry was kept with empty codes.
	AnomalyUnparsableExcludedEntry AnomalyKind = "unparsable_excluded_entry"
)

// Anomaly records one recovered irregularity. Extraction never aborts on
// an anomaly; the record is surfaced for manual review alongside the tree.
type Anomaly struct {
	Kind    AnomalyKind `json:"kind"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
}

func (a Anomaly) String() string {
	if a.Code != "" {
		return fmt.Sprintf("%s [%s]: %s", a.Kind, a.Code, a.Message)
	}
	return fmt.Sprintf("%s: %s", a.Kind, a.Message)
}
