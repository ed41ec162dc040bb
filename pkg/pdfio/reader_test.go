package pdfio

import (
	"reflect"
	"strings"
	"testing"
)

func TestApplyCorrections(t *testing.T) {
	lines := []string{
		"×定期観光バス業；［4311］",
		"5102 醸造酒類製造業（果実酒、清酒を除く。）",
		"untouched line",
	}
	got := ApplyCorrections(lines, DefaultCorrections)

	want := []string{
		"×定期観光バス業［4311］",
		"5102 醸造酒類製造業（果実酒、清酒を除く）",
		"untouched line",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ApplyCorrections = %v, want %v", got, want)
	}
}

func TestApplyCorrectionsNoCorrections(t *testing.T) {
	lines := []string{"a", "b"}
	if got := ApplyCorrections(lines, nil); !reflect.DeepEqual(got, lines) {
		t.Errorf("ApplyCorrections with no table = %v", got)
	}
}

func TestPageNumberNoise(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"- 105 -", ""},
		{"-105-", ""},
		{"- １０５ -", ""},
		{"0111 米作農業", "0111 米作農業"},
	}
	for _, tt := range tests {
		got := pageNumberNoise.ReplaceAllString(tt.input, "")
		if strings.TrimSpace(got) != tt.want {
			t.Errorf("noise strip of %q = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestReadPages(t *testing.T) {
	r := &Reader{
		pages: [][]string{
			{"page one"},
			{"page two a", "page two b"},
			{"page three"},
		},
	}

	got, err := r.ReadPages(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"page two a", "page two b", "page three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadPages(2,3) = %v, want %v", got, want)
	}

	if _, err := r.ReadPages(0, 1); err == nil {
		t.Error("start before page 1 should error")
	}
	if _, err := r.ReadPages(3, 2); err == nil {
		t.Error("end before start should error")
	}
	if _, err := r.ReadPages(1, 4); err == nil {
		t.Error("end past document should error")
	}
}

func TestReadPagesAppliesCorrections(t *testing.T) {
	r := &Reader{
		pages:       [][]string{{"×定期観光バス業；［4311］"}},
		corrections: DefaultCorrections,
	}
	got, err := r.ReadPages(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != "×定期観光バス業［4311］" {
		t.Errorf("corrections not applied: %q", got[0])
	}
}

func TestTotalPages(t *testing.T) {
	r := &Reader{pages: make([][]string, 7)}
	if got := r.TotalPages(); got != 7 {
		t.Errorf("TotalPages = %d, want 7", got)
	}
}
