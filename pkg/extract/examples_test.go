package extract

import (
	"reflect"
	"testing"

	"github.com/kobesoft-inc/jsic-data/pkg/jsic"
)

func TestExtractBlock(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantDesc string
		wantInc  []string
		wantExc  []jsic.ExcludedExample
	}{
		{
			name: "description then included and excluded lists",
			lines: []string{
				"主として稲（陸稲を含む）を栽培し、",
				"米を生産する事業所をいう。",
				"○米作農業；稲作農業",
				"×育苗事業［0113］；種もみ生産業（0119）",
			},
			wantDesc: "主として稲（陸稲を含む）を栽培し、米を生産する事業所をいう。",
			wantInc:  []string{"米作農業", "稲作農業"},
			wantExc: []jsic.ExcludedExample{
				{Name: "育苗事業", Codes: []string{"0113"}},
				{Name: "種もみ生産業", Codes: []string{"0119"}},
			},
		},
		{
			name: "marker lists continue over following lines",
			lines: []string{
				"○米作農業；稲作",
				"農業；もみすり業",
			},
			wantInc: []string{"米作農業", "稲作農業", "もみすり業"},
		},
		{
			name: "excluded entry with multiple codes",
			lines: []string{
				"×農業サービス業［0741、0742］",
			},
			wantExc: []jsic.ExcludedExample{
				{Name: "農業サービス業", Codes: []string{"0741", "0742"}},
			},
		},
		{
			name: "digits in the name are not code references",
			lines: []string{
				"×第3セクター鉄道業〔4211〕",
			},
			wantExc: []jsic.ExcludedExample{
				{Name: "第3セクター鉄道業", Codes: []string{"4211"}},
			},
		},
		{
			name: "parenthesized name qualifier stays in the name",
			lines: []string{
				"×バター製造業（乳業メーカーによるもの）［0911］",
			},
			wantExc: []jsic.ExcludedExample{
				{Name: "バター製造業（乳業メーカーによるもの）", Codes: []string{"0911"}},
			},
		},
		{
			name: "parenthesized code enumeration with 又は",
			lines: []string{
				"×家畜診療業（7411又は7412）",
			},
			wantExc: []jsic.ExcludedExample{
				{Name: "家畜診療業", Codes: []string{"7411", "7412"}},
			},
		},
		{
			name: "included items split on the item separator only",
			lines: []string{
				"○稲作農業、水稲作農業；もみすり業",
			},
			// 、 joins parts of one name, never two items.
			wantInc: []string{"稲作農業、水稲作農業", "もみすり業"},
		},
		{
			name:  "empty block",
			lines: nil,
		},
		{
			name: "prose only yields description and no examples",
			lines: []string{
				"主として農作物を栽培する事業所をいう。",
			},
			wantDesc: "主として農作物を栽培する事業所をいう。",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractBlock(tt.lines)
			if got.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", got.Description, tt.wantDesc)
			}
			if !reflect.DeepEqual(got.Included, tt.wantInc) {
				t.Errorf("Included = %v, want %v", got.Included, tt.wantInc)
			}
			if !reflect.DeepEqual(got.Excluded, tt.wantExc) {
				t.Errorf("Excluded = %v, want %v", got.Excluded, tt.wantExc)
			}
		})
	}
}

func TestSplitCodeList(t *testing.T) {
	tests := []struct {
		item     string
		wantName string
		wantText string
	}{
		{"育苗事業［0113］", "育苗事業", "［0113］"},
		{"種もみ生産業（0119）", "種もみ生産業", "（0119）"},
		{"バター製造業（乳業メーカーによるもの）［0911］", "バター製造業（乳業メーカーによるもの）", "［0911］"},
		{"何々業（平成12年改定）", "何々業（平成12年改定）", ""},
		{"農業サービス業（0741、0742）", "農業サービス業", "（0741、0742）"},
		{"コード表記のない除外項目", "コード表記のない除外項目", ""},
	}
	for _, tt := range tests {
		name, text := splitCodeList(tt.item)
		if name != tt.wantName || text != tt.wantText {
			t.Errorf("splitCodeList(%q) = (%q, %q), want (%q, %q)",
				tt.item, name, text, tt.wantName, tt.wantText)
		}
	}
}

func TestExtractBlockUnparsableExcluded(t *testing.T) {
	got := ExtractBlock([]string{"×コード表記のない除外項目"})

	if len(got.Excluded) != 1 {
		t.Fatalf("Excluded length = %d, want 1", len(got.Excluded))
	}
	exc := got.Excluded[0]
	if exc.Name != "コード表記のない除外項目" {
		t.Errorf("Name = %q", exc.Name)
	}
	if len(exc.Codes) != 0 {
		t.Errorf("Codes = %v, want empty", exc.Codes)
	}
	if exc.Codes == nil {
		t.Error("Codes should be an empty slice, not nil, so JSON emits []")
	}
	if len(got.Anomalies) != 1 || got.Anomalies[0].Kind != AnomalyUnparsableExcludedEntry {
		t.Errorf("Anomalies = %v, want one unparsable-excluded-entry", got.Anomalies)
	}
}
