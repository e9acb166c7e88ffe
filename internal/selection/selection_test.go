package selection

import (
	"slices"
	"testing"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
)

func pct(v float64) *float64 { return &v }

func sampleTopics() TopicIndex {
	return NewTopicIndex([]models.Topic{
		{TID: 1, TitleE: "Algebra", TitleC: "代數"},
		{TID: 2, TitleE: "Geometry", TitleC: "幾何"},
		{TID: 3, TitleE: "", TitleC: "統計"},
		{TID: 4},
	})
}

func sampleQuestions() []models.Question {
	return []models.Question{
		{QID: 10, Year: 2021, QNum: 5, TIDs: []int{1}, HKPercent: pct(40)},
		{QID: 11, Year: 2020, QNum: 7, TIDs: []int{1, 2}, HKPercent: pct(65)},
		{QID: 12, Year: 2020, QNum: 2, TIDs: []int{2}},
		{QID: 13, Year: 2019, QNum: 1, TIDs: []int{1}, HKPercent: pct(80)},
		{QID: 14, Year: 2021, QNum: 1, TIDs: []int{2}, HKPercent: pct(40)},
	}
}

func qids(qs []models.Question) []int64 {
	out := make([]int64, len(qs))
	for i, q := range qs {
		out[i] = q.QID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		years  []int
		topics []int
		want   []int64
	}{
		{"no constraints", nil, nil, []int64{10, 11, 12, 13, 14}},
		{"years only", []int{2020, 2021}, nil, []int64{10, 11, 12, 14}},
		{"topics intersect", nil, []int{2}, []int64{11, 12, 14}},
		{"both", []int{2020}, []int{1}, []int64{11}},
		{"no match", []int{2018}, nil, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := qids(Filter(sampleQuestions(), tt.years, tt.topics))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_YearScenario(t *testing.T) {
	qs := []models.Question{
		{QID: 1, Year: 2019, TIDs: []int{1}},
		{QID: 2, Year: 2020, TIDs: []int{99, 42}},
	}
	got := qids(Filter(qs, []int{2020, 2021}, nil))
	if !slices.Equal(got, []int64{2}) {
		t.Errorf("Filter() = %v, want [2]", got)
	}
}

func TestFilter_ComposesAsConjunction(t *testing.T) {
	qs := sampleQuestions()
	y1, t1 := []int{2020, 2021}, []int{1, 2}
	y2, t2 := []int{2021}, []int{2}

	twice := Filter(Filter(qs, y1, t1), y2, t2)
	for _, q := range qs {
		inBoth := Matches(q, y1, t1) && Matches(q, y2, t2)
		if inBoth != slices.ContainsFunc(twice, func(x models.Question) bool { return x.QID == q.QID }) {
			t.Errorf("question %d: composed filter disagrees with conjunction", q.QID)
		}
	}
}

func TestSort_YearThenNumber(t *testing.T) {
	got := qids(Sort(sampleQuestions(), SortByYearThenNumber))
	want := []int64{13, 12, 11, 14, 10}
	if !slices.Equal(got, want) {
		t.Errorf("Sort() = %v, want %v", got, want)
	}
}

func TestSort_PercentDescending_MissingLast(t *testing.T) {
	got := Sort(sampleQuestions(), SortByPercentDesc)
	if want := []int64{13, 11, 10, 14, 12}; !slices.Equal(qids(got), want) {
		t.Errorf("Sort() = %v, want %v", qids(got), want)
	}
	last := got[len(got)-1]
	if last.HKPercent != nil {
		t.Errorf("last question has percent %v, want missing", *last.HKPercent)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := sampleQuestions()
	_ = Sort(in, SortByPercentDesc)
	if !slices.Equal(qids(in), []int64{10, 11, 12, 13, 14}) {
		t.Errorf("input reordered to %v", qids(in))
	}
}

func TestLabel(t *testing.T) {
	idx := sampleTopics()
	tests := []struct {
		name string
		ids  []int
		lang models.Language
		want string
	}{
		{"english", []int{1, 2}, models.LanguageEnglish, "Algebra / Geometry"},
		{"chinese", []int{1, 2}, models.LanguageChinese, "代數 / 幾何"},
		{"fallback to other language", []int{3}, models.LanguageEnglish, "統計"},
		{"fallback to id", []int{4}, models.LanguageChinese, "Topic 4"},
		{"unknown topic", []int{9}, models.LanguageEnglish, "Unknown Topic (9)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.Label(tt.ids, tt.lang); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGroups_ByTopicCombination(t *testing.T) {
	display := models.DefaultDisplaySettings()
	groups := Collect(Groups(sampleQuestions(), Criteria{GroupBy: GroupByTopic}, sampleTopics(), display))

	var keys []string
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	want := []string{"Algebra", "Algebra / Geometry", "Geometry"}
	if !slices.Equal(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	if got := qids(groups[0].Questions); !slices.Equal(got, []int64{13, 10}) {
		t.Errorf("Algebra group = %v, want [13 10]", got)
	}
	if got := qids(groups[1].Questions); !slices.Equal(got, []int64{11}) {
		t.Errorf("combined group = %v, want [11]", got)
	}
}

func TestGroups_ByYearDescending(t *testing.T) {
	c := Criteria{GroupBy: GroupByYear, SortBy: SortByPercentDesc}
	groups := Collect(Groups(sampleQuestions(), c, sampleTopics(), models.DefaultDisplaySettings()))

	var keys []string
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	if want := []string{"2021", "2020", "2019"}; !slices.Equal(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	if got := qids(groups[1].Questions); !slices.Equal(got, []int64{11, 12}) {
		t.Errorf("2020 group = %v, want [11 12]", got)
	}
}

func TestGroups_Restartable(t *testing.T) {
	seq := Groups(sampleQuestions(), Criteria{}, sampleTopics(), models.DefaultDisplaySettings())
	first := Collect(seq)
	second := Collect(seq)
	if len(first) != len(second) {
		t.Fatalf("second pass produced %d groups, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i].Key != second[i].Key || !slices.Equal(qids(first[i].Questions), qids(second[i].Questions)) {
			t.Errorf("group %d differs between passes", i)
		}
	}

	n := 0
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break yielded %d groups", n)
	}
}

func TestGroups_LanguageIsPerCall(t *testing.T) {
	qs := []models.Question{{QID: 1, TIDs: []int{1}}}
	zh := models.DefaultDisplaySettings()
	zh.Language = models.LanguageChinese

	en := Collect(Groups(qs, Criteria{}, sampleTopics(), models.DefaultDisplaySettings()))
	cn := Collect(Groups(qs, Criteria{}, sampleTopics(), zh))
	if en[0].Key != "Algebra" || cn[0].Key != "代數" {
		t.Errorf("keys = %q, %q; want Algebra, 代數", en[0].Key, cn[0].Key)
	}
}
