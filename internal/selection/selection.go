// Package selection filters, sorts and groups question lists for display.
//
// Everything here is a pure function of its arguments: the same questions,
// criteria, topics and display settings always produce the same groups.
package selection

import (
	"cmp"
	"iter"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
)

type GroupMode string

const (
	GroupByTopic GroupMode = "topic"
	GroupByYear  GroupMode = "year"
)

type SortMode string

const (
	SortByYearThenNumber SortMode = "year-qnum"
	SortByPercentDesc    SortMode = "hkPercent"
)

// TopicSeparator joins the titles of a question's topics into one group key.
const TopicSeparator = " / "

// Criteria is the user's selection. Empty Years or TopicIDs mean no constraint.
type Criteria struct {
	Years    []int     `json:"years" form:"years"`
	TopicIDs []int     `json:"topicIds" form:"topics"`
	GroupBy  GroupMode `json:"groupBy" form:"groupBy"`
	SortBy   SortMode  `json:"sortBy" form:"sortBy"`
}

// Normalize fills in default modes.
func (c Criteria) Normalize() Criteria {
	if c.GroupBy != GroupByYear {
		c.GroupBy = GroupByTopic
	}
	if c.SortBy != SortByPercentDesc {
		c.SortBy = SortByYearThenNumber
	}
	return c
}

// Matches reports whether q passes both the year and the topic constraint.
func Matches(q models.Question, years, topicIDs []int) bool {
	if len(years) > 0 && !slices.Contains(years, q.Year) {
		return false
	}
	if len(topicIDs) > 0 && !q.HasTopic(topicIDs...) {
		return false
	}
	return true
}

// Filter returns the questions that match, preserving input order.
func Filter(questions []models.Question, years, topicIDs []int) []models.Question {
	out := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if Matches(q, years, topicIDs) {
			out = append(out, q)
		}
	}
	return out
}

// Compare orders two questions under mode.
func Compare(mode SortMode, a, b models.Question) int {
	if mode == SortByPercentDesc {
		return cmp.Compare(b.Percent(), a.Percent())
	}
	return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.QNum, b.QNum))
}

// Sort returns a stably sorted copy of questions.
func Sort(questions []models.Question, mode SortMode) []models.Question {
	out := slices.Clone(questions)
	slices.SortStableFunc(out, func(a, b models.Question) int {
		return Compare(mode, a, b)
	})
	return out
}

// TopicIndex maps tId to topic.
type TopicIndex map[int]models.Topic

func NewTopicIndex(topics []models.Topic) TopicIndex {
	idx := make(TopicIndex, len(topics))
	for _, t := range topics {
		idx[t.TID] = t
	}
	return idx
}

// Label joins the display titles of ids in their stored order.
func (idx TopicIndex) Label(ids []int, lang models.Language) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		topic, ok := idx[id]
		if !ok {
			names[i] = "Unknown Topic (" + strconv.Itoa(id) + ")"
			continue
		}
		names[i] = topic.Title(lang)
	}
	return strings.Join(names, TopicSeparator)
}

// Group is one materialised group.
type Group struct {
	Key       string
	Questions []models.Question
}

// Groups filters questions by c, groups them and sorts each group. The
// returned sequence recomputes everything each time it is ranged over.
func Groups(questions []models.Question, c Criteria, topics TopicIndex, display models.DisplaySettings) iter.Seq2[string, []models.Question] {
	c = c.Normalize()
	return func(yield func(string, []models.Question) bool) {
		for _, g := range build(questions, c, topics, display) {
			if !yield(g.Key, g.Questions) {
				return
			}
		}
	}
}

// Collect materialises a group sequence.
func Collect(seq iter.Seq2[string, []models.Question]) []Group {
	var out []Group
	for key, qs := range seq {
		out = append(out, Group{Key: key, Questions: qs})
	}
	return out
}

func build(questions []models.Question, c Criteria, topics TopicIndex, display models.DisplaySettings) []Group {
	filtered := Filter(questions, c.Years, c.TopicIDs)

	var (
		order  []string
		byKey  = make(map[string][]models.Question)
		yearOf = make(map[string]int)
	)
	for _, q := range filtered {
		var key string
		if c.GroupBy == GroupByYear {
			key = strconv.Itoa(q.Year)
			yearOf[key] = q.Year
		} else {
			key = topics.Label(q.TIDs, display.Language)
		}
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], q)
	}

	if c.GroupBy == GroupByYear {
		slices.SortFunc(order, func(a, b string) int { return cmp.Compare(yearOf[b], yearOf[a]) })
	} else {
		col := collatorFor(display.Language)
		slices.SortStableFunc(order, func(a, b string) int { return col.CompareString(a, b) })
	}

	groups := make([]Group, len(order))
	for i, key := range order {
		groups[i] = Group{Key: key, Questions: Sort(byKey[key], c.SortBy)}
	}
	return groups
}

func collatorFor(lang models.Language) *collate.Collator {
	tag := language.English
	if lang == models.LanguageChinese {
		tag = language.Chinese
	}
	return collate.New(tag)
}
