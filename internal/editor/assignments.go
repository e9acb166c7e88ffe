package editor

import (
	"maps"
	"slices"
)

// Assignments is the sparse map of pending question-to-subtopic edits.
// Only questions present in the map are considered edited; an empty list
// is a real edit that clears the question's subtopics.
type Assignments struct {
	pending map[int64][]int
}

func NewAssignments() *Assignments {
	return &Assignments{pending: make(map[int64][]int)}
}

// Set records the full subtopic list for a question.
func (a *Assignments) Set(qID int64, stIDs []int) {
	a.pending[qID] = append([]int{}, stIDs...)
}

// Toggle adds or removes stID from the question's list. current is the
// stored list, used when the question has no pending edit yet.
func (a *Assignments) Toggle(qID int64, current []int, stID int) []int {
	list, ok := a.pending[qID]
	if !ok {
		list = append([]int{}, current...)
	}
	if i := slices.Index(list, stID); i >= 0 {
		list = slices.Delete(list, i, i+1)
	} else {
		list = append(list, stID)
	}
	a.pending[qID] = list
	return append([]int{}, list...)
}

// Get returns the pending list for a question.
func (a *Assignments) Get(qID int64) ([]int, bool) {
	list, ok := a.pending[qID]
	if !ok {
		return nil, false
	}
	return append([]int{}, list...), true
}

func (a *Assignments) Len() int {
	return len(a.pending)
}

// Entry is one pending edit.
type Entry struct {
	QID   int64 `json:"qId"`
	STIDs []int `json:"stIds"`
}

// Entries returns the pending edits ordered by qId.
func (a *Assignments) Entries() []Entry {
	ids := slices.Sorted(maps.Keys(a.pending))
	out := make([]Entry, len(ids))
	for i, id := range ids {
		out[i] = Entry{QID: id, STIDs: append([]int{}, a.pending[id]...)}
	}
	return out
}

func (a *Assignments) Clear() {
	clear(a.pending)
}
