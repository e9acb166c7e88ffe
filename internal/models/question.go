package models

import (
	"time"

	"gorm.io/datatypes"
)

// Question is one past-paper multiple-choice question. QID is stable and globally unique.
type Question struct {
	ID           uint                        `json:"-" gorm:"primaryKey"`
	QID          int64                       `json:"qId" gorm:"column:q_id;uniqueIndex;not null" yaml:"qId"`
	Year         int                         `json:"year" gorm:"column:year;index;not null" yaml:"year"`
	Paper        int                         `json:"paper" gorm:"column:paper" yaml:"paper"`
	QNum         int                         `json:"qNum" gorm:"column:q_num" yaml:"qNum"`
	QText        string                      `json:"qText" gorm:"column:q_text;type:text" yaml:"qText"`
	IsStatements bool                        `json:"isStatements" gorm:"column:is_statements" yaml:"isStatements"`
	Statements   datatypes.JSONSlice[string] `json:"statements" gorm:"column:statements;type:jsonb" yaml:"statements"`
	Choices      datatypes.JSONSlice[string] `json:"choices" gorm:"column:choices;type:jsonb" yaml:"choices"`
	HasImage     bool                        `json:"hasImage" gorm:"column:has_image" yaml:"hasImage"`
	TIDs         datatypes.JSONSlice[int]    `json:"tId" gorm:"column:t_ids;type:jsonb" yaml:"tId"`
	STIDs        datatypes.JSONSlice[int]    `json:"stIds,omitempty" gorm:"column:st_ids;type:jsonb" yaml:"stIds"`
	Ans          string                      `json:"ans" gorm:"column:ans;size:1" yaml:"ans"`
	// HKPercent is the historical correct-answer rate; nil when unknown.
	HKPercent *float64 `json:"hkPercent,omitempty" gorm:"column:hk_percent" yaml:"hkPercent"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// HasTopic reports whether the question is tagged with any of ids.
func (q Question) HasTopic(ids ...int) bool {
	for _, t := range q.TIDs {
		for _, id := range ids {
			if t == id {
				return true
			}
		}
	}
	return false
}

// Percent returns HKPercent, or -1 when absent.
func (q Question) Percent() float64 {
	if q.HKPercent == nil {
		return -1
	}
	return *q.HKPercent
}

// Clone returns a deep copy.
func (q Question) Clone() Question {
	q.Statements = append(datatypes.JSONSlice[string](nil), q.Statements...)
	q.Choices = append(datatypes.JSONSlice[string](nil), q.Choices...)
	q.TIDs = append(datatypes.JSONSlice[int](nil), q.TIDs...)
	if q.STIDs != nil {
		q.STIDs = append(datatypes.JSONSlice[int]{}, q.STIDs...)
	}
	if q.HKPercent != nil {
		v := *q.HKPercent
		q.HKPercent = &v
	}
	return q
}
