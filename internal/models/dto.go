package models

import "time"

// ===== QUESTION VIEW DTOs =====

// QuestionView is a question rendered under a DisplaySettings.
type QuestionView struct {
	QID        int64    `json:"qId"`
	Year       int      `json:"year,omitempty"`
	Paper      int      `json:"paper,omitempty"`
	QNum       int      `json:"qNum,omitempty"`
	Text       string   `json:"qText,omitempty"`
	Statements []string `json:"statements,omitempty"`
	Choices    []string `json:"choices,omitempty"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	TopicIDs   []int    `json:"tId"`
	Answer     string   `json:"ans,omitempty"`
	HKPercent  *float64 `json:"hkPercent,omitempty"`
}

// NewQuestionView applies the display toggles to q. Image questions carry only the image URL as content.
func NewQuestionView(q Question, d DisplaySettings, imageBase string) QuestionView {
	v := QuestionView{
		QID:      q.QID,
		TopicIDs: append([]int{}, q.TIDs...),
	}
	if d.ShowMetadata {
		v.Year, v.Paper, v.QNum = q.Year, q.Paper, q.QNum
	}
	if q.HasImage {
		v.ImageURL = d.ImageURL(imageBase, q.QID)
	} else {
		v.Text = q.QText
		if q.IsStatements {
			v.Statements = append([]string{}, q.Statements...)
		}
		v.Choices = append([]string{}, q.Choices...)
	}
	if d.AnswerVisible() {
		v.Answer = q.Ans
	}
	if d.PercentVisible() && q.HKPercent != nil {
		p := *q.HKPercent
		v.HKPercent = &p
	}
	return v
}

// QuestionGroup is one group of a grouped question listing.
type QuestionGroup struct {
	Key       string         `json:"key"`
	Questions []QuestionView `json:"questions"`
}

// ===== WORKSHEET DTOs =====

type WorksheetSection struct {
	TopicID int             `json:"tId"`
	Title   string          `json:"title"`
	Groups  []QuestionGroup `json:"groups"`
}

type Worksheet struct {
	Title        string             `json:"title,omitempty"`
	Instructions string             `json:"instructions,omitempty"`
	Display      DisplaySettings    `json:"display"`
	Sections     []WorksheetSection `json:"sections"`
	Empty        bool               `json:"empty"`
	GeneratedAt  time.Time          `json:"generatedAt"`
}

// QuestionCount counts questions across all sections.
func (w *Worksheet) QuestionCount() int {
	n := 0
	for _, s := range w.Sections {
		for _, g := range s.Groups {
			n += len(g.Questions)
		}
	}
	return n
}

// WorksheetOptions lists the choices offered by the worksheet generator.
type WorksheetOptions struct {
	Years               []int     `json:"years"`
	Chapters            []Chapter `json:"chapters"`
	Topics              []Topic   `json:"topics"`
	DefaultInstructions string    `json:"defaultInstructions"`
}

// ===== SAVE RESULTS =====

type SaveResult struct {
	Updated int `json:"updated"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
