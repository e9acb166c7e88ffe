package models

import "time"

// Subtopic belongs to a Topic by value. STID is always TID*100 + STSeq.
type Subtopic struct {
	ID     uint    `json:"id,omitempty" gorm:"primaryKey"`
	TID    int     `json:"tId" gorm:"column:t_id;not null;uniqueIndex:idx_subtopic_topic_seq" yaml:"tId"`
	STSeq  int     `json:"stSeq" gorm:"column:st_seq;not null;uniqueIndex:idx_subtopic_topic_seq" yaml:"stSeq"`
	STID   int     `json:"stId" gorm:"column:st_id;not null;uniqueIndex" yaml:"stId"`
	TitleC *string `json:"stTitleC" gorm:"column:st_title_c;size:255" yaml:"stTitleC"`
	TitleE *string `json:"stTitleE" gorm:"column:st_title_e;size:255" yaml:"stTitleE"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Subtopic) TableName() string {
	return "subtopics"
}

// SubtopicID derives the composite subtopic id.
func SubtopicID(tID, stSeq int) int {
	return tID*100 + stSeq
}
