package models

import (
	"time"

	"gorm.io/datatypes"
)

// Chapter is embedded in a Textbook. CNum is not unique.
type Chapter struct {
	CNum   int    `json:"cNum" yaml:"cNum"`
	TitleC string `json:"chTitleC" yaml:"chTitleC"`
	TitleE string `json:"chTitleE" yaml:"chTitleE"`
}

// Textbook is identified by TbID, an uppercase_with_underscores string chosen by the admin.
type Textbook struct {
	ID        uint                         `json:"-" gorm:"primaryKey"`
	TbID      string                       `json:"tbId" gorm:"column:tb_id;uniqueIndex;size:128;not null" yaml:"tbId"`
	TitleC    string                       `json:"tbTitleC" gorm:"column:tb_title_c;size:255" yaml:"tbTitleC"`
	TitleE    string                       `json:"tbTitleE" gorm:"column:tb_title_e;size:255" yaml:"tbTitleE"`
	Publisher string                       `json:"publisher" gorm:"column:publisher;size:255" yaml:"publisher"`
	IsJunior  bool                         `json:"isJunior" gorm:"column:is_junior" yaml:"isJunior"`
	Chapters  datatypes.JSONSlice[Chapter] `json:"chapters" gorm:"column:chapters;type:jsonb" yaml:"chapters"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"-"`
}

func (Textbook) TableName() string {
	return "textbooks"
}

// Clone returns a deep copy.
func (t Textbook) Clone() Textbook {
	t.Chapters = append(datatypes.JSONSlice[Chapter]{}, t.Chapters...)
	return t
}
