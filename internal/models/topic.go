package models

import "time"

// Topic is a top-level subject category. TID is the domain identifier; ID is the row key.
type Topic struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	TID      int    `json:"tId" gorm:"column:t_id;uniqueIndex;not null" yaml:"tId"`
	TitleE   string `json:"tTitleE" gorm:"column:t_title_e;size:255" yaml:"tTitleE"`
	TitleC   string `json:"tTitleC" gorm:"column:t_title_c;size:255" yaml:"tTitleC"`
	IsJunior bool   `json:"isJunior" gorm:"column:is_junior;default:false" yaml:"isJunior"`
	// Aristo is the chapter number of the ARISTO textbook this topic belongs to.
	Aristo *int `json:"aristo" gorm:"column:aristo;index" yaml:"aristo"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Topic) TableName() string {
	return "topics"
}

// Title returns the topic title for lang, falling back to the other language and then to "Topic {id}".
func (t Topic) Title(lang Language) string {
	first, second := t.TitleE, t.TitleC
	if lang == LanguageChinese {
		first, second = t.TitleC, t.TitleE
	}
	switch {
	case first != "":
		return first
	case second != "":
		return second
	default:
		return "Topic " + itoa(t.TID)
	}
}

// Label is the bilingual label shown for worksheet sections and selectors.
func (t Topic) Label() string {
	return t.TitleC + " (" + t.TitleE + ")"
}

// AristoValue returns the aristo chapter, treating a missing value as 0.
func (t Topic) AristoValue() int {
	if t.Aristo == nil {
		return 0
	}
	return *t.Aristo
}

// Clone returns a deep copy.
func (t Topic) Clone() Topic {
	if t.Aristo != nil {
		v := *t.Aristo
		t.Aristo = &v
	}
	return t
}
