package validator

// SubtopicCreateRequest represents the request structure for creating subtopics
type SubtopicCreateRequest struct {
	TitleC string `json:"stTitleC" validate:"trimmed_required,max=255"`
	TitleE string `json:"stTitleE" validate:"trimmed_required,max=255"`
}

// SubtopicUpdateRequest edits the titles of one subtopic
type SubtopicUpdateRequest struct {
	TitleC *string `json:"stTitleC" validate:"omitempty,max=255"`
	TitleE *string `json:"stTitleE" validate:"omitempty,max=255"`
}

// TopicEdit is the working copy of one topic as sent by the editor.
// Aristo is the raw text typed into the ordering field.
type TopicEdit struct {
	TID      int     `json:"tId" validate:"required,min=1"`
	TitleE   *string `json:"tTitleE" validate:"omitempty,max=255"`
	TitleC   *string `json:"tTitleC" validate:"omitempty,max=255"`
	IsJunior *bool   `json:"isJunior"`
	Aristo   *string `json:"aristo"`
}

type TopicSaveRequest struct {
	Topics []TopicEdit `json:"topics" validate:"dive"`
}

// AssignmentEntry is the full pending subtopic list for one question
type AssignmentEntry struct {
	QID   int64 `json:"qId" validate:"required,min=1"`
	STIDs []int `json:"stIds" validate:"dive,min=1"`
}

type AssignmentSaveRequest struct {
	Assignments []AssignmentEntry `json:"assignments" validate:"dive"`
}

type ChapterRequest struct {
	CNum   int    `json:"cNum" validate:"min=0"`
	TitleC string `json:"chTitleC" validate:"max=255"`
	TitleE string `json:"chTitleE" validate:"max=255"`
}

// TextbookSaveRequest carries the full textbook. For a draft, TbID is the
// id it is promoted to; for a persisted textbook it must match the path.
type TextbookSaveRequest struct {
	TbID      string           `json:"tbId" validate:"required,max=128,textbook_id"`
	TitleC    string           `json:"tbTitleC" validate:"max=255"`
	TitleE    string           `json:"tbTitleE" validate:"max=255"`
	Publisher string           `json:"publisher" validate:"max=255"`
	IsJunior  bool             `json:"isJunior"`
	Chapters  []ChapterRequest `json:"chapters" validate:"dive"`
}

// WorksheetRequest selects the questions for a printable worksheet
type WorksheetRequest struct {
	Title        string `json:"title" validate:"max=200"`
	Instructions string `json:"instructions" validate:"max=5000"`
	Years        []int  `json:"years" validate:"dive,exam_year"`
	Chapters     []int  `json:"chapters" validate:"dive,min=0"`
	TopicIDs     []int  `json:"topicIds" validate:"dive,min=1"`
	GroupBy      string `json:"groupBy" validate:"omitempty,oneof=topic year"`
	SortBy       string `json:"sortBy" validate:"omitempty,oneof=year-qnum hkPercent"`
	Language     string `json:"lang" validate:"omitempty,oneof=en zh"`
	ShowMetadata *bool  `json:"showMetadata"`
	ShowPercent  *bool  `json:"showPercent"`
	ShowAnswer   *bool  `json:"showAnswer"`
}
