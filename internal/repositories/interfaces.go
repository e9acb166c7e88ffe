package repositories

// ===== SHARED FILTER STRUCTS =====

// QuestionFilter selects questions. Years uses an "any of" predicate and must be
// non-empty when set; use YearsOrPlaceholder. TopicID uses a "contains" predicate
// against the question's topic array.
type QuestionFilter struct {
	Years   []int `json:"years"`
	TopicID *int  `json:"t_id"`
}

// NoYear never matches a real exam year.
const NoYear = 0

// YearsOrPlaceholder substitutes a single harmless value for an empty year set
// so that an "any of" query is never issued with no values.
func YearsOrPlaceholder(years []int) []int {
	if len(years) == 0 {
		return []int{NoYear}
	}
	return years
}

// TopicFields are the partially updatable topic columns.
type TopicFields map[string]any

const (
	TopicFieldTitleE   = "t_title_e"
	TopicFieldTitleC   = "t_title_c"
	TopicFieldIsJunior = "is_junior"
	TopicFieldAristo   = "aristo"
)
