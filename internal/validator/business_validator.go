package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
)

const (
	MinExamYear = 1990
	MaxExamYear = 2100
)

var textbookIDPattern = regexp.MustCompile(`^[A-Z0-9]+(_[A-Z0-9]+)*$`)

// BusinessValidator handles business rule validation
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	bv := &BusinessValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
	bv.registerBusinessRules()
	return bv
}

// Validate validates struct tags
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateTextbookSave checks the request and rejects a reserved temporary id
// as the id a draft is promoted to.
func (bv *BusinessValidator) ValidateTextbookSave(req *TextbookSaveRequest) ValidationErrors {
	errors := bv.Validate(req)
	if strings.HasPrefix(req.TbID, "TEMP_") {
		errors = append(errors, ValidationError{
			Field:   "tbId",
			Message: "uses the reserved TEMP_ prefix",
			Value:   req.TbID,
			Rule:    "business_logic",
		})
	}
	return errors
}

// ValidateQuestion checks an imported question record.
func (bv *BusinessValidator) ValidateQuestion(q *models.Question) ValidationErrors {
	var errors ValidationErrors

	if q.QID <= 0 {
		errors = append(errors, ValidationError{Field: "qId", Message: "must be positive", Value: q.QID, Rule: "min"})
	}
	if err := bv.validate.Var(q.Year, "exam_year"); err != nil {
		errors = append(errors, ValidationError{Field: "year", Message: "is not a valid exam year", Value: q.Year, Rule: "exam_year"})
	}
	if q.Ans != "" {
		if err := bv.validate.Var(q.Ans, "choice_letter"); err != nil {
			errors = append(errors, ValidationError{Field: "ans", Message: "must be a single choice letter A-D", Value: q.Ans, Rule: "choice_letter"})
		}
	}
	if q.IsStatements && len(q.Statements) == 0 {
		errors = append(errors, ValidationError{
			Field:   "statements",
			Message: "must not be empty when isStatements is set",
			Value:   q.QID,
			Rule:    "business_logic",
		})
	}
	if len(q.TIDs) == 0 {
		errors = append(errors, ValidationError{Field: "tId", Message: "must name at least one topic", Value: q.QID, Rule: "business_logic"})
	}

	return errors
}

func (bv *BusinessValidator) registerBusinessRules() {
	// Uppercase words joined by single underscores
	bv.validate.RegisterValidation("textbook_id", func(fl validator.FieldLevel) bool {
		return textbookIDPattern.MatchString(fl.Field().String())
	})

	bv.validate.RegisterValidation("exam_year", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= MinExamYear && year <= MaxExamYear
	})

	// Non-empty after trimming whitespace
	bv.validate.RegisterValidation("trimmed_required", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	bv.validate.RegisterValidation("choice_letter", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "A", "B", "C", "D":
			return true
		}
		return false
	})
}
