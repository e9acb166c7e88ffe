package editor

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
)

// TempIDPrefix marks textbooks that exist only in memory.
const TempIDPrefix = "TEMP_"

// NewTempID returns a local-only textbook id.
func NewTempID(now time.Time) string {
	return TempIDPrefix + strconv.FormatInt(now.UnixMilli(), 10) + "_" + uuid.NewString()[:8]
}

func IsTemporaryID(tbID string) bool {
	return strings.HasPrefix(tbID, TempIDPrefix)
}

// NormalizeTextbookID trims, upper-cases and replaces inner spaces with underscores.
func NormalizeTextbookID(tbID string) string {
	return strings.Join(strings.Fields(strings.ToUpper(tbID)), "_")
}

// NewDraft returns an unsaved textbook with a temporary id.
func NewDraft(now time.Time) models.Textbook {
	return models.Textbook{TbID: NewTempID(now)}
}

// AddChapter appends an empty chapter numbered len+1.
func AddChapter(tb *models.Textbook) {
	tb.Chapters = append(tb.Chapters, models.Chapter{CNum: len(tb.Chapters) + 1})
}

// RemoveChapter deletes the chapter at index. Remaining chapters keep their numbers.
func RemoveChapter(tb *models.Textbook, index int) bool {
	if index < 0 || index >= len(tb.Chapters) {
		return false
	}
	tb.Chapters = slices.Delete(tb.Chapters, index, index+1)
	return true
}

// SortChapters orders chapters by cNum, keeping duplicates in their current order.
func SortChapters(chapters []models.Chapter) {
	slices.SortStableFunc(chapters, func(a, b models.Chapter) int {
		return cmp.Compare(a.CNum, b.CNum)
	})
}
