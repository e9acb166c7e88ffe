package postgres

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/mcq-bank-service/internal/repositories"
)

// jsonArrayContains matches rows whose JSONB array column holds value.
func jsonArrayContains(column string, value int) clause.Expr {
	return gorm.Expr(column+" @> ?::jsonb", "["+strconv.Itoa(value)+"]")
}

// firstBy resolves a domain identifier with an equality query limited to one row.
func firstBy[T any](db *gorm.DB, column string, value any, entity string) (*T, error) {
	var rows []T
	if err := db.Where(column+" = ?", value).Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", entity, err)
	}
	if len(rows) == 0 {
		return nil, repositories.NotFound(entity, value)
	}
	return &rows[0], nil
}

// translateWriteError maps unique violations onto repositories.ErrDuplicate.
func translateWriteError(err error, action string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "SQLSTATE 23505") {
		return fmt.Errorf("failed to %s: %w", action, repositories.ErrDuplicate)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func intsKey(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
