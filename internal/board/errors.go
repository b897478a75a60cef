package board

import (
	"fmt"

	"github.com/jason-s-yu/clueboard/internal/apperr"
	"github.com/jason-s-yu/clueboard/internal/models"
)

// InsufficientCategoriesError means a round has fewer categories than a board needs.
type InsufficientCategoriesError struct {
	Round    models.Round
	Found    int
	Required int
}

func (e *InsufficientCategoriesError) Error() string {
	return fmt.Sprintf("insufficient categories for %s round: found %d, need %d", e.Round, e.Found, e.Required)
}

func (e *InsufficientCategoriesError) Code() apperr.Code { return apperr.CodeInsufficientCategories }

// MissingValueClueError means a chosen category has no clue at a required value.
type MissingValueClueError struct {
	Round    models.Round
	Category string
	Value    int
}

func (e *MissingValueClueError) Error() string {
	return fmt.Sprintf("cannot find clue for %s round, category %q, value $%d", e.Round, e.Category, e.Value)
}

func (e *MissingValueClueError) Code() apperr.Code { return apperr.CodeMissingValueClue }

// DailyDoubleCountError means the selected clues hold the wrong number of daily doubles.
type DailyDoubleCountError struct {
	Round    models.Round
	Found    int
	Required int
}

func (e *DailyDoubleCountError) Error() string {
	return fmt.Sprintf("invalid daily double count for %s round: found %d, need %d", e.Round, e.Found, e.Required)
}

func (e *DailyDoubleCountError) Code() apperr.Code { return apperr.CodeDailyDoubleCountMismatch }
