// Package stats derives accuracy figures from a session's history.
package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/vytor/emojiabc/internal/models"
)

// Formula selects how accuracy is derived from attempts and errors.
type Formula int

const (
	// FormulaAttempts is attempts / (attempts + errors). Always within (0, 100].
	FormulaAttempts Formula = iota
	// FormulaErrorFraction is (attempts - errors) / attempts. Goes negative
	// once errors outnumber attempts.
	FormulaErrorFraction
)

func (f Formula) String() string {
	switch f {
	case FormulaAttempts:
		return "attempts"
	case FormulaErrorFraction:
		return "error-fraction"
	default:
		return "unknown"
	}
}

func ParseFormula(s string) (Formula, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attempts":
		return FormulaAttempts, nil
	case "error-fraction", "error_fraction":
		return FormulaErrorFraction, nil
	default:
		return FormulaAttempts, fmt.Errorf("unknown accuracy formula %q", s)
	}
}

// Compute summarizes history. Accuracy is a percentage rounded to two
// decimals and is 0 for an empty history.
func Compute(history []models.HistoryRecord, formula Formula) models.Statistics {
	out := models.Statistics{TotalAttempts: len(history)}
	for _, rec := range history {
		out.TotalErrors += rec.Error
	}
	if out.TotalAttempts == 0 {
		return out
	}

	attempts := float64(out.TotalAttempts)
	errs := float64(out.TotalErrors)

	var accuracy float64
	switch formula {
	case FormulaErrorFraction:
		accuracy = (attempts - errs) / attempts * 100
	default:
		accuracy = attempts / (attempts + errs) * 100
	}
	out.Accuracy = round2(accuracy)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
