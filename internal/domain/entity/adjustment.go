package entity

import "github.com/ruudy-sib/stocksync/internal/domain/valueobject"

// AdjustmentOutcome is what happened to a single line item.
type AdjustmentOutcome string

const (
	OutcomeUpdated          AdjustmentOutcome = "updated"
	OutcomeSkippedNotFound  AdjustmentOutcome = "skipped_not_found"
	OutcomeSkippedAmbiguous AdjustmentOutcome = "skipped_ambiguous"
)

// Adjustment is the result of applying one line item to the item master.
// Before and After are only meaningful when Outcome is OutcomeUpdated.
type Adjustment struct {
	OrderID   valueobject.RecordID
	Item      ItemRef
	ItemID    string
	Direction Direction
	Quantity  float64
	Before    float64
	After     float64
	Matches   int
	Outcome   AdjustmentOutcome
}

// CountOutcomes tallies adjustments by outcome.
func CountOutcomes(adjustments []Adjustment) map[AdjustmentOutcome]int {
	counts := make(map[AdjustmentOutcome]int, 3)
	for _, a := range adjustments {
		counts[a.Outcome]++
	}
	return counts
}
