package entity

// Direction is the sign of a stock adjustment.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

// Apply returns current moved by quantity in this direction.
// No bounds are enforced, so stock may go negative.
func (d Direction) Apply(current, quantity float64) float64 {
	if d == DirectionDecrease {
		return current - quantity
	}
	return current + quantity
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == DirectionDecrease {
		return DirectionIncrease
	}
	return DirectionDecrease
}
