package valueobject

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ruudy-sib/stocksync/internal/domain"
)

// ParseNumber coerces a kintone field value to a number. A blank value is 0,
// matching how kintone leaves empty NUMBER fields.
func ParseNumber(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}

	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidNumber, value)
	}
	return n, nil
}
