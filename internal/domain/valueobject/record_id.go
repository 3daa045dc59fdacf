package valueobject

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ruudy-sib/stocksync/internal/domain"
)

// RecordID is an immutable value object identifying a kintone record.
// kintone renders identifiers as strings, but some webhook sources send
// bare numbers, so both decode into the same value.
type RecordID struct {
	value string
}

// NewRecordID creates a validated RecordID from a string.
func NewRecordID(value string) (RecordID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return RecordID{}, fmt.Errorf("%w: must not be empty", domain.ErrInvalidRecordID)
	}
	return RecordID{value: trimmed}, nil
}

// String returns the string representation of the RecordID.
func (r RecordID) String() string {
	return r.value
}

// IsZero reports whether the RecordID was never set.
func (r RecordID) IsZero() bool {
	return r.value == ""
}

// Equals checks equality with another RecordID.
func (r RecordID) Equals(other RecordID) bool {
	return r.value == other.value
}

// UnmarshalJSON accepts a JSON string or number. null and "" leave the zero value.
func (r *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = RecordID{}
		return nil
	}

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidRecordID, err)
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidRecordID, err)
		}
		s = n.String()
	}

	*r = RecordID{value: strings.TrimSpace(s)}
	return nil
}

// MarshalJSON renders the RecordID as a JSON string.
func (r RecordID) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}
