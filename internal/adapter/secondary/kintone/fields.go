package kintone

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ruudy-sib/stocksync/internal/domain"
	"github.com/ruudy-sib/stocksync/internal/domain/valueobject"
)

// Field codes used in the order-tracking and item-master apps.
const (
	fieldRecordID     = "$id"
	fieldOrderType    = "order_type"
	fieldItemRecordNo = "item_rn"
	fieldQuantity     = "qty"
	fieldOrderedItems = "ordered_items"
	fieldItemCode     = "item_code"
	fieldStock        = "stock"
)

// field is one kintone field as rendered by the REST API: {"type": "...", "value": ...}.
type field struct {
	Type  string          `json:"type,omitempty"`
	Value json.RawMessage `json:"value"`
}

// record is a kintone record keyed by field code.
type record map[string]field

type subtableRow struct {
	ID    string `json:"id"`
	Value record `json:"value"`
}

func (r record) has(code string) bool {
	_, ok := r[code]
	return ok
}

// text returns a scalar field value as a string. kintone renders scalars as
// strings, but numbers are accepted too.
func (r record) text(code string) (string, error) {
	f, ok := r[code]
	if !ok {
		return "", fmt.Errorf("%w: field %q missing", domain.ErrMalformedRecord, code)
	}

	raw := bytes.TrimSpace(f.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: field %q: %v", domain.ErrMalformedRecord, code, err)
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("%w: field %q is not a scalar", domain.ErrMalformedRecord, code)
	}
	return n.String(), nil
}

// number returns a field value coerced to a number.
func (r record) number(code string) (float64, error) {
	s, err := r.text(code)
	if err != nil {
		return 0, err
	}
	n, err := valueobject.ParseNumber(s)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", code, err)
	}
	return n, nil
}

// subtable returns the rows of a SUBTABLE field.
func (r record) subtable(code string) ([]subtableRow, error) {
	f, ok := r[code]
	if !ok {
		return nil, fmt.Errorf("%w: field %q missing", domain.ErrMalformedRecord, code)
	}

	var rows []subtableRow
	if err := json.Unmarshal(f.Value, &rows); err != nil {
		return nil, fmt.Errorf("%w: field %q is not a subtable: %v", domain.ErrMalformedRecord, code, err)
	}
	return rows, nil
}

// numberValue is the body of a partial update for a NUMBER field.
type numberValue struct {
	Value float64 `json:"value"`
}
