package entity

import "github.com/ruudy-sib/stocksync/internal/domain/valueobject"

// OrderType is the value of an order record's order_type field.
type OrderType string

const (
	OrderTypePurchase OrderType = "Purchase"
	OrderTypeSale     OrderType = "Sale"
	OrderTypeSales    OrderType = "Sales"
)

// Direction reports which way an order of this type moves stock.
// ok is false for any type that should leave stock untouched.
func (t OrderType) Direction() (dir Direction, ok bool) {
	switch t {
	case OrderTypePurchase:
		return DirectionIncrease, true
	case OrderTypeSale, OrderTypeSales:
		return DirectionDecrease, true
	default:
		return "", false
	}
}

// ItemRef addresses an item-master record either by record ID or by item code.
type ItemRef struct {
	ID   string
	Code string
	// LookupByCode forces a code lookup even when Code is blank, as for
	// ordered-items subtable rows.
	LookupByCode bool
}

// ByCode reports whether the item must be looked up by its item code.
func (r ItemRef) ByCode() bool {
	return r.LookupByCode || (r.ID == "" && r.Code != "")
}

// String returns the identifier used to address the item.
func (r ItemRef) String() string {
	if r.ByCode() {
		return "code:" + r.Code
	}
	return "id:" + r.ID
}

// LineItem is one ordered item and its quantity.
type LineItem struct {
	Item     ItemRef
	Quantity float64
}

// Order is an order-tracking record as seen by the stock adjuster.
type Order struct {
	ID    valueobject.RecordID
	Type  OrderType
	Lines []LineItem
}
