package entity

// Item is an item-master record. Only the stock count is ever written.
type Item struct {
	ID    string
	Code  string
	Stock float64
}
