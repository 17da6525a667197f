package models

// LineItem is one product entry in a cart: quantity, optional color choice
// and a selection flag marking inclusion in the next checkout. A cart holds
// at most one LineItem per product.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color,omitempty"`
	Selected  bool    `json:"selected"`
}
