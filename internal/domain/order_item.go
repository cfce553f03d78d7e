package domain

// OrderItem references a product by id only; the product row lives in a
// different service's database. Price is a snapshot taken at order time.
type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID int
	Quantity  int
	Price     float64
}
