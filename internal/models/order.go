package models

// Una línea de pedido: el título se desnormaliza para no hacer lookup
// al armar canastas.
type OrderItemDoc struct {
	AlbumID   int     `json:"albumId" bson:"albumId"`
	Title     string  `json:"title" bson:"title"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unitPrice" bson:"unitPrice"`
}

// Un pedido con sus líneas embebidas. OrderDate en formato YYYY-MM-DD
// para poder filtrar con $gte/$lte directo sobre el string.
type OrderDoc struct {
	OrderID    int            `json:"orderId" bson:"orderId"`
	CustomerID int            `json:"customerId" bson:"customerId"`
	OrderDate  string         `json:"orderDate" bson:"orderDate"`
	Items      []OrderItemDoc `json:"items" bson:"items"`
	Total      float64        `json:"total" bson:"total"`
}
