package models

import (
	"time"
)

// Order es una compra registrada. ProductName y PriceSnapshot se copian del
// producto en el momento de la compra (patrón SNAPSHOT) y nunca se vuelven a
// derivar del catálogo.
type Order struct {
	OrderCode     string    `json:"order_code" bson:"order_code"`
	MotoID        string    `json:"moto_id" bson:"moto_id"`
	ProductName   string    `json:"product_name" bson:"product_name"`
	PriceSnapshot float64   `json:"price_snapshot" bson:"price_snapshot"`
	Date          time.Time `json:"date" bson:"date"`
	Status        string    `json:"status" bson:"status"`
}
