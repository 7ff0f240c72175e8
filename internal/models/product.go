package models

import (
	"time"
)

// Specs es el sub-documento técnico embebido en cada producto
type Specs struct {
	WeightKg      int `json:"weight_kg" bson:"weight_kg"`
	FuelTankL     int `json:"fuel_tank_l" bson:"fuel_tank_l"`
	WarrantyYears int `json:"warranty_years" bson:"warranty_years"`
}

// Product representa una moto en el catálogo. El precio se fija al crear;
// las compras sólo modifican el stock.
type Product struct {
	MotoID    string    `json:"moto_id" bson:"moto_id"`
	Name      string    `json:"name" bson:"name"`
	Brand     string    `json:"brand" bson:"brand"`
	Type      string    `json:"type" bson:"type"`
	CC        int       `json:"cc" bson:"cc"`
	Price     float64   `json:"price" bson:"price"`
	Stock     int       `json:"stock" bson:"stock"`
	Color     string    `json:"color" bson:"color"`
	Specs     Specs     `json:"specs" bson:"specs"`
	Embedding []float64 `json:"vector_embedding" bson:"vector_embedding"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
