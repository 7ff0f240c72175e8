package models

import (
	"time"
)

// Address es una dirección embebida dentro del documento de usuario
// (patrón EMBEDDING: relación 1:N limitada, máximo 3 por usuario).
type Address struct {
	Label  string `json:"label" bson:"label"`
	City   string `json:"city" bson:"city"`
	Street string `json:"street" bson:"street"`
	Zip    string `json:"zip" bson:"zip"`
}

// User representa un cliente de la tienda
type User struct {
	UserID    string    `json:"user_id" bson:"user_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Addresses []Address `json:"addresses" bson:"addresses"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// UserInput son los campos aceptados al crear o actualizar un usuario
type UserInput struct {
	Name      string    `json:"name" binding:"required"`
	Email     string    `json:"email" binding:"required,email"`
	Addresses []Address `json:"addresses"`
}
