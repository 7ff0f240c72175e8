package repository

import "errors"

// Errores centinela que los servicios traducen a resultados estructurados
var (
	ErrProductNotFound = errors.New("product not found")
	ErrStockConflict   = errors.New("stock update conflict")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already taken")
)
