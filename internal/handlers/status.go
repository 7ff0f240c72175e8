package handlers

import (
	"net/http"

	"moto-shop/internal/shop"
)

// statusForFailure traduce la clase del fallo al código HTTP. El cuerpo de la
// respuesta es siempre el Result estructurado del servicio.
func statusForFailure(result shop.Result) int {
	switch result.Kind {
	case shop.KindValidation:
		return http.StatusBadRequest
	case shop.KindNotFound:
		return http.StatusNotFound
	case shop.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
