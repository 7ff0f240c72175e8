package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moto-shop/internal/models"
	"moto-shop/internal/repository"
)

// Purchase intenta comprar una unidad del producto indicado.
//
// El decremento de stock es una única actualización condicional atómica en el
// store ("resta 1 sólo si stock > 0 en este instante"), de modo que dos
// compras simultáneas de la última unidad no pueden tener éxito ambas. Sólo
// tras un decremento exitoso se registra la orden, copiando nombre y precio
// del producto (patrón SNAPSHOT): esos campos no se vuelven a derivar nunca
// del catálogo vivo.
func (s *Service) Purchase(ctx context.Context, motoID string) Result {
	motoID = strings.TrimSpace(motoID)
	if motoID == "" {
		return failure(KindValidation, "Product ID is required!")
	}

	prod, err := s.products.FindByMotoID(ctx, motoID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return failure(KindNotFound, "Product not found!")
		}
		s.log.Error("purchase: product lookup failed", zap.String("moto_id", motoID), zap.Error(err))
		return failure(KindStoreFailure, "Store unavailable: "+err.Error())
	}

	if prod.Stock <= 0 {
		return failure(KindConflict, "Out of stock!")
	}

	if err := s.products.DecrementStock(ctx, motoID); err != nil {
		if errors.Is(err, repository.ErrStockConflict) {
			// Otra compra consumió la última unidad entre la lectura y el update
			return failure(KindConflict, "Stock update failed!")
		}
		s.log.Error("purchase: stock decrement failed", zap.String("moto_id", motoID), zap.Error(err))
		return failure(KindStoreFailure, "Store unavailable: "+err.Error())
	}

	order := &models.Order{
		OrderCode:     newOrderCode(),
		MotoID:        motoID,
		ProductName:   prod.Name,  // SNAPSHOT
		PriceSnapshot: prod.Price, // SNAPSHOT, el precio no cambia después
		Date:          time.Now(),
		Status:        "Confirmed",
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.log.Error("purchase: order insert failed",
			zap.String("moto_id", motoID),
			zap.String("order_code", order.OrderCode),
			zap.Error(err))
		return failure(KindStoreFailure, "Order could not be recorded: "+err.Error())
	}

	return Result{
		Success: true,
		Message: fmt.Sprintf("You bought %s for %.0f €!", prod.Name, prod.Price),
	}
}

func newOrderCode() string {
	return "ORD-" + strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}
