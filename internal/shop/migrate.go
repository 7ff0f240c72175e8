package shop

import (
	"context"

	"go.uber.org/zap"
)

// MigrationResult es el resultado del paso de actualización de esquema
type MigrationResult struct {
	Success  bool   `json:"success"`
	Migrated int64  `json:"migrated"`
	Message  string `json:"message"`
}

// MigrateAddresses actualiza usuarios antiguos con un campo address singular
// al array addresses embebido. Es idempotente y se invoca explícitamente
// desde el arranque, nunca desde una ruta de la API.
func (s *Service) MigrateAddresses(ctx context.Context) MigrationResult {
	migrated, err := s.users.MigrateLegacyAddresses(ctx)
	if err != nil {
		s.log.Error("address migration failed", zap.Int64("migrated", migrated), zap.Error(err))
		return MigrationResult{
			Success:  false,
			Migrated: migrated,
			Message:  "address migration failed: " + err.Error(),
		}
	}

	return MigrationResult{
		Success:  true,
		Migrated: migrated,
		Message:  "address migration completed",
	}
}
