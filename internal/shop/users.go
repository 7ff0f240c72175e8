package shop

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"moto-shop/internal/models"
	"moto-shop/internal/repository"
)

// Máximo de direcciones embebidas por usuario (EMBEDDING 1:N limitado)
const maxAddresses = 3

// CreateUser da de alta un usuario. Valida antes de tocar el store: nombre y
// email obligatorios, formato de email, unicidad de email. Las direcciones se
// limitan a las 3 primeras. Devuelve el user_id generado junto al resultado.
func (s *Service) CreateUser(ctx context.Context, input models.UserInput) (Result, string) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return failure(KindValidation, "Name is required!"), ""
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return failure(KindValidation, "Email is required!"), ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return failure(KindValidation, "Invalid email format!"), ""
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return failure(KindConflict, fmt.Sprintf("Email %s is already taken!", email)), ""
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		s.log.Error("create user: email lookup failed", zap.Error(err))
		return failure(KindStoreFailure, "Store unavailable: "+err.Error()), ""
	}

	userID, err := s.users.NextUserID(ctx)
	if err != nil {
		s.log.Error("create user: id generation failed", zap.Error(err))
		return failure(KindStoreFailure, "Store unavailable: "+err.Error()), ""
	}

	user := &models.User{
		UserID:    userID,
		Name:      name,
		Email:     email,
		Addresses: capAddresses(input.Addresses),
		CreatedAt: time.Now(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			// El índice único cierra la carrera entre el chequeo y el insert
			return failure(KindConflict, fmt.Sprintf("Email %s is already taken!", email)), ""
		}
		s.log.Error("create user: insert failed", zap.Error(err))
		return failure(KindStoreFailure, "Store unavailable: "+err.Error()), ""
	}

	return Result{Success: true, Message: fmt.Sprintf("User %s created!", name)}, userID
}

// UpdateUser modifica nombre, email y direcciones de un usuario existente
func (s *Service) UpdateUser(ctx context.Context, userID string, input models.UserInput) Result {
	if _, err := s.users.FindByUserID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return failure(KindNotFound, fmt.Sprintf("User %s not found!", userID))
		}
		s.log.Error("update user: lookup failed", zap.Error(err))
		return failure(KindStoreFailure, "Store unavailable: "+err.Error())
	}

	err := s.users.Update(ctx, userID, strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Email), capAddresses(input.Addresses))
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return failure(KindConflict, fmt.Sprintf("Email %s is already taken!", input.Email))
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return failure(KindNotFound, fmt.Sprintf("User %s not found!", userID))
		}
		s.log.Error("update user: update failed", zap.Error(err))
		return failure(KindStoreFailure, "Store unavailable: "+err.Error())
	}

	return Result{Success: true, Message: fmt.Sprintf("User %s updated!", userID)}
}

func (s *Service) DeleteUser(ctx context.Context, userID string) Result {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return failure(KindNotFound, "User not found!")
		}
		s.log.Error("delete user: delete failed", zap.Error(err))
		return failure(KindStoreFailure, "Store unavailable: "+err.Error())
	}
	return Result{Success: true, Message: fmt.Sprintf("User %s deleted!", userID)}
}

// ListUsers degrada a lista vacía ante un fallo del store
func (s *Service) ListUsers(ctx context.Context) []models.User {
	users, err := s.users.List(ctx)
	if err != nil {
		s.log.Error("list users: scan failed", zap.Error(err))
		return []models.User{}
	}
	return users
}

func capAddresses(addresses []models.Address) []models.Address {
	if len(addresses) > maxAddresses {
		return addresses[:maxAddresses]
	}
	if addresses == nil {
		return []models.Address{}
	}
	return addresses
}
