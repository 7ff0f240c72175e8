package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moto-shop/internal/models"
	"moto-shop/internal/shop"
)

// UserHandler expone el CRUD de usuarios
type UserHandler struct {
	svc *shop.Service
}

func NewUserHandler(svc *shop.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListUsers(c.Request.Context()))
}

// Create da de alta un usuario. El binding valida presencia y formato de
// email; el servicio repite la validación y añade la unicidad.
func (h *UserHandler) Create(c *gin.Context) {
	var input models.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, shop.Result{Success: false, Message: "Invalid payload: " + err.Error()})
		return
	}

	result, userID := h.svc.CreateUser(c.Request.Context(), input)
	if !result.Success {
		c.JSON(statusForFailure(result), result)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": result.Message,
		"user_id": userID,
	})
}

func (h *UserHandler) Update(c *gin.Context) {
	var input models.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, shop.Result{Success: false, Message: "Invalid payload: " + err.Error()})
		return
	}

	result := h.svc.UpdateUser(c.Request.Context(), c.Param("id"), input)
	if !result.Success {
		c.JSON(statusForFailure(result), result)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) Delete(c *gin.Context) {
	result := h.svc.DeleteUser(c.Request.Context(), c.Param("id"))
	if !result.Success {
		c.JSON(statusForFailure(result), result)
		return
	}

	c.JSON(http.StatusOK, result)
}
