package http

import (
	"net/http"

	"pompa-press/internal/entity"
	"pompa-press/internal/usecase"
	"pompa-press/pkg/logger"

	"github.com/gin-gonic/gin"
)

type SubscriberHandler struct {
	subscriberUseCase usecase.SubscriberUseCase
	logger            *logger.Logger
}

func NewSubscriberHandler(subscriberUseCase usecase.SubscriberUseCase, logger *logger.Logger) *SubscriberHandler {
	return &SubscriberHandler{
		subscriberUseCase: subscriberUseCase,
		logger:            logger,
	}
}

type SubscribeRequest struct {
	Nombre       string                `json:"nombre" binding:"required"`
	Email        string                `json:"email" binding:"required"`
	Preferencias *entity.CategoryFlags `json:"preferencias"`
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Description  Register a newsletter recipient, or reactivate an existing one with the same email. Defaults to every category when no preferences are given.
// @Tags         suscriptores
// @Accept       json
// @Produce      json
// @Param        subscriber body SubscribeRequest true "Subscriber payload"
// @Success      201  {object}  map[string]interface{}
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /suscriptores [post]
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscriber, created, err := h.subscriberUseCase.Subscribe(req.Nombre, req.Email, req.Preferencias)
	if err != nil {
		h.logger.Error("Failed to subscribe %s: %v", req.Email, err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	resultado := "reactivado"
	if created {
		status = http.StatusCreated
		resultado = "creado"
	}
	c.JSON(status, gin.H{"resultado": resultado, "suscriptor": subscriber})
}

type UnsubscribeRequest struct {
	Motivo string `json:"motivo"`
}

// Unsubscribe godoc
// @Summary      Unsubscribe from the newsletter
// @Description  Deactivate the subscriber behind an unsubscribe token. Idempotent. An optional motivo is kept in the logs.
// @Tags         suscriptores
// @Accept       json
// @Produce      json
// @Param        token path string true "Unsubscribe token"
// @Param        reason body UnsubscribeRequest false "Optional unsubscribe reason"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /suscriptores/desuscribir/{token} [post]
func (h *SubscriberHandler) Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	if err := h.subscriberUseCase.Unsubscribe(c.Param("token"), req.Motivo); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
}

// UpdatePreferences godoc
// @Summary      Update category preferences
// @Tags         suscriptores
// @Accept       json
// @Produce      json
// @Param        token path string true "Unsubscribe token"
// @Param        preferences body entity.CategoryFlags true "Category opt-ins"
// @Success      200  {object}  entity.Subscriber
// @Failure      404  {object}  map[string]string
// @Router       /suscriptores/preferencias/{token} [put]
func (h *SubscriberHandler) UpdatePreferences(c *gin.Context) {
	var flags entity.CategoryFlags
	if err := c.ShouldBindJSON(&flags); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subscriber, err := h.subscriberUseCase.UpdatePreferences(c.Param("token"), flags)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, subscriber)
}
