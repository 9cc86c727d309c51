package http

import (
	"net/http"
	"strconv"

	"pompa-press/internal/usecase"
	"pompa-press/pkg/logger"

	"github.com/gin-gonic/gin"
)

type NewsletterHandler struct {
	newsletterUseCase usecase.NewsletterUseCase
	logger            *logger.Logger
}

func NewNewsletterHandler(newsletterUseCase usecase.NewsletterUseCase, logger *logger.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterUseCase: newsletterUseCase,
		logger:            logger,
	}
}

// ListNewsletters godoc
// @Summary      List newsletter batches
// @Description  Dispatch history newest first, with per-batch totals and error logs.
// @Tags         newsletters
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {array}   entity.Newsletter
// @Router       /admin/newsletters [get]
func (h *NewsletterHandler) ListNewsletters(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	newsletters, err := h.newsletterUseCase.ListNewsletters(limit, offset)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newsletters)
}

// GetNewsletter godoc
// @Summary      Get a newsletter batch
// @Tags         newsletters
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Newsletter ID"
// @Success      200  {object}  entity.Newsletter
// @Failure      404  {object}  map[string]string
// @Router       /admin/newsletters/{id} [get]
func (h *NewsletterHandler) GetNewsletter(c *gin.Context) {
	newsletter, err := h.newsletterUseCase.GetNewsletter(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newsletter)
}

// Resend godoc
// @Summary      Resend a newsletter
// @Description  Run a fresh manual fan-out for the content behind an earlier batch. The one-shot guard applies only to automatic batches.
// @Tags         newsletters
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Newsletter ID"
// @Success      200  {object}  entity.DispatchResult
// @Failure      404  {object}  map[string]string
// @Router       /admin/newsletters/{id}/reenviar [post]
func (h *NewsletterHandler) Resend(c *gin.Context) {
	result, err := h.newsletterUseCase.Resend(c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to resend newsletter %s: %v", c.Param("id"), err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
