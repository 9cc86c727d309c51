package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"pompa-press/internal/entity"
	"pompa-press/internal/usecase"
	"pompa-press/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentUseCase usecase.ContentUseCase
	visitUseCase   usecase.VisitUseCase
	logger         *logger.Logger
}

func NewContentHandler(contentUseCase usecase.ContentUseCase, visitUseCase usecase.VisitUseCase, logger *logger.Logger) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
		visitUseCase:   visitUseCase,
		logger:         logger,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrAlreadyDispatched):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type ContentRequest struct {
	Categoria        string                   `json:"categoria" binding:"required"`
	Titulo           string                   `json:"titulo" binding:"required"`
	AutorID          string                   `json:"autor_id"`
	FechaPublicacion string                   `json:"fecha_publicacion"`
	Estado           string                   `json:"estado"`
	Issue            *entity.IssuePayload     `json:"issue"`
	MadeInArg        *entity.MadeInArgPayload `json:"madeinarg"`
	News             *entity.NewsPayload      `json:"news"`
	References       []entity.ReferenceLink   `json:"espacios_referencia"`
}

func (req *ContentRequest) toEntity() (*entity.Content, error) {
	content := &entity.Content{
		Categoria:  entity.Category(req.Categoria),
		Titulo:     req.Titulo,
		AutorID:    req.AutorID,
		Estado:     entity.State(req.Estado),
		Issue:      req.Issue,
		MadeInArg:  req.MadeInArg,
		News:       req.News,
		References: req.References,
	}
	if req.FechaPublicacion != "" {
		fecha, err := time.Parse("2006-01-02", req.FechaPublicacion)
		if err != nil {
			return nil, err
		}
		content.FechaPublicacion = fecha
	}
	return content, nil
}

func formatContentResponse(content *entity.Content) map[string]interface{} {
	response := map[string]interface{}{
		"id":                      content.ID,
		"categoria":               content.Categoria,
		"titulo":                  content.Titulo,
		"slug":                    content.Slug,
		"autor_id":                content.AutorID,
		"fecha_publicacion":       content.FechaPublicacion.Format("2006-01-02"),
		"estado":                  content.Estado,
		"contador_visitas":        content.ContadorVisitas,
		"contador_visitas_total":  content.ContadorVisitasTotal,
		"ultimo_reseteo_contador": content.UltimoReseteo,
		"espacios_referencia":     content.References,
		"imagenes":                content.ImageURLs(entity.SlotKindGallery),
		"imagenes_pendientes":     pendingSlotCount(content),
		"created_at":              content.CreatedAt,
		"updated_at":              content.UpdatedAt,
	}

	switch content.Categoria {
	case entity.CategoryIssues:
		response["issue"] = content.Issue
		response["backstage"] = content.ImageURLs(entity.SlotKindBackstage)
	case entity.CategoryMadeInArg:
		response["madeinarg"] = content.MadeInArg
	case entity.CategoryNews:
		response["news"] = content.News
	}

	return response
}

// pendingSlotCount counts slots still waiting for their upload, so admin
// clients can tell a fully reconciled save from a degraded one.
func pendingSlotCount(content *entity.Content) int {
	pending := 0
	for i := range content.Slots {
		if content.Slots[i].Pending() {
			pending++
		}
	}
	return pending
}

// CreateContent godoc
// @Summary      Create content
// @Description  Create a content item in one of the five categories. Issues get their issue number assigned automatically when omitted.
// @Tags         contenidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        content body ContentRequest true "Content payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin/contenidos [post]
func (h *ContentHandler) CreateContent(c *gin.Context) {
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := req.toEntity()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fecha_publicacion must be YYYY-MM-DD"})
		return
	}

	created, err := h.contentUseCase.CreateContent(content)
	if err != nil {
		h.logger.Error("Failed to create content: %v", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, formatContentResponse(created))
}

// GetContent godoc
// @Summary      Get content by ID
// @Tags         contenidos
// @Produce      json
// @Param        id path string true "Content ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /contenidos/{id} [get]
func (h *ContentHandler) GetContent(c *gin.Context) {
	content, err := h.contentUseCase.GetContent(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, formatContentResponse(content))
}

// GetContentBySlug godoc
// @Summary      Get content by slug
// @Tags         contenidos
// @Produce      json
// @Param        slug path string true "Content slug"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /contenidos/slug/{slug} [get]
func (h *ContentHandler) GetContentBySlug(c *gin.Context) {
	content, err := h.contentUseCase.GetContentBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, formatContentResponse(content))
}

// ListContents godoc
// @Summary      List contents
// @Description  List contents filtered by category and state, newest first. Defaults to published content.
// @Tags         contenidos
// @Produce      json
// @Param        categoria query string false "Category filter" Enums(editorials, issues, madeinarg, news, club_pompa)
// @Param        estado query string false "State filter" default(publicado)
// @Param        limit query int false "Page size" default(20)
// @Param        offset query int false "Offset" default(0)
// @Success      200  {array}   map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /contenidos [get]
func (h *ContentHandler) ListContents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	categoria := entity.Category(c.Query("categoria"))
	estado := entity.State(c.DefaultQuery("estado", string(entity.StatePublicado)))

	contents, err := h.contentUseCase.ListContents(limit, offset, categoria, estado)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	responses := make([]map[string]interface{}, len(contents))
	for i, content := range contents {
		responses[i] = formatContentResponse(content)
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateContent godoc
// @Summary      Update content
// @Description  Update a content item. Category and slug are immutable; reference links and image links are replaced wholesale.
// @Tags         contenidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Content ID"
// @Param        content body ContentRequest true "Content payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/contenidos/{id} [put]
func (h *ContentHandler) UpdateContent(c *gin.Context) {
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := req.toEntity()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fecha_publicacion must be YYYY-MM-DD"})
		return
	}

	updated, err := h.contentUseCase.UpdateContent(c.Param("id"), content)
	if err != nil {
		h.logger.Error("Failed to update content %s: %v", c.Param("id"), err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, formatContentResponse(updated))
}

type EstadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}

// ChangeEstado godoc
// @Summary      Change content state
// @Description  Transition the editorial state. Moving into publicado triggers the one-shot newsletter dispatch.
// @Tags         contenidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Content ID"
// @Param        estado body EstadoRequest true "Target state"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/contenidos/{id}/estado [patch]
func (h *ContentHandler) ChangeEstado(c *gin.Context) {
	var req EstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := h.contentUseCase.ChangeEstado(c.Param("id"), entity.State(req.Estado))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, formatContentResponse(content))
}

// TrashContent godoc
// @Summary      Move content to trash
// @Tags         contenidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Content ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/contenidos/{id} [delete]
func (h *ContentHandler) TrashContent(c *gin.Context) {
	if err := h.contentUseCase.TrashContent(c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content moved to trash"})
}

// DeleteContent godoc
// @Summary      Delete content permanently
// @Description  Remove the content row, its visits and its media. Remote images are deleted best-effort.
// @Tags         contenidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Content ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/contenidos/{id}/definitivo [delete]
func (h *ContentHandler) DeleteContent(c *gin.Context) {
	if err := h.contentUseCase.DeleteContent(c.Param("id")); err != nil {
		h.logger.Error("Failed to delete content %s: %v", c.Param("id"), err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content deleted"})
}

// AttachMedia godoc
// @Summary      Upload an image into a slot
// @Description  Stage an image for a gallery or backstage slot and push it to the external image host. If the host is unavailable the slot stays pending and is retried later.
// @Tags         contenidos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Content ID"
// @Param        kind path string true "Slot kind" Enums(imagenes, backstage)
// @Param        slot path int true "Slot index (1-30)"
// @Param        imagen formData file true "Image file"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/contenidos/{id}/{kind}/{slot} [post]
func (h *ContentHandler) AttachMedia(c *gin.Context) {
	kind, ok := slotKindFromPath(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown slot kind"})
		return
	}
	index, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot must be a number"})
		return
	}

	file, err := c.FormFile("imagen")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imagen file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	slot, err := h.contentUseCase.AttachMedia(c.Param("id"), kind, index, file.Filename, data)
	if err != nil {
		h.logger.Error("Failed to attach media to %s: %v", c.Param("id"), err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":       slot.Kind,
		"slot_index": slot.SlotIndex,
		"remote_url": slot.RemoteURL,
		"pending":    slot.Pending(),
	})
}

// RemoveMedia godoc
// @Summary      Clear an image slot
// @Tags         contenidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Content ID"
// @Param        kind path string true "Slot kind" Enums(imagenes, backstage)
// @Param        slot path int true "Slot index (1-30)"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/contenidos/{id}/{kind}/{slot} [delete]
func (h *ContentHandler) RemoveMedia(c *gin.Context) {
	kind, ok := slotKindFromPath(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown slot kind"})
		return
	}
	index, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot must be a number"})
		return
	}

	if err := h.contentUseCase.RemoveMedia(c.Param("id"), kind, index); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot cleared"})
}

func slotKindFromPath(segment string) (entity.SlotKind, bool) {
	switch segment {
	case "imagenes":
		return entity.SlotKindGallery, true
	case "backstage":
		return entity.SlotKindBackstage, true
	}
	return "", false
}

// RecordVisit godoc
// @Summary      Record a visit
// @Description  Count a visit for the content unless the same IP was counted in the last few minutes. Returns both counters either way.
// @Tags         visitas
// @Produce      json
// @Param        id path string true "Content ID"
// @Success      200  {object}  entity.VisitResult
// @Failure      404  {object}  map[string]string
// @Router       /contenidos/{id}/visita [post]
func (h *ContentHandler) RecordVisit(c *gin.Context) {
	result, err := h.visitUseCase.RecordVisit(c.Param("id"), c.ClientIP())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// MostVisited godoc
// @Summary      Most visited contents
// @Description  Published contents ranked by the rolling visit counter.
// @Tags         visitas
// @Produce      json
// @Param        limit query int false "Max results" default(10)
// @Success      200  {array}   map[string]interface{}
// @Router       /contenidos/mas-visitados [get]
func (h *ContentHandler) MostVisited(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	contents, err := h.visitUseCase.MostVisited(limit)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	responses := make([]map[string]interface{}, len(contents))
	for i, content := range contents {
		responses[i] = formatContentResponse(content)
	}
	c.JSON(http.StatusOK, responses)
}

// MostRead godoc
// @Summary      Most read contents
// @Description  Published contents ranked by the all-time visit counter.
// @Tags         visitas
// @Produce      json
// @Param        limit query int false "Max results" default(10)
// @Success      200  {array}   map[string]interface{}
// @Router       /contenidos/mas-leidos [get]
func (h *ContentHandler) MostRead(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	contents, err := h.visitUseCase.MostRead(limit)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	responses := make([]map[string]interface{}, len(contents))
	for i, content := range contents {
		responses[i] = formatContentResponse(content)
	}
	c.JSON(http.StatusOK, responses)
}

// ResetCountersRequest lists the contents whose counters get zeroed.
type ResetCountersRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// ResetCountersBulk godoc
// @Summary      Reset visit counters for several contents
// @Tags         visitas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ResetCountersRequest true "Content IDs"
// @Success      200  {object}  map[string]int
// @Failure      400  {object}  map[string]string
// @Router       /admin/contenidos/reset-contadores [post]
func (h *ContentHandler) ResetCountersBulk(c *gin.Context) {
	var req ResetCountersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reset, err := h.visitUseCase.ResetCountersBulk(req.IDs)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reseteados": reset})
}

// ResetCounters godoc
// @Summary      Reset a content's rolling visit counter
// @Tags         visitas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Content ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/contenidos/{id}/reset-contadores [post]
func (h *ContentHandler) ResetCounters(c *gin.Context) {
	if err := h.visitUseCase.ResetCounters(c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Counters reset"})
}
