package demo

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zenvor/internal/domain/intake"
	"zenvor/internal/pkg/response"
)

// Handler handles demo request HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates demo request handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /api/v1/demo-requests/submit (public)
// @Summary Submit "book demo" form
// @Tags Demo Requests
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Demo request data"
// @Success 201 {object} response.Envelope{data=intake.SubmitResult}
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /demo-requests/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, intake.CodeInvalidJSON, "Invalid JSON body")
		return
	}

	res, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		intake.RespondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res)
}

// List handles GET /api/v1/admin/demo-requests
// @Summary List demo requests
// @Tags Admin Demo Requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, contacted, scheduled, completed, no_show, rejected)
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} response.Envelope{data=[]Request}
// @Router /admin/demo-requests [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, intake.CodeInvalidQuery, "Invalid query parameters")
		return
	}

	requests, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		intake.RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, requests)
}

// Get handles GET /api/v1/admin/demo-requests/:id
func (h *Handler) Get(c *gin.Context) {
	dr, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		intake.RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dr)
}

// UpdateStatus handles PATCH /api/v1/admin/demo-requests/:id/status
// @Summary Update demo request status
// @Description Overwrites status, assigned_to and internal_note. Omitted fields are cleared.
// @Tags Admin Demo Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Demo request ID"
// @Param request body UpdateStatusRequest true "Status data"
// @Success 200 {object} response.Envelope{data=intake.SubmitResult}
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /admin/demo-requests/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, intake.CodeInvalidJSON, "Invalid JSON body")
		return
	}
	req.ID = c.Param("id")

	res, err := h.service.UpdateStatus(c.Request.Context(), req)
	if err != nil {
		intake.RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

// Stats handles GET /api/v1/admin/demo-requests/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		intake.RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
