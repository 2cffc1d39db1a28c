package lead

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zenvor/internal/domain/intake"
	"zenvor/internal/pkg/response"
)

// Handler handles lead HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates lead handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /api/v1/leads/submit (public)
// @Summary Submit "get started" wizard
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Wizard data"
// @Success 201 {object} response.Envelope{data=intake.SubmitResult}
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /leads/submit [post]
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

// List handles GET /api/v1/admin/leads
// @Summary List leads
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(new, contacted, qualified, proposal_sent, closed_won, closed_lost)
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} response.Envelope{data=[]Lead}
// @Router /admin/leads [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, intake.CodeInvalidQuery, "Invalid query parameters")
		return
	}

	leads, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		intake.RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, leads)
}

// Get handles GET /api/v1/admin/leads/:id
func (h *Handler) Get(c *gin.Context) {
	l, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		intake.RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, l)
}

// UpdateStatus handles PATCH /api/v1/admin/leads/:id/status
// @Summary Update lead status
// @Description Overwrites status, assigned_to and internal_note. Omitted fields are cleared.
// @Tags Admin Leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param request body UpdateStatusRequest true "Status data"
// @Success 200 {object} response.Envelope{data=intake.SubmitResult}
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /admin/leads/{id}/status [patch]
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

// Stats handles GET /api/v1/admin/leads/stats
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		intake.RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
