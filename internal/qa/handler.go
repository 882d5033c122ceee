package qa

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pdfchat-backend/internal/documents"
	"pdfchat-backend/internal/extract"
	"pdfchat-backend/internal/shared/server/middleware"
	"pdfchat-backend/internal/shared/server/respond"
)

// Handler exposes the question-answering route.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes attaches QA routes to the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/qa", h.ask)
}

type askRequest struct {
	FileName string `json:"filename"`
	Question string `json:"question"`
}

func (h *Handler) ask(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}

	answer, err := h.svc.Ask(c.Request.Context(), userID, req.FileName, req.Question)
	if err != nil {
		writeAskError(c, err)
		return
	}
	respond.OK(c, answer)
}

func writeAskError(c *gin.Context, err error) {
	var extErr *extract.ExtractionError
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, documents.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, documents.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	case errors.Is(err, documents.ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "document belongs to another user", nil)
	case errors.As(err, &extErr):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "could not extract text from the PDF", nil)
	case errors.Is(err, ErrModelCall):
		respond.Error(c, http.StatusBadGateway, "model_error", "language model call failed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "unexpected error", nil)
	}
}
