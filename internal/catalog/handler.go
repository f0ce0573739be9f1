package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/shared/server/respond"
)

// Handler serves the catalogs to the intake forms.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/skills", h.skills)
	rg.GET("/certifications", h.certifications)
}

func (h *Handler) skills(c *gin.Context) {
	out, err := h.Svc.Skills(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "scoring_unavailable", "failed to load skill catalog", nil)
		return
	}
	respond.OK(c, out)
}

func (h *Handler) certifications(c *gin.Context) {
	out, err := h.Svc.Certifications(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "scoring_unavailable", "failed to load certification catalog", nil)
		return
	}
	respond.OK(c, out)
}
