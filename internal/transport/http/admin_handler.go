package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"learnhub/internal/dashboard"
	"learnhub/internal/middleware"
	"learnhub/internal/render"
)

type AdminHandler struct {
	sessions *dashboard.Sessions
	renderer *render.Renderer
}

func NewAdminHandler(sessions *dashboard.Sessions, renderer *render.Renderer) *AdminHandler {
	return &AdminHandler{sessions: sessions, renderer: renderer}
}

// GET /admin/
func (h *AdminHandler) Overview(c *gin.Context) {
	s, err := h.sessions.Get(c.GetString(middleware.SessionKey))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}
	data := render.NewAdmin(s.Snapshot())
	writeHTML(c, func(w io.Writer) error { return h.renderer.Admin(w, data) })
}
