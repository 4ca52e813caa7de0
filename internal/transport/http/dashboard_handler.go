package handlers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"learnhub/internal/dashboard"
	"learnhub/internal/datebox"
	"learnhub/internal/domain"
	"learnhub/internal/middleware"
	"learnhub/internal/render"
)

const (
	dashboardPath = "/dashboard"
	mediaPrefix   = "/media/"
)

type DashboardHandler struct {
	sessions *dashboard.Sessions
	renderer *render.Renderer
	mediaDir string
	loc      *time.Location
	now      func() time.Time
}

func NewDashboardHandler(sessions *dashboard.Sessions, renderer *render.Renderer, mediaDir string, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{
		sessions: sessions,
		renderer: renderer,
		mediaDir: mediaDir,
		loc:      loc,
		now:      time.Now,
	}
}

// state resolves the visitor's dashboard from the session middleware.
func (h *DashboardHandler) state(c *gin.Context) (*dashboard.State, bool) {
	s, err := h.sessions.Get(c.GetString(middleware.SessionKey))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return nil, false
	}
	return s, true
}

func index(c *gin.Context) (int, bool) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
		return 0, false
	}
	return i, true
}

func isHTMX(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("HX-Request"), "true")
}

// writeHTML renders into a buffer first so a template error still yields
// a clean 500.
func writeHTML(c *gin.Context, view func(io.Writer) error) {
	var buf bytes.Buffer
	if err := view(&buf); err != nil {
		log.Printf("Render %s failed: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Render failed"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// respond sends the updated fragment to HTMX callers and sends plain form
// posts back to the full page.
func respond(c *gin.Context, view func(io.Writer) error) {
	if isHTMX(c) {
		writeHTML(c, view)
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

func indexError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrIndexOutOfRange) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (h *DashboardHandler) roadmap(s *dashboard.State) func(io.Writer) error {
	return func(w io.Writer) error { return h.renderer.Roadmap(w, s.Snapshot().Roadmap) }
}

func (h *DashboardHandler) videos(s *dashboard.State) func(io.Writer) error {
	return func(w io.Writer) error { return h.renderer.Videos(w, s.Snapshot().Videos) }
}

func (h *DashboardHandler) modal(s *dashboard.State) func(io.Writer) error {
	return func(w io.Writer) error { return h.renderer.Modal(w, s.Snapshot().Overlay) }
}

func (h *DashboardHandler) notifications(s *dashboard.State) func(io.Writer) error {
	return func(w io.Writer) error { return h.renderer.Notifications(w, s.Snapshot()) }
}

// GET /dashboard
func (h *DashboardHandler) Page(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	page := render.Page{
		Today:    datebox.Today(h.now(), h.loc),
		Snapshot: s.Snapshot(),
	}
	writeHTML(c, func(w io.Writer) error { return h.renderer.Page(w, page) })
}

// GET /dashboard/roadmap
func (h *DashboardHandler) Roadmap(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	writeHTML(c, h.roadmap(s))
}

// GET /dashboard/videos
func (h *DashboardHandler) Videos(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	writeHTML(c, h.videos(s))
}

// GET /dashboard/resources
func (h *DashboardHandler) Resources(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	writeHTML(c, func(w io.Writer) error { return h.renderer.Resources(w, s.Snapshot().Resources) })
}

// POST /dashboard/roadmap/:index/open
func (h *DashboardHandler) OpenStep(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	i, ok := index(c)
	if !ok {
		return
	}
	if _, err := s.OpenDetail(i); err != nil {
		indexError(c, err)
		return
	}
	respond(c, h.modal(s))
}

// POST /dashboard/modal/close
func (h *DashboardHandler) CloseModal(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	s.CloseDetail()
	respond(c, h.modal(s))
}

// POST /dashboard/modal/dismiss
func (h *DashboardHandler) DismissModal(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	target := dashboard.ClickTarget(c.PostForm("target"))
	if target != dashboard.TargetBackdrop && target != dashboard.TargetContent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target must be backdrop or content"})
		return
	}
	s.DismissOverlay(target)
	respond(c, h.modal(s))
}

// POST /dashboard/videos/:index/toggle
func (h *DashboardHandler) ToggleVideo(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	i, ok := index(c)
	if !ok {
		return
	}
	if _, err := s.ToggleWatched(i); err != nil {
		indexError(c, err)
		return
	}
	respond(c, h.videos(s))
}

// GET /dashboard/videos/:index/download
func (h *DashboardHandler) DownloadVideo(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	i, ok := index(c)
	if !ok {
		return
	}
	videos := s.Snapshot().Videos
	if i < 0 || i >= len(videos) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	path, ok := h.mediaPath(videos[i].Src)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video is not served locally"})
		return
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("Video %d missing at %s: %v", i, path, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Video file not found"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// mediaPath maps a /media/ URL onto the media directory.
func (h *DashboardHandler) mediaPath(src string) (string, bool) {
	if !strings.HasPrefix(src, mediaPrefix) {
		return "", false
	}
	rel := filepath.Clean("/" + strings.TrimPrefix(src, mediaPrefix))
	return filepath.Join(h.mediaDir, rel), true
}

// POST /dashboard/notifications/toggle
func (h *DashboardHandler) ToggleNotifications(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	s.ToggleNotifications()
	respond(c, h.notifications(s))
}

// POST /dashboard/notifications/dismiss
func (h *DashboardHandler) DismissNotifications(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	inside, err := strconv.ParseBool(c.DefaultPostForm("inside", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inside must be true or false"})
		return
	}
	s.DismissNotifications(inside)
	respond(c, h.notifications(s))
}

// POST /dashboard/notifications/:index/read
func (h *DashboardHandler) ReadNotification(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	i, ok := index(c)
	if !ok {
		return
	}
	if err := s.MarkNotificationRead(i); err != nil {
		indexError(c, err)
		return
	}
	respond(c, h.notifications(s))
}

// POST /dashboard/notifications/read-all
func (h *DashboardHandler) ReadAllNotifications(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	s.MarkAllNotificationsRead()
	respond(c, h.notifications(s))
}

// GET /api/v1/dashboard/state
func (h *DashboardHandler) State(c *gin.Context) {
	s, ok := h.state(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}
