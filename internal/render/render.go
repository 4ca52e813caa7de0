// Package render projects dashboard state onto HTML. It owns no state:
// every call renders exactly the data it is given.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"learnhub/internal/dashboard"
	"learnhub/internal/domain"
)

//go:embed templates/*.tmpl
var files embed.FS

const (
	WatchedLabel    = "تماشا شده"
	NotWatchedLabel = "علامت‌گذاری به‌عنوان تماشا شده"
)

var funcs = template.FuncMap{
	"watchedLabel":  watchedLabel,
	"progressColor": ProgressColor,
}

func watchedLabel(watched bool) string {
	if watched {
		return WatchedLabel
	}
	return NotWatchedLabel
}

// ProgressColor picks the admin progress bar colour.
func ProgressColor(percent int) string {
	switch {
	case percent >= 100:
		return "green"
	case percent > 0:
		return "orange"
	default:
		return "gray"
	}
}

// Page is the data for the full dashboard document.
type Page struct {
	Today    string
	Snapshot dashboard.Snapshot
}

// Admin is the data for the admin overview document.
type Admin struct {
	Course        domain.Course
	Progress      int
	Watched       int
	Roadmap       []domain.RoadmapStep
	Videos        []domain.Video
	Resources     []domain.ResourceGroup
	Notifications []domain.Notification
}

func NewAdmin(s dashboard.Snapshot) Admin {
	return Admin{
		Course:        s.Course,
		Progress:      s.Progress,
		Watched:       s.Watched,
		Roadmap:       s.Roadmap,
		Videos:        s.Videos,
		Resources:     s.Resources,
		Notifications: s.Notifications,
	}
}

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(files, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Roadmap(w io.Writer, steps []domain.RoadmapStep) error {
	return r.tmpl.ExecuteTemplate(w, "roadmap", steps)
}

func (r *Renderer) Videos(w io.Writer, videos []domain.Video) error {
	return r.tmpl.ExecuteTemplate(w, "videos", videos)
}

func (r *Renderer) Resources(w io.Writer, groups []domain.ResourceGroup) error {
	return r.tmpl.ExecuteTemplate(w, "resources", groups)
}

func (r *Renderer) Modal(w io.Writer, overlay dashboard.Overlay) error {
	return r.tmpl.ExecuteTemplate(w, "modal", overlay)
}

func (r *Renderer) Notifications(w io.Writer, s dashboard.Snapshot) error {
	return r.tmpl.ExecuteTemplate(w, "notifications", s)
}

func (r *Renderer) Page(w io.Writer, p Page) error {
	return r.tmpl.ExecuteTemplate(w, "dashboard", p)
}

func (r *Renderer) Admin(w io.Writer, a Admin) error {
	return r.tmpl.ExecuteTemplate(w, "admin", a)
}
