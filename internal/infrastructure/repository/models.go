package repository

import (
	"time"

	"github.com/google/uuid"

	"learnhub/internal/domain"
)

// GORM models

type CourseGorm struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string    `gorm:"size:255;not null"`
	Description    string    `gorm:"type:text"`
	Status         string    `gorm:"size:2;default:'SU'"`
	ManualProgress int       `gorm:"default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (CourseGorm) TableName() string {
	return "courses"
}

func (m *CourseGorm) ToDomain() domain.Course {
	status := domain.CourseStatus(m.Status)
	if !status.Valid() {
		status = domain.CourseSuspended
	}
	return domain.Course{
		Title:          m.Title,
		Description:    m.Description,
		Status:         status,
		ManualProgress: m.ManualProgress,
	}
}

type RoadmapStepGorm struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Position    int       `gorm:"index"`
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"size:500"`
	Status      string    `gorm:"size:20;default:'pending'"`
	Details     string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (RoadmapStepGorm) TableName() string {
	return "roadmap_steps"
}

func (m *RoadmapStepGorm) ToDomain() domain.RoadmapStep {
	status := domain.StepStatus(m.Status)
	if !status.Valid() {
		status = domain.StepPending
	}
	return domain.RoadmapStep{
		Title:       m.Title,
		Description: m.Description,
		Status:      status,
		Details:     m.Details,
	}
}

type VideoGorm struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Position    int       `gorm:"index"`
	Title       string    `gorm:"size:255;not null"`
	Description string    `gorm:"size:500"`
	Duration    string    `gorm:"size:20"`
	Src         string    `gorm:"size:500;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (VideoGorm) TableName() string {
	return "videos"
}

// ToDomain starts every video unwatched; watched flags live in sessions.
func (m *VideoGorm) ToDomain() domain.Video {
	return domain.Video{
		Title:       m.Title,
		Description: m.Description,
		Duration:    m.Duration,
		Src:         m.Src,
	}
}

type ResourceSectionGorm struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Position  int                `gorm:"index"`
	Session   string             `gorm:"size:255;not null"`
	Chapter   string             `gorm:"size:255"`
	Links     []ResourceLinkGorm `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time
}

func (ResourceSectionGorm) TableName() string {
	return "resource_sections"
}

func (m *ResourceSectionGorm) ToDomain() domain.ResourceGroup {
	g := domain.ResourceGroup{Session: m.Session, Chapter: m.Chapter}
	for _, l := range m.Links {
		g.Links = append(g.Links, domain.ResourceLink{Title: l.Title, URL: l.URL})
	}
	return g
}

type ResourceLinkGorm struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SectionID uuid.UUID `gorm:"type:uuid;index"`
	Position  int
	Title     string `gorm:"size:255;not null"`
	URL       string `gorm:"size:500"`
}

func (ResourceLinkGorm) TableName() string {
	return "resource_links"
}

type NotificationGorm struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Message   string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (NotificationGorm) TableName() string {
	return "notifications"
}

func (m *NotificationGorm) ToDomain() domain.Notification {
	return domain.Notification{Message: m.Message, CreatedAt: m.CreatedAt}
}

// catalogRows is a catalog flattened into table rows.
type catalogRows struct {
	course   *CourseGorm
	steps    []RoadmapStepGorm
	videos   []VideoGorm
	sections []ResourceSectionGorm
	notes    []NotificationGorm
}

// fromCatalog builds rows for seeding. Positions follow slice order; a
// course without a title is not stored.
func fromCatalog(c domain.Catalog) catalogRows {
	var rows catalogRows

	if c.Course.Title != "" {
		rows.course = &CourseGorm{
			ID:             uuid.New(),
			Title:          c.Course.Title,
			Description:    c.Course.Description,
			Status:         string(c.Course.Status),
			ManualProgress: c.Course.ManualProgress,
		}
	}

	rows.steps = make([]RoadmapStepGorm, len(c.Roadmap))
	for i, s := range c.Roadmap {
		rows.steps[i] = RoadmapStepGorm{
			ID:          uuid.New(),
			Position:    i,
			Title:       s.Title,
			Description: s.Description,
			Status:      string(s.Status),
			Details:     s.Details,
		}
	}

	rows.videos = make([]VideoGorm, len(c.Videos))
	for i, v := range c.Videos {
		rows.videos[i] = VideoGorm{
			ID:          uuid.New(),
			Position:    i,
			Title:       v.Title,
			Description: v.Description,
			Duration:    v.Duration,
			Src:         v.Src,
		}
	}

	rows.sections = make([]ResourceSectionGorm, len(c.Resources))
	for i, g := range c.Resources {
		sec := ResourceSectionGorm{
			ID:       uuid.New(),
			Position: i,
			Session:  g.Session,
			Chapter:  g.Chapter,
		}
		for j, l := range g.Links {
			sec.Links = append(sec.Links, ResourceLinkGorm{
				ID:        uuid.New(),
				SectionID: sec.ID,
				Position:  j,
				Title:     l.Title,
				URL:       l.URL,
			})
		}
		rows.sections[i] = sec
	}

	rows.notes = make([]NotificationGorm, len(c.Notifications))
	for i, n := range c.Notifications {
		rows.notes[i] = NotificationGorm{ID: uuid.New(), Message: n.Message, CreatedAt: n.CreatedAt}
	}
	return rows
}
