package dashboard

import (
	"fmt"
	"sync"

	"learnhub/internal/domain"
)

// ClickTarget says where a dismiss click landed on the detail overlay.
type ClickTarget string

const (
	TargetBackdrop ClickTarget = "backdrop"
	TargetContent  ClickTarget = "content"
)

type Overlay struct {
	Open  bool               `json:"open"`
	Index int                `json:"index"`
	Step  domain.RoadmapStep `json:"step"`
}

// State is one visitor's dashboard. Table lengths never change after
// NewState; indices are the identifiers used by every transition.
type State struct {
	mu sync.Mutex

	course        domain.Course
	roadmap       []domain.RoadmapStep
	videos        []domain.Video
	resources     []domain.ResourceGroup
	notifications []domain.Notification

	overlay      Overlay
	dropdownOpen bool
}

func NewState(c domain.Catalog) *State {
	c = c.Clone()
	return &State{
		course:        c.Course,
		roadmap:       c.Roadmap,
		videos:        c.Videos,
		resources:     c.Resources,
		notifications: c.Notifications,
	}
}

// ToggleWatched flips the watched flag of video i and returns the new value.
func (s *State) ToggleWatched(i int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.videos) {
		return false, fmt.Errorf("video %d: %w", i, domain.ErrIndexOutOfRange)
	}
	s.videos[i].Watched = !s.videos[i].Watched
	return s.videos[i].Watched, nil
}

// OpenDetail shows the overlay populated with roadmap step i.
func (s *State) OpenDetail(i int) (domain.RoadmapStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.roadmap) {
		return domain.RoadmapStep{}, fmt.Errorf("roadmap step %d: %w", i, domain.ErrIndexOutOfRange)
	}
	s.overlay = Overlay{Open: true, Index: i, Step: s.roadmap[i]}
	return s.overlay.Step, nil
}

func (s *State) CloseDetail() {
	s.mu.Lock()
	s.overlay = Overlay{}
	s.mu.Unlock()
}

// DismissOverlay closes the overlay only for clicks on its backdrop.
// It reports whether the overlay was closed.
func (s *State) DismissOverlay(target ClickTarget) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.overlay.Open || target != TargetBackdrop {
		return false
	}
	s.overlay = Overlay{}
	return true
}

// ToggleNotifications flips the dropdown and returns whether it is now open.
func (s *State) ToggleNotifications() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropdownOpen = !s.dropdownOpen
	return s.dropdownOpen
}

// DismissNotifications closes an open dropdown when the click landed
// outside it. It reports whether the dropdown was closed.
func (s *State) DismissNotifications(inside bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inside || !s.dropdownOpen {
		return false
	}
	s.dropdownOpen = false
	return true
}

func (s *State) MarkNotificationRead(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.notifications) {
		return fmt.Errorf("notification %d: %w", i, domain.ErrIndexOutOfRange)
	}
	s.notifications[i].Read = true
	return nil
}

// MarkAllNotificationsRead returns how many notifications changed.
func (s *State) MarkAllNotificationsRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.notifications {
		if !s.notifications[i].Read {
			s.notifications[i].Read = true
			n++
		}
	}
	return n
}

func (s *State) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadLocked()
}

func (s *State) unreadLocked() int {
	n := 0
	for _, nt := range s.notifications {
		if !nt.Read {
			n++
		}
	}
	return n
}

// Snapshot is a copy of the state that renderers can read without locking.
type Snapshot struct {
	Course        domain.Course          `json:"course"`
	Roadmap       []domain.RoadmapStep   `json:"roadmap"`
	Videos        []domain.Video         `json:"videos"`
	Resources     []domain.ResourceGroup `json:"resources"`
	Notifications []domain.Notification  `json:"notifications"`
	Overlay       Overlay                `json:"overlay"`
	DropdownOpen  bool                   `json:"dropdown_open"`
	Unread        int                    `json:"unread"`
	Progress      int                    `json:"progress"`
	Watched       int                    `json:"watched"`
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := domain.Catalog{
		Roadmap:       s.roadmap,
		Videos:        s.videos,
		Resources:     s.resources,
		Notifications: s.notifications,
	}.Clone()

	return Snapshot{
		Course:        s.course,
		Roadmap:       c.Roadmap,
		Videos:        c.Videos,
		Resources:     c.Resources,
		Notifications: c.Notifications,
		Overlay:       s.overlay,
		DropdownOpen:  s.dropdownOpen,
		Unread:        s.unreadLocked(),
		Progress:      s.course.Progress(c.Roadmap),
		Watched:       domain.WatchedCount(c.Videos),
	}
}
