package domain

type CourseStatus string

const (
	CourseStarted   CourseStatus = "ST"
	CourseSuspended CourseStatus = "SU"
	CourseFinished  CourseStatus = "FI"
)

func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStarted, CourseSuspended, CourseFinished:
		return true
	}
	return false
}

func (s CourseStatus) Label() string {
	switch s {
	case CourseStarted:
		return "Started"
	case CourseFinished:
		return "Finished"
	default:
		return "Suspended"
	}
}

// Course describes the class the roadmap belongs to. A ManualProgress
// above 0 replaces the percentage computed from the roadmap.
type Course struct {
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Status         CourseStatus `json:"status"`
	ManualProgress int          `json:"manual_progress"`
}

// Progress is the course's progress percentage over steps.
func (c Course) Progress(steps []RoadmapStep) int {
	return ProgressPercent(steps, c.ManualProgress)
}
