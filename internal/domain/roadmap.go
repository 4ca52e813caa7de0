package domain

type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepCurrent   StepStatus = "current"
	StepPending   StepStatus = "pending"
)

// Valid reports whether s is one of the known statuses.
func (s StepStatus) Valid() bool {
	switch s {
	case StepCompleted, StepCurrent, StepPending:
		return true
	}
	return false
}

// Label is the Persian display name of the status.
func (s StepStatus) Label() string {
	switch s {
	case StepCompleted:
		return "تکمیل شده"
	case StepCurrent:
		return "در حال انجام"
	default:
		return "در انتظار"
	}
}

type RoadmapStep struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      StepStatus `json:"status"`
	Details     string     `json:"details"`
}

// ProgressPercent is the share of completed steps, rounded down. A manual
// value above 0 wins and is capped at 100. An empty roadmap has no progress.
func ProgressPercent(steps []RoadmapStep, manual int) int {
	if manual > 0 {
		return min(manual, 100)
	}
	if len(steps) == 0 {
		return 0
	}
	completed := 0
	for _, s := range steps {
		if s.Status == StepCompleted {
			completed++
		}
	}
	return completed * 100 / len(steps)
}
