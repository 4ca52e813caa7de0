package domain

type Video struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Src         string `json:"src"`
	Watched     bool   `json:"watched"`
}

// WatchedCount counts the videos marked as watched.
func WatchedCount(videos []Video) int {
	n := 0
	for _, v := range videos {
		if v.Watched {
			n++
		}
	}
	return n
}
