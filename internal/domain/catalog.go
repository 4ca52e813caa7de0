package domain

// Catalog holds the fixed tables every dashboard session starts from.
type Catalog struct {
	Course        Course          `json:"course"`
	Roadmap       []RoadmapStep   `json:"roadmap"`
	Videos        []Video         `json:"videos"`
	Resources     []ResourceGroup `json:"resources"`
	Notifications []Notification  `json:"notifications"`
}

// Empty reports whether the catalog has nothing to show.
func (c Catalog) Empty() bool {
	return len(c.Roadmap) == 0 && len(c.Videos) == 0 && len(c.Resources) == 0
}

// Clone returns a deep copy, so sessions never share mutable flags.
func (c Catalog) Clone() Catalog {
	out := Catalog{
		Course:        c.Course,
		Roadmap:       append([]RoadmapStep(nil), c.Roadmap...),
		Videos:        append([]Video(nil), c.Videos...),
		Notifications: append([]Notification(nil), c.Notifications...),
		Resources:     make([]ResourceGroup, len(c.Resources)),
	}
	for i, g := range c.Resources {
		g.Links = append([]ResourceLink(nil), g.Links...)
		out.Resources[i] = g
	}
	return out
}
