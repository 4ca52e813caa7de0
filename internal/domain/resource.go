package domain

type ResourceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type ResourceGroup struct {
	Session string         `json:"session"`
	Chapter string         `json:"chapter"`
	Links   []ResourceLink `json:"links"`
}
