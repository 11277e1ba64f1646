package domain

type Company struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Industry    string   `json:"industry"`
	Location    string   `json:"location"` // free text, e.g. "서울 강남"
	Address     string   `json:"address,omitempty"`
	Latitude    string   `json:"latitude,omitempty"`
	Longitude   string   `json:"longitude,omitempty"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	Size        string   `json:"size,omitempty"` // small/medium/large
	Culture     []string `json:"culture,omitempty"`
}
