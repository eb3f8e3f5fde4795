package course

// Module represents an ordered section within a course
type Module struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	IsPaid  bool     `json:"isPaid"`
	Lessons []Lesson `json:"lessons"`
}

// Lesson is a single playable unit inside a module
type Lesson struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	VideoURL      string `json:"videoUrl,omitempty"`
	IsPaid        bool   `json:"isPaid"`
	IsFreePreview bool   `json:"isFreePreview"`
}
