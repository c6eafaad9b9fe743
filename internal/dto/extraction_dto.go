package dto

type ExtractedProject struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ExtractedResume is the shape the resume prompt asks the model for.
type ExtractedResume struct {
	CandidateName string             `json:"candidateName"`
	Skills        string             `json:"skills"`
	Topic         string             `json:"topic"`
	Difficulty    string             `json:"difficulty"`
	Mode          string             `json:"mode"`
	Experience    string             `json:"experience"`
	Education     string             `json:"education"`
	Projects      []ExtractedProject `json:"projects"`
}
