package projects

import "time"

type Project struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Title         string    `json:"title"`
	OriginalText  string    `json:"originalText"`
	HumanizedText string    `json:"humanizedText"`
	CreditsUsed   int       `json:"creditsUsed"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
