package domain

import "time"

type ContactMessage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	SubmittedBy string    `json:"submittedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
