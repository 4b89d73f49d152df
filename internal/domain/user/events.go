package user

import "time"

const EventUserCreated = "user.created"

type UserCreated struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Source     string    `json:"source"`
	BatchID    string    `json:"batch_id,omitempty"`
	Row        int       `json:"row,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BatchRecord is the audit trail of one finished upload.
type BatchRecord struct {
	ID         string       `json:"id"`
	Filename   string       `json:"filename"`
	UploadedBy string       `json:"uploaded_by"`
	Summary    BatchSummary `json:"summary"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
}
