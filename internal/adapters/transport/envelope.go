package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

// envelope is the JSON shape bridges publish to external consumers.
type envelope struct {
	ID       string                `json:"id"`
	UserID   string                `json:"user_id"`
	Campaign domain.Campaign       `json:"campaign"`
	Title    string                `json:"title"`
	Body     string                `json:"body"`
	Symbols  []string              `json:"symbols,omitempty"`
	Target   domain.DeliveryTarget `json:"target"`
	SentAt   time.Time             `json:"sent_at"`
}

func newEnvelope(sub domain.Subscription, payload domain.NotificationPayload) envelope {
	return envelope{
		ID:       uuid.NewString(),
		UserID:   sub.UserID,
		Campaign: payload.Campaign,
		Title:    payload.Title,
		Body:     payload.Body,
		Symbols:  payload.Symbols,
		Target:   sub.Target,
		SentAt:   time.Now().UTC(),
	}
}
