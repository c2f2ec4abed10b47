// Package transport implements the delivery capability behind the
// dispatcher. The engine's contract ends at "queued for retrieval": the
// Queue transport is the primary sink, everything else is a best-effort
// bridge towards a real push channel.
package transport

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

const summaryMax = 140

// Queue delivers by enqueueing into the pull-based pending queue.
type Queue struct {
	q domain.PendingQueue
}

var _ domain.Transport = (*Queue)(nil)

// NewQueue builds the default transport.
func NewQueue(q domain.PendingQueue) *Queue {
	return &Queue{q: q}
}

// Deliver wraps the payload into a pending notification for the user.
func (t *Queue) Deliver(ctx context.Context, sub domain.Subscription, payload domain.NotificationPayload) error {
	n := domain.PendingNotification{
		ID:         uuid.NewString(),
		UserID:     sub.UserID,
		Payload:    payload,
		Summary:    payload.PlainSummary(summaryMax),
		EnqueuedAt: time.Now().UTC(),
	}
	return t.q.Enqueue(sub.UserID, n)
}
