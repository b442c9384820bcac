package queue

import (
	"context"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueVerificationMail(ctx context.Context, email, username, linkURL string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueuePasswordResetMail(ctx context.Context, email, username, linkURL string) error {
	return nil
}

var _ ports.MailEnqueuer = (*NoopEnqueuer)(nil)
