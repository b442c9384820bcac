package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/rodainahassan/gatehouse/internal/application/ports"
)

const (
	TypeSendVerificationMail  = "mail:account_verification"
	TypeSendPasswordResetMail = "mail:password_reset"
)

// mailPayload is shared by both mail task types.
type mailPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	LinkURL  string `json:"link_url"`
}

// MailEnqueuer implements ports.MailEnqueuer on Asynq. Failures are logged
// at warn and returned; callers treat the send as fire-and-forget.
type MailEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *MailEnqueuer {
	return &MailEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *MailEnqueuer) Close() error {
	return q.client.Close()
}

func (q *MailEnqueuer) EnqueueVerificationMail(ctx context.Context, email, username, linkURL string) error {
	return q.enqueue(ctx, TypeSendVerificationMail, email, username, linkURL)
}

func (q *MailEnqueuer) EnqueuePasswordResetMail(ctx context.Context, email, username, linkURL string) error {
	return q.enqueue(ctx, TypeSendPasswordResetMail, email, username, linkURL)
}

func (q *MailEnqueuer) enqueue(ctx context.Context, taskType, email, username, linkURL string) error {
	payload, _ := json.Marshal(mailPayload{Email: email, Username: username, LinkURL: linkURL})
	_, err := q.client.EnqueueContext(ctx, asynq.NewTask(taskType, payload))
	if err != nil {
		q.log.Warn().Err(err).Str("task", taskType).Str("email", email).Msg("enqueue mail failed")
		return err
	}
	return nil
}

var _ ports.MailEnqueuer = (*MailEnqueuer)(nil)
