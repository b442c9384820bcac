package ports

import "context"

// MailEnqueuer enqueues outbound account mail. Fire-and-forget from the
// caller's perspective: the triggering state change is already committed,
// so enqueue failures are surfaced as warnings, never rolled back.
type MailEnqueuer interface {
	EnqueueVerificationMail(ctx context.Context, email, username, linkURL string) error
	EnqueuePasswordResetMail(ctx context.Context, email, username, linkURL string) error
}
