package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Worker runs Asynq handlers that render and deliver account mail.
type Worker struct {
	srv  *asynq.Server
	mux  *asynq.ServeMux
	from string
	log  zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, from string, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, from: from, log: log}
	mux.HandleFunc(TypeSendVerificationMail, w.handleVerificationMail)
	mux.HandleFunc(TypeSendPasswordResetMail, w.handlePasswordResetMail)
	return w
}

func (w *Worker) handleVerificationMail(ctx context.Context, t *asynq.Task) error {
	var p mailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("verification mail payload invalid")
		return err
	}
	subject := "Account Verification"
	body := fmt.Sprintf(
		`<p>Hello %s, please click on the following link to verify your account: <a href="%s"></a></p>`,
		p.Username, p.LinkURL)
	return w.deliver(p.Email, subject, body)
}

func (w *Worker) handlePasswordResetMail(ctx context.Context, t *asynq.Task) error {
	var p mailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("password reset mail payload invalid")
		return err
	}
	subject := "Password Reset"
	body := fmt.Sprintf(
		`<p>Hello %s, please click on the following link to reset your account's password: <a href="%s"></a><br> If you did not make the request, then ignore this email, your account will be safe.</p>`,
		p.Username, p.LinkURL)
	return w.deliver(p.Email, subject, body)
}

// deliver logs the rendered mail. Production wires an SMTP transport here.
func (w *Worker) deliver(to, subject, htmlBody string) error {
	w.log.Info().
		Str("from", w.from).
		Str("to", to).
		Str("subject", subject).
		Str("body", htmlBody).
		Msg("outbound mail (log only; configure SMTP for real delivery)")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
