package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/linesmerrill/rsvp-api/config"
	"github.com/linesmerrill/rsvp-api/metrics"
	"github.com/linesmerrill/rsvp-api/models"
	templates "github.com/linesmerrill/rsvp-api/templates/html"
)

// SendTimeout bounds a single delivery attempt
const SendTimeout = 30 * time.Second

// Sender delivers a prepared message. *sendgrid.Client satisfies it.
type Sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Notifier emails the operator. A Notifier without a Sender is disabled and
// every call is a logged no-op.
type Notifier struct {
	sender Sender
	from   *mail.Email
	to     *mail.Email
	wg     sync.WaitGroup
}

// New builds a SendGrid backed Notifier from the mail config
func New(conf config.Mail) *Notifier {
	if !conf.Enabled() {
		zap.S().Warnw("operator notification disabled, SENDGRID_API_KEY or NOTIFY_EMAIL_TO not set")
		return &Notifier{}
	}
	return NewWithSender(sendgrid.NewSendClient(conf.APIKey), conf.From, conf.To)
}

// NewWithSender builds a Notifier around any Sender
func NewWithSender(sender Sender, from, to string) *Notifier {
	return &Notifier{
		sender: sender,
		from:   mail.NewEmail("RSVP Wizard", from),
		to:     mail.NewEmail("", to),
	}
}

// Enabled reports whether mail will actually be sent
func (n *Notifier) Enabled() bool {
	return n != nil && n.sender != nil
}

// InviteSubmitted tells the operator about a new invite in the background.
// It returns immediately; delivery errors are only logged.
func (n *Notifier) InviteSubmitted(invite models.Invite) {
	if !n.Enabled() {
		metrics.Notifications.WithLabelValues("skipped").Inc()
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				zap.S().Errorw("panic in invite notification", "invite", invite.ID.Hex(), "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), SendTimeout)
		defer cancel()

		subject := fmt.Sprintf("New RSVP: %s (%s)", invite.Name, invite.Likelihood)
		plain := fmt.Sprintf("%s answered %s.\nAvailability: %s\nActivities: %s\nContact: %s",
			invite.Name, invite.Likelihood, invite.Availability, invite.Activities, invite.ContactNumber)
		html := templates.RenderNewInviteEmail(templates.InviteEmailData{
			Name:          invite.Name,
			Likelihood:    string(invite.Likelihood),
			Availability:  invite.Availability,
			Activities:    invite.Activities,
			ContactNumber: invite.ContactNumber,
			Timestamp:     invite.Timestamp,
		})
		if err := n.Send(ctx, subject, plain, html); err != nil {
			zap.S().Errorw("failed to send invite notification", "invite", invite.ID.Hex(), "error", err)
		}
	}()
}

// Send delivers one message to the operator and waits for the result
func (n *Notifier) Send(ctx context.Context, subject, plainText, htmlContent string) error {
	if !n.Enabled() {
		metrics.Notifications.WithLabelValues("skipped").Inc()
		return nil
	}

	message := mail.NewSingleEmail(n.from, subject, n.to, plainText, htmlContent)
	response, err := n.sender.SendWithContext(ctx, message)
	if err != nil {
		metrics.Notifications.WithLabelValues("failed").Inc()
		return err
	}
	if response.StatusCode >= 400 {
		metrics.Notifications.WithLabelValues("failed").Inc()
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	metrics.Notifications.WithLabelValues("sent").Inc()
	zap.S().Infow("email sent successfully", "subject", subject, "statusCode", response.StatusCode)
	return nil
}

// Wait blocks until every background notification has finished
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}
