package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/linesmerrill/rsvp-api/databases"
	"github.com/linesmerrill/rsvp-api/models"
	templates "github.com/linesmerrill/rsvp-api/templates/html"
)

// JobTimeout bounds one digest run
const JobTimeout = 5 * time.Minute

// Mailer sends one message to the operator
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, subject, plainText, htmlContent string) error
}

// Scheduler mails the operator a periodic digest of new invites
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	InviteDB databases.InviteDatabase
	Mailer   Mailer
	Now      func() time.Time

	mu      sync.Mutex
	lastRun time.Time
}

// NewScheduler creates a new scheduler instance for the given cron spec
func NewScheduler(spec string, inviteDB databases.InviteDatabase, mailer Mailer) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		spec:     spec,
		InviteDB: inviteDB,
		Mailer:   mailer,
		Now:      time.Now,
	}
}

// Start registers the digest job and starts the cron loop. It returns false
// without starting anything when the digest is disabled.
func (s *Scheduler) Start() (bool, error) {
	if s.spec == "" || !s.Mailer.Enabled() {
		zap.S().Infow("invite digest disabled", "schedule", s.spec, "mailEnabled", s.Mailer.Enabled())
		return false, nil
	}

	s.lastRun = s.Now().UTC()
	_, err := s.cron.AddFunc(s.spec, s.runDigest)
	if err != nil {
		return false, fmt.Errorf("register digest job %q: %w", s.spec, err)
	}

	s.cron.Start()
	zap.S().Infow("invite digest scheduler started", "schedule", s.spec)
	return true, nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("invite digest scheduler stopped")
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), JobTimeout)
	defer cancel()

	if err := s.SendDigest(ctx); err != nil {
		zap.S().Errorw("invite digest failed", "error", err)
	}
}

// SendDigest mails the invites created since the previous run. Nothing is
// sent when there are none. The window only moves forward after a successful
// send so a failed run is retried by the next one.
func (s *Scheduler) SendDigest(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now().UTC()
	since := s.lastRun
	if since.IsZero() {
		since = now.Add(-24 * time.Hour)
	}

	invites, err := s.InviteDB.FindSince(ctx, since)
	if err != nil {
		return fmt.Errorf("find invites since %s: %w", since, err)
	}
	if len(invites) == 0 {
		zap.S().Infow("no new invites for digest", "since", since)
		s.lastRun = now
		return nil
	}

	allTime, err := s.InviteDB.CountDocuments(ctx, bson.M{})
	if err != nil {
		zap.S().Warnw("failed to count invites for digest", "error", err)
		allTime = 0
	}

	rows := Summarize(invites)
	var plain strings.Builder
	fmt.Fprintf(&plain, "%d new RSVPs since %s\n", len(invites), since.Format(time.RFC1123))
	for _, r := range rows {
		fmt.Fprintf(&plain, "%s: %d\n", r.Likelihood, r.Count)
	}
	if allTime > 0 {
		fmt.Fprintf(&plain, "%d RSVPs in total\n", allTime)
	}

	subject := fmt.Sprintf("RSVP digest: %d new", len(invites))
	html := templates.RenderDigestEmail(since, rows, len(invites), allTime)
	if err := s.Mailer.Send(ctx, subject, plain.String(), html); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	s.lastRun = now
	return nil
}

// Summarize counts invites per likelihood in enum order, skipping empty buckets
func Summarize(invites []models.Invite) []templates.DigestRow {
	counts := make(map[models.Likelihood]int, len(models.Likelihoods))
	for _, inv := range invites {
		counts[inv.Likelihood]++
	}
	rows := make([]templates.DigestRow, 0, len(models.Likelihoods))
	for _, l := range models.Likelihoods {
		if counts[l] > 0 {
			rows = append(rows, templates.DigestRow{Likelihood: string(l), Count: counts[l]})
		}
	}
	return rows
}
