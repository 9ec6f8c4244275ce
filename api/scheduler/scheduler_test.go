package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/rsvp-api/databases/mocks"
	"github.com/linesmerrill/rsvp-api/models"
	templates "github.com/linesmerrill/rsvp-api/templates/html"
)

type fakeMailer struct {
	enabled  bool
	err      error
	subjects []string
	bodies   []string
}

func (f *fakeMailer) Enabled() bool { return f.enabled }

func (f *fakeMailer) Send(ctx context.Context, subject, plainText, htmlContent string) error {
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, plainText)
	return f.err
}

var now = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func newTestScheduler(db *mocks.InviteDatabase, mailer *fakeMailer) *Scheduler {
	s := NewScheduler("0 9 * * *", db, mailer)
	s.Now = func() time.Time { return now }
	return s
}

func TestSummarize(t *testing.T) {
	rows := Summarize([]models.Invite{
		{Likelihood: models.LikelihoodHot},
		{Likelihood: models.LikelihoodMild},
		{Likelihood: models.LikelihoodHot},
	})

	assert.Equal(t, []templates.DigestRow{
		{Likelihood: "mild", Count: 1},
		{Likelihood: "hot", Count: 2},
	}, rows)
}

func TestSendDigest(t *testing.T) {
	db := &mocks.InviteDatabase{}
	db.On("FindSince", mock.Anything, now.Add(-24*time.Hour)).Return([]models.Invite{
		{Name: "Alex", Likelihood: models.LikelihoodHot},
		{Name: "Sam", Likelihood: models.LikelihoodMedium},
	}, nil)
	db.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(7), nil)
	mailer := &fakeMailer{enabled: true}

	s := newTestScheduler(db, mailer)
	require.NoError(t, s.SendDigest(context.Background()))

	require.Len(t, mailer.subjects, 1)
	assert.Equal(t, "RSVP digest: 2 new", mailer.subjects[0])
	assert.Contains(t, mailer.bodies[0], "hot: 1")
	assert.Contains(t, mailer.bodies[0], "medium: 1")
	assert.Contains(t, mailer.bodies[0], "7 RSVPs in total")
	assert.Equal(t, now, s.lastRun)
}

func TestSendDigestNothingNew(t *testing.T) {
	db := &mocks.InviteDatabase{}
	db.On("FindSince", mock.Anything, mock.Anything).Return([]models.Invite{}, nil)
	mailer := &fakeMailer{enabled: true}

	s := newTestScheduler(db, mailer)
	require.NoError(t, s.SendDigest(context.Background()))

	assert.Empty(t, mailer.subjects)
}

func TestSendDigestKeepsWindowOnFailure(t *testing.T) {
	db := &mocks.InviteDatabase{}
	db.On("FindSince", mock.Anything, mock.Anything).Return([]models.Invite{{Name: "Alex", Likelihood: models.LikelihoodHot}}, nil)
	db.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), errors.New("mocked-error"))
	mailer := &fakeMailer{enabled: true, err: errors.New("relay down")}

	s := newTestScheduler(db, mailer)
	err := s.SendDigest(context.Background())

	assert.Error(t, err)
	assert.True(t, s.lastRun.IsZero())
}

func TestSendDigestFindError(t *testing.T) {
	db := &mocks.InviteDatabase{}
	db.On("FindSince", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	s := newTestScheduler(db, &fakeMailer{enabled: true})

	assert.ErrorContains(t, s.SendDigest(context.Background()), "mocked-error")
}

func TestStartDisabled(t *testing.T) {
	started, err := NewScheduler("", &mocks.InviteDatabase{}, &fakeMailer{enabled: true}).Start()
	assert.NoError(t, err)
	assert.False(t, started)

	started, err = NewScheduler("0 9 * * *", &mocks.InviteDatabase{}, &fakeMailer{}).Start()
	assert.NoError(t, err)
	assert.False(t, started)
}

func TestStartBadSpec(t *testing.T) {
	started, err := NewScheduler("not a spec", &mocks.InviteDatabase{}, &fakeMailer{enabled: true}).Start()

	assert.Error(t, err)
	assert.False(t, started)
}

func TestStartAndStop(t *testing.T) {
	s := NewScheduler("0 9 * * *", &mocks.InviteDatabase{}, &fakeMailer{enabled: true})

	started, err := s.Start()
	require.NoError(t, err)
	assert.True(t, started)
	s.Stop()
}
