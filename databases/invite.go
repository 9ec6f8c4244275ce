package databases

// go generate: mockery --name InviteDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/rsvp-api/models"
)

const inviteName = "invites"

// InviteDatabase contains the methods to use with the invite database.
// Invites are insert-only: nothing in this project updates or deletes them.
type InviteDatabase interface {
	InsertOne(ctx context.Context, invite models.Invite) (*models.Invite, error)
	FindSince(ctx context.Context, since time.Time) ([]models.Invite, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type inviteDatabase struct {
	db DatabaseHelper
}

// NewInviteDatabase initializes a new instance of invite database with the provided db connection
func NewInviteDatabase(db DatabaseHelper) InviteDatabase {
	return &inviteDatabase{
		db: db,
	}
}

// InsertOne validates the invite against the collection schema and stores it.
// A schema failure is returned as *models.ValidationError and nothing is written.
func (c *inviteDatabase) InsertOne(ctx context.Context, invite models.Invite) (*models.Invite, error) {
	if invite.Timestamp.IsZero() {
		invite.Timestamp = time.Now().UTC()
	}
	if err := invite.Validate(); err != nil {
		return nil, err
	}
	if invite.ID.IsZero() {
		invite.ID = primitive.NewObjectID()
	}

	res, err := c.db.Collection(inviteName).InsertOne(ctx, invite)
	if err != nil {
		return nil, err
	}
	if id, ok := res.Decode().(primitive.ObjectID); ok {
		invite.ID = id
	}
	return &invite, nil
}

// FindSince returns every invite created at or after since, oldest first
func (c *inviteDatabase) FindSince(ctx context.Context, since time.Time) ([]models.Invite, error) {
	var invites []models.Invite
	filter := bson.M{"timestamp": bson.M{"$gte": since}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := c.db.Collection(inviteName).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&invites)
	if err != nil {
		return nil, err
	}
	return invites, nil
}

func (c *inviteDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(inviteName).CountDocuments(ctx, filter)
}
