package databases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/rsvp-api/config"
	"github.com/linesmerrill/rsvp-api/databases"
	"github.com/linesmerrill/rsvp-api/databases/mocks"
	"github.com/linesmerrill/rsvp-api/models"
)

func TestNewInviteDatabase(t *testing.T) {
	conf := &config.Config{URL: "mongodb://127.0.0.1:27017", DatabaseName: "test"}

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	inviteDB := databases.NewInviteDatabase(db)

	assert.NotEmpty(t, inviteDB)
}

func TestInviteDatabase_InsertOne(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var insertResult databases.InsertOneResultHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	insertResult = &mocks.InsertOneResultHelper{}

	id := primitive.NewObjectID()
	insertResult.(*mocks.InsertOneResultHelper).On("Decode").Return(id)

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), mock.MatchedBy(func(i models.Invite) bool {
			return i.Name == "Alex"
		})).
		Return(insertResult, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "invites").Return(collectionHelper)

	inviteDba := databases.NewInviteDatabase(dbHelper)

	before := time.Now().UTC()
	invite, err := inviteDba.InsertOne(context.Background(), models.Invite{
		Name:          "Alex",
		Likelihood:    models.LikelihoodHot,
		ContactNumber: "555-1234",
	})

	require.NoError(t, err)
	assert.Equal(t, id, invite.ID)
	assert.Equal(t, "Alex", invite.Name)
	assert.Equal(t, models.LikelihoodHot, invite.Likelihood)
	assert.Equal(t, "555-1234", invite.ContactNumber)
	assert.False(t, invite.Timestamp.Before(before))
}

func TestInviteDatabase_InsertOneValidationError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}

	inviteDba := databases.NewInviteDatabase(dbHelper)

	invite, err := inviteDba.InsertOne(context.Background(), models.Invite{Name: "Alex", Likelihood: "lukewarm"})

	assert.Nil(t, invite)
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"lukewarm is not a supported likelihood"}, ve.Messages)
	// nothing reaches the collection when the schema rejects the record
	dbHelper.AssertNotCalled(t, "Collection", mock.Anything)
}

func TestInviteDatabase_InsertOneCollectionError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("InsertOne", context.Background(), mock.Anything).
		Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "invites").Return(collectionHelper)

	inviteDba := databases.NewInviteDatabase(dbHelper)

	invite, err := inviteDba.InsertOne(context.Background(), models.Invite{Name: "Alex", Likelihood: "mild"})

	assert.Nil(t, invite)
	assert.EqualError(t, err, "mocked-error")
}

func TestInviteDatabase_FindSince(t *testing.T) {

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Invite)
		(*arg) = []models.Invite{{Name: "mocked-invite", Likelihood: models.LikelihoodHot}}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), mock.Anything, mock.Anything).
		Return(cursorHelper, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "invites").Return(collectionHelper)

	inviteDba := databases.NewInviteDatabase(dbHelper)

	invites, err := inviteDba.FindSince(context.Background(), time.Now().Add(-24*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, []models.Invite{{Name: "mocked-invite", Likelihood: models.LikelihoodHot}}, invites)
}

func TestInviteDatabase_FindSinceError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("Find", context.Background(), mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "invites").Return(collectionHelper)

	inviteDba := databases.NewInviteDatabase(dbHelper)

	invites, err := inviteDba.FindSince(context.Background(), time.Now())

	assert.Empty(t, invites)
	assert.EqualError(t, err, "mocked-error")
}

func TestInviteDatabase_CountDocuments(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("CountDocuments", context.Background(), mock.Anything).Return(int64(3), nil)
	dbHelper.On("Collection", "invites").Return(collectionHelper)

	inviteDba := databases.NewInviteDatabase(dbHelper)

	count, err := inviteDba.CountDocuments(context.Background(), map[string]interface{}{})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
