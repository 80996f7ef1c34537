//go:build !short

package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"mentor-match/internal/services/accounts"
	"mentor-match/internal/utils/identifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func setupTestDB(t *testing.T) (*mongo.Client, *mongo.Database, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	// Allow override, useful on CI
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Skip("MongoDB not available for testing:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		t.Skip("MongoDB ping failed:", err)
	}

	db := client.Database("test_mentormatch_" + bson.NewObjectID().Hex())

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	}

	return client, db, cleanup
}

func newMentor(email, mobile, name, skills string) *accounts.Account {
	now := time.Now().UTC()
	return accounts.NewMentorAccount(&accounts.Mentor{
		Profile: accounts.Profile{
			ID:            bson.NewObjectID(),
			Name:          name,
			Email:         email,
			Mobile:        mobile,
			PasswordHash:  "hash",
			Skills:        skills,
			Notifications: []accounts.Notification{},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Mentees: []bson.ObjectID{},
	})
}

func newMentee(email, mobile string) *accounts.Account {
	now := time.Now().UTC()
	return accounts.NewMenteeAccount(&accounts.Mentee{
		Profile: accounts.Profile{
			ID:            bson.NewObjectID(),
			Name:          "Bo",
			Email:         email,
			Mobile:        mobile,
			PasswordHash:  "hash",
			Skills:        "python",
			Notifications: []accounts.Notification{},
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Mentors: []bson.ObjectID{},
	})
}

func TestAccountsRepoCreateAndFind(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test")
	}
	ctx := context.Background()
	_, db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewAccountsRepo(ctx, db, accounts.RoleMentor)
	require.NoError(t, err)

	acc := newMentor("a@x.com", "1234567890", "Ada", "Go, Rust")
	require.NoError(t, repo.Create(ctx, acc))

	dup := newMentor("a@x.com", "0000000000", "Other", "go")
	assert.ErrorIs(t, repo.Create(ctx, dup), accounts.ErrDuplicate)

	dupMobile := newMentor("z@x.com", "1234567890", "Other", "go")
	assert.ErrorIs(t, repo.Create(ctx, dupMobile), accounts.ErrDuplicate)

	found, err := repo.FindByField(ctx, identifier.FieldMobile, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, accounts.RoleMentor, found.Role)
	assert.Equal(t, "hash", found.PasswordHash())
	assert.Equal(t, acc.ID(), found.ID())

	_, err = repo.FindByField(ctx, identifier.FieldEmail, "missing@x.com")
	assert.ErrorIs(t, err, accounts.ErrNotFound)

	_, err = repo.FindByID(ctx, bson.NewObjectID())
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestAccountsRepoSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test")
	}
	ctx := context.Background()
	_, db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewAccountsRepo(ctx, db, accounts.RoleMentor)
	require.NoError(t, err)

	ada := newMentor("a@x.com", "1111111111", "Ada Lovelace", "Go, C++")
	bob := newMentor("b@x.com", "2222222222", "Bob", "python")
	require.NoError(t, repo.Create(ctx, ada))
	require.NoError(t, repo.Create(ctx, bob))

	all, err := repo.Search(ctx, accounts.SearchQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bySkill, err := repo.Search(ctx, accounts.SearchQuery{Skill: "GO"})
	require.NoError(t, err)
	require.Len(t, bySkill, 1)
	assert.Equal(t, ada.ID(), bySkill[0].ID())

	// regex metacharacters are matched literally
	byPlus, err := repo.Search(ctx, accounts.SearchQuery{Skill: "c++"})
	require.NoError(t, err)
	assert.Len(t, byPlus, 1)

	byName, err := repo.Search(ctx, accounts.SearchQuery{Name: "love"})
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	byEmail, err := repo.Search(ctx, accounts.SearchQuery{Email: " B@X.com "})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, bob.ID(), byEmail[0].ID())

	byOtherEmail, err := repo.Search(ctx, accounts.SearchQuery{Email: "c@x.com"})
	require.NoError(t, err)
	assert.Empty(t, byOtherEmail)

	byBadID, err := repo.Search(ctx, accounts.SearchQuery{ID: "xyz"})
	require.NoError(t, err)
	assert.NotNil(t, byBadID)
	assert.Empty(t, byBadID)

	byID, err := repo.Search(ctx, accounts.SearchQuery{ID: bob.ID().Hex()})
	require.NoError(t, err)
	assert.Len(t, byID, 1)
}

func TestAccountsRepoUpdateDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test")
	}
	ctx := context.Background()
	_, db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewAccountsRepo(ctx, db, accounts.RoleMentee)
	require.NoError(t, err)

	acc := newMentee("b@x.com", "5550001111")
	require.NoError(t, repo.Create(ctx, acc))

	updated, err := repo.UpdateByID(ctx, acc.ID(), accounts.Patch{"skills": "rust"})
	require.NoError(t, err)
	assert.Equal(t, "rust", updated.Mentee.Skills)

	_, err = repo.UpdateByID(ctx, bson.NewObjectID(), accounts.Patch{"skills": "x"})
	assert.ErrorIs(t, err, accounts.ErrNotFound)

	require.NoError(t, repo.DeleteByID(ctx, acc.ID()))
	assert.ErrorIs(t, repo.DeleteByID(ctx, acc.ID()), accounts.ErrNotFound)
}

func TestAccountsRepoNotificationsAndLinks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping MongoDB integration test")
	}
	ctx := context.Background()
	_, db, cleanup := setupTestDB(t)
	defer cleanup()

	repo, err := NewAccountsRepo(ctx, db, accounts.RoleMentor)
	require.NoError(t, err)

	acc := newMentor("a@x.com", "1234567890", "Ada", "go")
	require.NoError(t, repo.Create(ctx, acc))

	n := accounts.Notification{ID: "n1", Kind: accounts.KindMentorshipRequest, FromID: bson.NewObjectID(), FromRole: accounts.RoleMentee, Message: "hi"}
	require.NoError(t, repo.PushNotification(ctx, acc.ID(), n))
	require.NoError(t, repo.PushNotification(ctx, acc.ID(), accounts.Notification{ID: "n2"}))
	assert.ErrorIs(t, repo.PushNotification(ctx, bson.NewObjectID(), n), accounts.ErrNotFound)

	pulled, err := repo.PullNotification(ctx, acc.ID(), "n1")
	require.NoError(t, err)
	assert.Equal(t, "hi", pulled.Message)

	_, err = repo.PullNotification(ctx, acc.ID(), "n1")
	assert.ErrorIs(t, err, accounts.ErrNotificationNotFound)
	_, err = repo.PullNotification(ctx, bson.NewObjectID(), "n2")
	assert.ErrorIs(t, err, accounts.ErrNotFound)

	other := bson.NewObjectID()
	require.NoError(t, repo.AddLink(ctx, acc.ID(), other))
	require.NoError(t, repo.AddLink(ctx, acc.ID(), other))

	found, err := repo.FindByID(ctx, acc.ID())
	require.NoError(t, err)
	assert.Equal(t, []bson.ObjectID{other}, found.Mentor.Mentees)
	require.Len(t, found.Mentor.Notifications, 1)
	assert.Equal(t, "n2", found.Mentor.Notifications[0].ID)
}
