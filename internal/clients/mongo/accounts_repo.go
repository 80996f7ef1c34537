package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"mentor-match/internal/services/accounts"
	"mentor-match/internal/utils/identifier"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names per role.
const (
	MentorsCollection = "mentors"
	MenteesCollection = "mentees"
)

// AccountsRepo implements accounts.Repository for one role's collection.
type AccountsRepo struct {
	collection *mongo.Collection
	role       accounts.Role
	linkField  string
}

func repoCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return boundCtx(parent, OpTimeout)
}

// NewAccountsRepo opens the collection for role and makes sure email and
// mobile are unique within it.
func NewAccountsRepo(parentCtx context.Context, db *mongo.Database, role accounts.Role) (*AccountsRepo, error) {
	name, linkField := MentorsCollection, "mentees"
	if role == accounts.RoleMentee {
		name, linkField = MenteesCollection, "mentors"
	}
	collection := db.Collection(name)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "mobile", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_mobile"),
		},
		{
			Keys: bson.D{{Key: "notifications.id", Value: 1}},
		},
	}

	ctx, cancel := repoCtx(parentCtx)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("create %s indexes: %w", name, err)
	}

	return &AccountsRepo{collection: collection, role: role, linkField: linkField}, nil
}

// Role returns the role stored in this collection.
func (r *AccountsRepo) Role() accounts.Role { return r.role }

// translateNotFound maps the driver ErrNoDocuments to the domain-level ErrNotFound.
func translateNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return accounts.ErrNotFound
	}
	return err
}

func translateWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return accounts.ErrDuplicate
	}
	return translateNotFound(err)
}

// decodeOne decodes a single result into the record type for this role.
func (r *AccountsRepo) decodeOne(res *mongo.SingleResult) (*accounts.Account, error) {
	if r.role == accounts.RoleMentor {
		var m accounts.Mentor
		if err := res.Decode(&m); err != nil {
			return nil, translateNotFound(err)
		}
		return accounts.NewMentorAccount(&m), nil
	}
	var m accounts.Mentee
	if err := res.Decode(&m); err != nil {
		return nil, translateNotFound(err)
	}
	return accounts.NewMenteeAccount(&m), nil
}

func (r *AccountsRepo) decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*accounts.Account, error) {
	out := []*accounts.Account{}
	if r.role == accounts.RoleMentor {
		var ms []*accounts.Mentor
		if err := cur.All(ctx, &ms); err != nil {
			return nil, err
		}
		for _, m := range ms {
			out = append(out, accounts.NewMentorAccount(m))
		}
		return out, nil
	}
	var ms []*accounts.Mentee
	if err := cur.All(ctx, &ms); err != nil {
		return nil, err
	}
	for _, m := range ms {
		out = append(out, accounts.NewMenteeAccount(m))
	}
	return out, nil
}

// FindByField returns the profile whose email or mobile equals value.
func (r *AccountsRepo) FindByField(ctx context.Context, field identifier.Field, value string) (*accounts.Account, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	return r.decodeOne(r.collection.FindOne(ctx, bson.M{string(field): value}))
}

// FindByID returns the profile with id.
func (r *AccountsRepo) FindByID(ctx context.Context, id bson.ObjectID) (*accounts.Account, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	return r.decodeOne(r.collection.FindOne(ctx, bson.M{"_id": id}))
}

// searchFilter builds the query for q. ok is false when q can match nothing.
func searchFilter(q accounts.SearchQuery) (filter bson.M, ok bool) {
	filter = bson.M{}
	if q.ID != "" {
		oid, err := bson.ObjectIDFromHex(q.ID)
		if err != nil {
			return nil, false
		}
		filter["_id"] = oid
	}
	if q.Skill != "" {
		filter["skills"] = bson.M{"$regex": regexp.QuoteMeta(q.Skill), "$options": "i"}
	}
	if q.Name != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(q.Name), "$options": "i"}
	}
	// Stored emails are lowercase.
	if email := strings.ToLower(strings.TrimSpace(q.Email)); email != "" {
		filter["email"] = email
	}
	return filter, true
}

// Search returns the profiles matching q in insertion order.
func (r *AccountsRepo) Search(ctx context.Context, q accounts.SearchQuery) ([]*accounts.Account, error) {
	filter, ok := searchFilter(q)
	if !ok {
		return []*accounts.Account{}, nil
	}

	ctx, cancel := repoCtx(ctx)
	defer cancel()

	cur, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.role, err)
	}
	defer func() { _ = cur.Close(ctx) }()

	return r.decodeAll(ctx, cur)
}

// Create inserts the record held by acc.
func (r *AccountsRepo) Create(ctx context.Context, acc *accounts.Account) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var doc any
	switch {
	case r.role == accounts.RoleMentor && acc.Mentor != nil:
		doc = acc.Mentor
	case r.role == accounts.RoleMentee && acc.Mentee != nil:
		doc = acc.Mentee
	default:
		return accounts.ErrInvalidRole
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translateWriteErr(err)
	}
	return nil
}

// UpdateByID sets the patched fields and returns the updated profile.
func (r *AccountsRepo) UpdateByID(ctx context.Context, id bson.ObjectID, patch accounts.Patch) (*accounts.Account, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	res := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M(patch)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Err(); err != nil {
		return nil, translateWriteErr(err)
	}
	return r.decodeOne(res)
}

// DeleteByID removes the profile with id.
func (r *AccountsRepo) DeleteByID(ctx context.Context, id bson.ObjectID) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.role, err)
	}
	if res.DeletedCount == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

// PushNotification appends n to the profile's notifications.
func (r *AccountsRepo) PushNotification(ctx context.Context, id bson.ObjectID, n accounts.Notification) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"notifications": n}},
	)
	if err != nil {
		return fmt.Errorf("push notification: %w", err)
	}
	if res.MatchedCount == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

// PullNotification removes the notification atomically and returns it.
func (r *AccountsRepo) PullNotification(ctx context.Context, id bson.ObjectID, notificationID string) (*accounts.Notification, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var before struct {
		Notifications []accounts.Notification `bson:"notifications"`
	}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "notifications.id": notificationID},
		bson.M{"$pull": bson.M{"notifications": bson.M{"id": notificationID}}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.Before).
			SetProjection(bson.M{"notifications.$": 1}),
	).Decode(&before)

	if errors.Is(err, mongo.ErrNoDocuments) {
		n, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": id})
		if countErr != nil {
			return nil, fmt.Errorf("pull notification: %w", countErr)
		}
		if n == 0 {
			return nil, accounts.ErrNotFound
		}
		return nil, accounts.ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pull notification: %w", err)
	}
	if len(before.Notifications) == 0 {
		return nil, accounts.ErrNotificationNotFound
	}
	return &before.Notifications[0], nil
}

// AddLink records otherID in the profile's mentees or mentors set.
func (r *AccountsRepo) AddLink(ctx context.Context, id, otherID bson.ObjectID) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{r.linkField: otherID}},
	)
	if err != nil {
		return fmt.Errorf("add %s link: %w", r.role, err)
	}
	if res.MatchedCount == 0 {
		return accounts.ErrNotFound
	}
	return nil
}
