package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mentor-match/internal/utils/identifier"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Resolver presents the mentors and mentees collections as one identity
// space. Every lookup tries mentors first and falls back to mentees.
type Resolver struct {
	mentors Repository
	mentees Repository
}

// NewResolver creates a resolver over the two role collections.
func NewResolver(mentors, mentees Repository) *Resolver {
	return &Resolver{mentors: mentors, mentees: mentees}
}

func (r *Resolver) ordered() []Repository {
	return []Repository{r.mentors, r.mentees}
}

func (r *Resolver) repo(role Role) (Repository, error) {
	switch role {
	case RoleMentor:
		return r.mentors, nil
	case RoleMentee:
		return r.mentees, nil
	default:
		return nil, ErrInvalidRole
	}
}

// ParseID converts a hex id. Anything malformed is reported as ErrNotFound,
// since no stored record can carry it.
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return bson.ObjectID{}, ErrNotFound
	}
	return oid, nil
}

// Resolve classifies the identifier and finds the account holding it.
func (r *Resolver) Resolve(ctx context.Context, ident string) (*Account, error) {
	field, err := identifier.Classify(ident)
	if err != nil {
		return nil, ErrInvalidIdentifierFormat
	}
	return r.findByField(ctx, field, normalize(field, ident))
}

// FindByEmail looks up an account by exact email.
func (r *Resolver) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return r.findByField(ctx, identifier.FieldEmail, normalize(identifier.FieldEmail, email))
}

// normalize lowercases emails. Mobile numbers are only trimmed.
func normalize(field identifier.Field, value string) string {
	value = strings.TrimSpace(value)
	if field == identifier.FieldEmail {
		return strings.ToLower(value)
	}
	return value
}

func (r *Resolver) findByField(ctx context.Context, field identifier.Field, value string) (*Account, error) {
	for _, repo := range r.ordered() {
		acc, err := repo.FindByField(ctx, field, value)
		if err == nil {
			return acc, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("find %s by %s: %w", repo.Role(), field, err)
		}
	}
	return nil, ErrNotFound
}

// IdentityTaken reports whether the email or the mobile is held by any
// account. Checks run mentor email, mentee email, mentor mobile, mentee
// mobile and stop at the first hit. Empty values are skipped.
func (r *Resolver) IdentityTaken(ctx context.Context, email, mobile string) (bool, error) {
	checks := []struct {
		field identifier.Field
		value string
	}{
		{identifier.FieldEmail, normalize(identifier.FieldEmail, email)},
		{identifier.FieldMobile, normalize(identifier.FieldMobile, mobile)},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		_, err := r.findByField(ctx, c.field, c.value)
		switch {
		case err == nil:
			return true, nil
		case !errors.Is(err, ErrNotFound):
			return false, err
		}
	}
	return false, nil
}

// FindByID returns the account with the given hex id.
func (r *Resolver) FindByID(ctx context.Context, id string) (*Account, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	for _, repo := range r.ordered() {
		acc, err := repo.FindByID(ctx, oid)
		if err == nil {
			return acc, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("find %s by id: %w", repo.Role(), err)
		}
	}
	return nil, ErrNotFound
}

// FindByRoleID returns the account with the given id in one collection only.
func (r *Resolver) FindByRoleID(ctx context.Context, role Role, id string) (*Account, error) {
	repo, err := r.repo(role)
	if err != nil {
		return nil, err
	}
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, oid)
}

// UpdateByID applies patch to whichever collection holds id and returns the
// updated record.
func (r *Resolver) UpdateByID(ctx context.Context, id string, patch Patch) (*Account, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	for _, repo := range r.ordered() {
		acc, err := repo.UpdateByID(ctx, oid, patch)
		if err == nil {
			return acc, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("update %s: %w", repo.Role(), err)
		}
	}
	return nil, ErrNotFound
}

// DeleteByID removes the record with id from whichever collection holds it.
func (r *Resolver) DeleteByID(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	for _, repo := range r.ordered() {
		err := repo.DeleteByID(ctx, oid)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("delete %s: %w", repo.Role(), err)
		}
	}
	return ErrNotFound
}

// Create inserts acc into the collection for its role.
func (r *Resolver) Create(ctx context.Context, acc *Account) error {
	repo, err := r.repo(acc.Role)
	if err != nil {
		return err
	}
	return repo.Create(ctx, acc)
}

// Search lists the accounts of one role matching q.
func (r *Resolver) Search(ctx context.Context, role Role, q SearchQuery) ([]*Account, error) {
	repo, err := r.repo(role)
	if err != nil {
		return nil, err
	}
	return repo.Search(ctx, q)
}

// PushNotification appends n to the profile of the given role and id.
func (r *Resolver) PushNotification(ctx context.Context, role Role, id bson.ObjectID, n Notification) error {
	repo, err := r.repo(role)
	if err != nil {
		return err
	}
	return repo.PushNotification(ctx, id, n)
}

// PullNotification removes a notification and returns it.
func (r *Resolver) PullNotification(ctx context.Context, role Role, id bson.ObjectID, notificationID string) (*Notification, error) {
	repo, err := r.repo(role)
	if err != nil {
		return nil, err
	}
	return repo.PullNotification(ctx, id, notificationID)
}

// Connect records an accepted mentorship on both profiles.
func (r *Resolver) Connect(ctx context.Context, mentorID, menteeID bson.ObjectID) error {
	if err := r.mentors.AddLink(ctx, mentorID, menteeID); err != nil {
		return fmt.Errorf("link mentor: %w", err)
	}
	if err := r.mentees.AddLink(ctx, menteeID, mentorID); err != nil {
		return fmt.Errorf("link mentee: %w", err)
	}
	return nil
}
