package accounts

import (
	"context"

	"mentor-match/internal/utils/identifier"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository is one profile collection. Every "by id" method returns
// ErrNotFound when no document was matched, which is what lets the
// Resolver fall through from mentors to mentees.
type Repository interface {
	Role() Role
	FindByField(ctx context.Context, field identifier.Field, value string) (*Account, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*Account, error)
	Search(ctx context.Context, q SearchQuery) ([]*Account, error)
	Create(ctx context.Context, acc *Account) error
	UpdateByID(ctx context.Context, id bson.ObjectID, patch Patch) (*Account, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) error
	PushNotification(ctx context.Context, id bson.ObjectID, n Notification) error
	PullNotification(ctx context.Context, id bson.ObjectID, notificationID string) (*Notification, error)
	AddLink(ctx context.Context, id, otherID bson.ObjectID) error
}
