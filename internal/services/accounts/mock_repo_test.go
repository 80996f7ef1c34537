package accounts

import (
	"context"
	"io"
	"log/slog"

	"mentor-match/internal/utils/identifier"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// MockRepo is a mock implementation of Repository
type MockRepo struct {
	mock.Mock
	role Role
}

func newMockRepo(role Role) *MockRepo { return &MockRepo{role: role} }

func (m *MockRepo) Role() Role { return m.role }

func (m *MockRepo) FindByField(ctx context.Context, field identifier.Field, value string) (*Account, error) {
	args := m.Called(ctx, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockRepo) FindByID(ctx context.Context, id bson.ObjectID) (*Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockRepo) Search(ctx context.Context, q SearchQuery) ([]*Account, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Account), args.Error(1)
}

func (m *MockRepo) Create(ctx context.Context, acc *Account) error {
	return m.Called(ctx, acc).Error(0)
}

func (m *MockRepo) UpdateByID(ctx context.Context, id bson.ObjectID, patch Patch) (*Account, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *MockRepo) DeleteByID(ctx context.Context, id bson.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepo) PushNotification(ctx context.Context, id bson.ObjectID, n Notification) error {
	return m.Called(ctx, id, n).Error(0)
}

func (m *MockRepo) PullNotification(ctx context.Context, id bson.ObjectID, notificationID string) (*Notification, error) {
	args := m.Called(ctx, id, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Notification), args.Error(1)
}

func (m *MockRepo) AddLink(ctx context.Context, id, otherID bson.ObjectID) error {
	return m.Called(ctx, id, otherID).Error(0)
}

func testMentor(email, mobile string) *Account {
	return NewMentorAccount(&Mentor{Profile: Profile{ID: bson.NewObjectID(), Name: "Ada", Email: email, Mobile: mobile}})
}

func testMentee(email, mobile string) *Account {
	return NewMenteeAccount(&Mentee{Profile: Profile{ID: bson.NewObjectID(), Name: "Bo", Email: email, Mobile: mobile}})
}
