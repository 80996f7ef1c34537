package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mentor-match/internal/services/accounts"
	"mentor-match/internal/utils/sanitize"

	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Directory is the part of the identity resolver mentorship flows need.
type Directory interface {
	FindByRoleID(ctx context.Context, role accounts.Role, id string) (*accounts.Account, error)
	PushNotification(ctx context.Context, role accounts.Role, id bson.ObjectID, n accounts.Notification) error
	PullNotification(ctx context.Context, role accounts.Role, id bson.ObjectID, notificationID string) (*accounts.Notification, error)
	Connect(ctx context.Context, mentorID, menteeID bson.ObjectID) error
}

// Bus delivers events to live connections.
type Bus interface {
	Publish(ctx context.Context, ev Event)
}

// Service runs the mentorship request workflow.
type Service struct {
	dir Directory
	bus Bus
	log *slog.Logger
}

// NewService creates a new mentorship notifications service
func NewService(dir Directory, bus Bus, log *slog.Logger) *Service {
	return &Service{dir: dir, bus: bus, log: log}
}

// RequestMentorship records a request from a mentee on the mentor's profile.
func (s *Service) RequestMentorship(ctx context.Context, req RequestMentorshipRequest) (*NotificationResponse, error) {
	if req.MenteeID == req.MentorID {
		return nil, ErrSelfRequest
	}
	mentee, err := s.dir.FindByRoleID(ctx, accounts.RoleMentee, req.MenteeID)
	if err != nil {
		return nil, s.lookupErr(err, "mentee", req.MenteeID)
	}
	mentor, err := s.dir.FindByRoleID(ctx, accounts.RoleMentor, req.MentorID)
	if err != nil {
		return nil, s.lookupErr(err, "mentor", req.MentorID)
	}

	msg := sanitize.Clean(req.Message)
	if msg == "" {
		msg = fmt.Sprintf("%s has requested you as a mentor", mentee.Name())
	}
	n := newNotification(accounts.KindMentorshipRequest, mentee, msg)

	if err := s.dir.PushNotification(ctx, accounts.RoleMentor, mentor.ID(), n); err != nil {
		return nil, s.lookupErr(err, "mentor", req.MentorID)
	}
	s.bus.Publish(ctx, Event{Type: EventNotification, Recipient: mentor.ID(), Notification: &n})

	return &NotificationResponse{Notification: &n}, nil
}

// Accept resolves a request by linking both profiles and telling the requester.
func (s *Service) Accept(ctx context.Context, req ActionRequest) (*MessageResponse, error) {
	return s.resolve(ctx, req, true)
}

// Decline resolves a request without linking and tells the requester.
func (s *Service) Decline(ctx context.Context, req ActionRequest) (*MessageResponse, error) {
	return s.resolve(ctx, req, false)
}

func (s *Service) resolve(ctx context.Context, req ActionRequest, accept bool) (*MessageResponse, error) {
	role := accounts.RoleMentee
	if req.IsMentor {
		role = accounts.RoleMentor
	}

	actor, err := s.dir.FindByRoleID(ctx, role, req.UserID)
	if err != nil {
		return nil, s.lookupErr(err, string(role), req.UserID)
	}

	var n *accounts.Notification
	for i := range actor.Profile().Notifications {
		if actor.Profile().Notifications[i].ID == req.NotificationID {
			n = &actor.Profile().Notifications[i]
			break
		}
	}
	if n == nil {
		return nil, accounts.ErrNotificationNotFound
	}

	// Replies are informational; resolving one just dismisses it.
	if n.Kind != accounts.KindMentorshipRequest {
		if err := s.take(ctx, role, actor, req.NotificationID); err != nil {
			return nil, err
		}
		return &MessageResponse{Message: "Notification dismissed"}, nil
	}
	if n.FromRole != role.Counterpart() {
		return nil, ErrWrongRole
	}

	// The request stays on the profile until the link is in place.
	kind, verb := accounts.KindRequestDeclined, "declined"
	if accept {
		kind, verb = accounts.KindRequestAccepted, "accepted"
		mentorID, menteeID := actor.ID(), n.FromID
		if role == accounts.RoleMentee {
			mentorID, menteeID = n.FromID, actor.ID()
		}
		if err := s.dir.Connect(ctx, mentorID, menteeID); err != nil {
			s.log.Error("failed to link mentorship", "error", err, "mentor_id", mentorID.Hex(), "mentee_id", menteeID.Hex())
			return nil, err
		}
	}
	if err := s.take(ctx, role, actor, req.NotificationID); err != nil {
		return nil, err
	}

	reply := newNotification(kind, actor, fmt.Sprintf("%s %s your mentorship request", actor.Name(), verb))
	switch err := s.dir.PushNotification(ctx, n.FromRole, n.FromID, reply); {
	case errors.Is(err, accounts.ErrNotFound):
		s.log.Warn("requester no longer exists", "user_id", n.FromID.Hex())
	case err != nil:
		s.log.Error("failed to notify requester", "error", err, "user_id", n.FromID.Hex())
		return nil, err
	default:
		s.bus.Publish(ctx, Event{Type: EventNotification, Recipient: n.FromID, Notification: &reply})
	}

	return &MessageResponse{Message: "Mentorship request " + verb}, nil
}

func (s *Service) lookupErr(err error, role, id string) error {
	if !errors.Is(err, accounts.ErrNotFound) {
		s.log.Error("failed to load profile", "error", err, "role", role, "id", id)
	}
	return err
}

func newNotification(kind string, from *accounts.Account, msg string) accounts.Notification {
	return accounts.Notification{
		ID:        ulid.Make().String(),
		Kind:      kind,
		FromID:    from.ID(),
		FromRole:  from.Role,
		FromName:  from.Name(),
		Message:   msg,
		CreatedAt: time.Now().UTC(),
	}
}

// take removes a resolved notification. A concurrent resolve that got there
// first surfaces as ErrNotificationNotFound.
func (s *Service) take(ctx context.Context, role accounts.Role, actor *accounts.Account, id string) error {
	_, err := s.dir.PullNotification(ctx, role, actor.ID(), id)
	if err != nil && !errors.Is(err, accounts.ErrNotificationNotFound) && !errors.Is(err, accounts.ErrNotFound) {
		s.log.Error("failed to pull notification", "error", err, "user_id", actor.ID().Hex())
	}
	return err
}
