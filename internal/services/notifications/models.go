package notifications

import (
	"mentor-match/internal/services/accounts"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Event types pushed on the live stream.
const (
	EventNotification = "notification"
)

// Event is delivered to every live connection of Recipient.
type Event struct {
	Type         string                 `json:"type" example:"notification"`
	Recipient    bson.ObjectID          `json:"-"`
	Notification *accounts.Notification `json:"notification"`
}

// RequestMentorshipRequest is sent by a mentee asking a mentor for guidance.
type RequestMentorshipRequest struct {
	MenteeID string `json:"menteeId" validate:"required" example:"683cdb8aa96ad71e8e075bd0"`
	MentorID string `json:"mentorId" validate:"required" example:"683cdb8aa96ad71e8e075bd1"`
	Message  string `json:"message,omitempty" validate:"omitempty,max=500" example:"I'd love help with Go concurrency"`
}

// ActionRequest accepts or declines a notification on the acting user's profile.
// IsMentor selects the collection holding UserID.
type ActionRequest struct {
	UserID         string `json:"userId" validate:"required" example:"683cdb8aa96ad71e8e075bd1"`
	NotificationID string `json:"notificationId" validate:"required" example:"01J9Z3N6Q8W7XJ5M2C4B1A0D9E"`
	IsMentor       bool   `json:"isMentor" example:"true"`
}

// NotificationResponse wraps a single notification
type NotificationResponse struct {
	Notification *accounts.Notification `json:"notification"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message" example:"Mentorship request accepted"`
}
