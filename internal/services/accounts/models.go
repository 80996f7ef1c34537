package accounts

import (
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role tags which collection a profile lives in.
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

// ParseRole accepts exactly "mentor" or "mentee".
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMentor, RoleMentee:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// Counterpart returns the other side of a mentorship.
func (r Role) Counterpart() Role {
	if r == RoleMentor {
		return RoleMentee
	}
	return RoleMentor
}

// Notification kinds.
const (
	KindMentorshipRequest = "mentorship_request"
	KindRequestAccepted   = "request_accepted"
	KindRequestDeclined   = "request_declined"
)

// Notification is embedded in the recipient's profile document.
type Notification struct {
	ID        string        `bson:"id" json:"id" example:"01J9Z3N6Q8W7XJ5M2C4B1A0D9E"`
	Kind      string        `bson:"kind" json:"kind" example:"mentorship_request"`
	FromID    bson.ObjectID `bson:"from_id" json:"from_id" example:"683cdb8aa96ad71e8e075bd1"`
	FromRole  Role          `bson:"from_role" json:"from_role" example:"mentee"`
	FromName  string        `bson:"from_name" json:"from_name" example:"Ada"`
	Message   string        `bson:"message" json:"message" example:"Ada wants you as a mentor"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// Profile holds the fields both collections share.
type Profile struct {
	ID            bson.ObjectID  `bson:"_id,omitempty" json:"_id" example:"683cdb8aa96ad71e8e075bd1"`
	Name          string         `bson:"name" json:"name" example:"Ada"`
	Email         string         `bson:"email" json:"email" example:"a@x.com"`
	Mobile        string         `bson:"mobile" json:"mobile" example:"1234567890"`
	PasswordHash  string         `bson:"password" json:"-"`
	Skills        string         `bson:"skills" json:"skills" example:"go, distributed systems"`
	Photo         string         `bson:"photo" json:"photo" example:"https://res.cloudinary.com/demo/image/upload/ada.png"`
	Role          Role           `bson:"type" json:"role" example:"mentor"`
	Notifications []Notification `bson:"notifications" json:"notifications"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// Mentor is a document in the mentors collection.
type Mentor struct {
	Profile      `bson:",inline"`
	Experience   string          `bson:"experience" json:"experience" example:"8 years backend"`
	Availability string          `bson:"availability" json:"availability" example:"weekends"`
	Mentees      []bson.ObjectID `bson:"mentees" json:"mentees"`
}

// Mentee is a document in the mentees collection.
type Mentee struct {
	Profile `bson:",inline"`
	Mentors []bson.ObjectID `bson:"mentors" json:"mentors"`
}

// Account is a profile from either collection together with the role
// derived from where it was found. Exactly one of Mentor or Mentee is set.
type Account struct {
	Role   Role
	Mentor *Mentor
	Mentee *Mentee
}

// NewMentorAccount wraps m, forcing its stored role to mentor.
func NewMentorAccount(m *Mentor) *Account {
	m.Role = RoleMentor
	return &Account{Role: RoleMentor, Mentor: m}
}

// NewMenteeAccount wraps m, forcing its stored role to mentee.
func NewMenteeAccount(m *Mentee) *Account {
	m.Role = RoleMentee
	return &Account{Role: RoleMentee, Mentee: m}
}

// Profile returns the shared fields of whichever record is set.
func (a *Account) Profile() *Profile {
	switch {
	case a.Mentor != nil:
		return &a.Mentor.Profile
	case a.Mentee != nil:
		return &a.Mentee.Profile
	default:
		return nil
	}
}

func (a *Account) ID() bson.ObjectID    { return a.Profile().ID }
func (a *Account) Name() string         { return a.Profile().Name }
func (a *Account) Email() string        { return a.Profile().Email }
func (a *Account) PasswordHash() string { return a.Profile().PasswordHash }

// MarshalJSON renders the underlying record, so clients see a plain mentor or
// mentee object.
func (a *Account) MarshalJSON() ([]byte, error) {
	switch {
	case a.Mentor != nil:
		return json.Marshal(a.Mentor)
	case a.Mentee != nil:
		return json.Marshal(a.Mentee)
	default:
		return nil, errors.New("account has no record")
	}
}

// SearchQuery filters a directory listing. Empty fields are ignored.
// Skill and Name are case-insensitive substring matches, Email is exact.
type SearchQuery struct {
	ID    string `query:"id" example:"683cdb8aa96ad71e8e075bd1"`
	Skill string `query:"skill" example:"go"`
	Name  string `query:"name" example:"ada"`
	Email string `query:"email" example:"a@x.com"`
}

// Patch is an arbitrary partial update keyed by stored field name.
type Patch map[string]any
