package user

import (
	"strings"

	"github.com/google/uuid"
)

// User is the slice of an account this service reads. Profile CRUD lives elsewhere.
type User struct {
	id     uuid.UUID
	name   string
	email  Email
	phone  string
	role   Role
	status Status
}

func Reconstruct(id uuid.UUID, name, email, phone string, role Role, status Status) *User {
	// stored emails are trusted; a malformed one only loses the display fallback
	e, _ := NewEmail(email)
	return &User{
		id:     id,
		name:   strings.TrimSpace(name),
		email:  e,
		phone:  strings.TrimSpace(phone),
		role:   role,
		status: status,
	}
}

func (u *User) ID() uuid.UUID  { return u.id }
func (u *User) Name() string   { return u.name }
func (u *User) Email() Email   { return u.email }
func (u *User) Phone() string  { return u.phone }
func (u *User) Role() Role     { return u.role }
func (u *User) Status() Status { return u.status }

// DisplayName falls back from name to email local part to phone.
func (u *User) DisplayName() string {
	return DisplayName(u.name, u.email.Value(), u.phone)
}

func DisplayName(name, email, phone string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	if p := strings.TrimSpace(phone); p != "" {
		return p
	}
	return "Unknown"
}
