//go:build unit || e2e

package builder

import (
	"vehicle-care-booking/internal/domain/booking"
	"vehicle-care-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID     uuid.UUID
	Name   string
	Email  string
	Phone  string
	Role   string
	Status string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:     uuid.New(),
		Name:   "Arjun",
		Email:  "arjun@example.com",
		Phone:  "9000000001",
		Role:   "staff",
		Status: "active",
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.Status = "inactive"
	return u
}

func (u *UserBuilder) AsRole(role user.Role) *UserBuilder {
	u.Role = role.String()
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	status, err := user.NewStatus(u.Status)
	if err != nil {
		return nil, err
	}
	return user.Reconstruct(u.ID, u.Name, u.Email, u.Phone, role, status), nil
}

// BuildStaffSpec goes through the domain user, so the fields must be valid.
func (u *UserBuilder) BuildStaffSpec() booking.StaffSpec {
	usr, err := u.BuildDomain()
	if err != nil {
		panic(err)
	}
	return booking.StaffSpecOf(usr)
}
