//go:build unit

package user_test

import (
	"testing"

	"vehicle-care-booking/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole(t *testing.T) {
	cases := []struct {
		in    string
		errIs error
	}{
		{in: "customer"},
		{in: "staff"},
		{in: "admin"},
		{in: "operator", errIs: user.ErrInvalidRole},
		{in: "", errIs: user.ErrInvalidRole},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			role, err := user.NewRole(c.in)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.in, role.String())
		})
	}
}

func TestStatus(t *testing.T) {
	_, err := user.NewStatus("active")
	require.NoError(t, err)
	_, err = user.NewStatus("suspended")
	require.ErrorIs(t, err, user.ErrInvalidStatus)
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		name                string
		first, email, phone string
		want                string
	}{
		{name: "name wins", first: "Asha", email: "asha@example.com", phone: "999", want: "Asha"},
		{name: "email local part", email: "ravi.k@example.com", phone: "999", want: "ravi.k"},
		{name: "phone", phone: "9876543210", want: "9876543210"},
		{name: "blank name ignored", first: "   ", phone: "123", want: "123"},
		{name: "unknown", want: "Unknown"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, user.DisplayName(c.first, c.email, c.phone))
		})
	}
}

func TestUser(t *testing.T) {
	id := uuid.New()
	u := user.Reconstruct(id, "", "meera@example.com", "", user.RoleStaff, user.StatusInactive)

	assert.Equal(t, id, u.ID())
	assert.Equal(t, user.StatusInactive, u.Status())
	assert.Equal(t, "meera@example.com", u.Email().Value())
	assert.Equal(t, "meera", u.DisplayName())

	t.Run("malformed stored email only loses the fallback", func(t *testing.T) {
		u := user.Reconstruct(id, "", "not-an-email", "98450", user.RoleStaff, user.StatusActive)
		assert.True(t, u.Email().IsZero())
		assert.Equal(t, "98450", u.DisplayName())
	})
}
