//go:build e2e

package e2e

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vehicle-care-booking/internal/domain/user"
	"vehicle-care-booking/internal/handler/dto/response"
	commonhttp "vehicle-care-booking/tests/common/httptest"
	"vehicle-care-booking/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	CheckoutSessionsURL = "/api/checkout/sessions"
	CheckoutVerifyURL   = "/api/checkout/verify"
	CheckoutFailureURL  = "/api/checkout/failure"
)

// Customer is a seeded customer with a vehicle and a saved address.
type Customer struct {
	ID        uuid.UUID
	VehicleID uuid.UUID
	AddressID uuid.UUID
	Token     string
}

// World is the catalog and accounts most flows start from.
type World struct {
	ServiceID  uuid.UUID
	Customer   Customer
	AdminToken string
	StaffID    uuid.UUID
	StaffToken string
}

// SedanPrice is what the seeded service charges the seeded vehicle.
const SedanPrice int64 = 500

func (s *SharedSuite) SeedWorld(t *testing.T) World {
	t.Helper()

	serviceID := dbtest.CreateTestService(t, s.DB, "Foam Wash",
		dbtest.PriceRow{VehicleType: "hatchback", Price: 400},
		dbtest.PriceRow{VehicleType: "sedan", Price: SedanPrice},
		dbtest.PriceRow{VehicleType: "suv", Price: 700},
	)
	adminID := dbtest.CreateTestUser(t, s.DB, "Admin", user.RoleAdmin)
	staffID := dbtest.CreateTestUser(t, s.DB, "Ravi", user.RoleStaff)

	return World{
		ServiceID:  serviceID,
		Customer:   s.SeedCustomer(t, "Asha"),
		AdminToken: s.JWT.GenerateToken(t, adminID, user.RoleAdmin),
		StaffID:    staffID,
		StaffToken: s.JWT.GenerateToken(t, staffID, user.RoleStaff),
	}
}

func (s *SharedSuite) SeedCustomer(t *testing.T, name string) Customer {
	t.Helper()

	id := dbtest.CreateTestUser(t, s.DB, name, user.RoleCustomer)
	return Customer{
		ID:        id,
		VehicleID: dbtest.CreateTestVehicle(t, s.DB, id, "car", "sedan"),
		AddressID: dbtest.CreateTestAddress(t, s.DB, id),
		Token:     s.JWT.GenerateToken(t, id, user.RoleCustomer),
	}
}

// Tomorrow is the next calendar day in the business time zone.
func (s *SharedSuite) Tomorrow() string {
	return time.Now().In(s.Config.Checkout.Location()).AddDate(0, 0, 1).Format("2006-01-02")
}

// SessionBody is a checkout request for c's vehicle and saved address.
func SessionBody(serviceID uuid.UUID, c Customer, date, tod string, amount int64) map[string]any {
	return map[string]any{
		"bookingData": map[string]any{
			"serviceId":     serviceID.String(),
			"vehicleId":     c.VehicleID.String(),
			"scheduledDate": date,
			"scheduledTime": tod,
			"addressId":     c.AddressID.String(),
			"addOns":        []string{},
		},
		"paymentType": "full",
		"amount":      amount,
	}
}

// OpenSession creates a checkout session and fails the test on anything but 201.
func (s *SharedSuite) OpenSession(t *testing.T, token string, body map[string]any) response.SessionResponse {
	t.Helper()

	w := commonhttp.PerformRequest(t, s.Router, http.MethodPost, CheckoutSessionsURL, body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res response.SessionResponse
	require.NoError(t, commonhttp.DecodeResponseBody(t, w.Body, &res))
	require.NotEmpty(t, res.OrderID)
	return res
}

// PayAndVerify settles the order at the fake gateway and posts the callback.
func (s *SharedSuite) PayAndVerify(t *testing.T, token, orderID string) *httptest.ResponseRecorder {
	t.Helper()

	paymentID, signature := s.Gateway.Pay(orderID)
	require.NotEmpty(t, paymentID)
	return s.Verify(t, token, orderID, paymentID, signature)
}

func (s *SharedSuite) Verify(t *testing.T, token, orderID, paymentID, signature string) *httptest.ResponseRecorder {
	t.Helper()

	return commonhttp.PerformRequest(t, s.Router, http.MethodPost, CheckoutVerifyURL, map[string]string{
		"orderId":   orderID,
		"paymentId": paymentID,
		"signature": signature,
	}, token)
}

// BookSlot runs the whole checkout for one open slot and returns the booking id.
func (s *SharedSuite) BookSlot(t *testing.T, w World, date, tod string) uuid.UUID {
	t.Helper()

	sess := s.OpenSession(t, w.Customer.Token, SessionBody(w.ServiceID, w.Customer, date, tod, SedanPrice))
	rec := s.PayAndVerify(t, w.Customer.Token, sess.OrderID)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res response.VerifyResponse
	require.NoError(t, commonhttp.DecodeResponseBody(t, rec.Body, &res))
	id, err := uuid.Parse(res.BookingID)
	require.NoError(t, err)
	return id
}
