package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/model"
	"github.com/Freeeeeet/availability_api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubProfessionalService struct {
	createResult *model.Professional
	createErr    error
	findResult   []*model.Professional
	findOne      *model.Professional
	err          error

	lastInput  *service.ProfessionalInput
	lastFilter model.ProfessionalFilter
	lastID     int64
}

func (s *stubProfessionalService) Create(_ context.Context, input *service.ProfessionalInput) (*model.Professional, error) {
	s.lastInput = input
	return s.createResult, s.createErr
}

func (s *stubProfessionalService) Find(_ context.Context, filter model.ProfessionalFilter) ([]*model.Professional, error) {
	s.lastFilter = filter
	return s.findResult, s.err
}

func (s *stubProfessionalService) FindOne(_ context.Context, id int64) (*model.Professional, error) {
	s.lastID = id
	return s.findOne, s.err
}

func (s *stubProfessionalService) Update(_ context.Context, id int64, input *service.ProfessionalInput) (*model.Professional, error) {
	s.lastID = id
	s.lastInput = input
	return s.findOne, s.err
}

func (s *stubProfessionalService) Destroy(_ context.Context, id int64) error {
	s.lastID = id
	return s.err
}

type stubSessionService struct {
	result []*model.Session
	one    *model.Session
	err    error

	lastProfessional int64
	lastID           int64
	lastStart        time.Time
	lastEnd          time.Time
	lastFilter       model.SessionFilter
	lastAvailability model.AvailabilityFilter
}

func (s *stubSessionService) Create(_ context.Context, professionalID int64, start, end time.Time) ([]*model.Session, error) {
	s.lastProfessional = professionalID
	s.lastStart = start
	s.lastEnd = end
	return s.result, s.err
}

func (s *stubSessionService) Find(_ context.Context, filter model.SessionFilter) ([]*model.Session, error) {
	s.lastFilter = filter
	return s.result, s.err
}

func (s *stubSessionService) FindOne(_ context.Context, id int64) (*model.Session, error) {
	s.lastID = id
	return s.one, s.err
}

func (s *stubSessionService) FindAvailable(_ context.Context, filter model.AvailabilityFilter) ([]*model.Session, error) {
	s.lastAvailability = filter
	return s.result, s.err
}

func (s *stubSessionService) Destroy(_ context.Context, professionalID, id int64) error {
	s.lastProfessional = professionalID
	s.lastID = id
	return s.err
}

type stubBookingService struct {
	result       []*model.Session
	err          error
	lastID       int64
	lastCustomer string
}

func (s *stubBookingService) Schedule(_ context.Context, id int64, customer string) ([]*model.Session, error) {
	s.lastID = id
	s.lastCustomer = customer
	return s.result, s.err
}

// stubAuthService принимает токены вида "valid-<id>"
type stubAuthService struct {
	loginErr  error
	lastLogin *int64
}

func (s *stubAuthService) Login(_ context.Context, professionalID *int64) (string, error) {
	s.lastLogin = professionalID
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return "signed-token", nil
}

func (s *stubAuthService) Authenticate(_ context.Context, token string) (int64, error) {
	switch token {
	case "valid-7":
		return 7, nil
	case "orphan":
		return 0, service.UnauthorizedError("Professional not found")
	default:
		return 0, service.UnauthorizedError("Invalid token")
	}
}

type testServer struct {
	router        *gin.Engine
	professionals *stubProfessionalService
	sessions      *stubSessionService
	booking       *stubBookingService
	auth          *stubAuthService
}

func newTestServer() *testServer {
	ts := &testServer{
		professionals: &stubProfessionalService{},
		sessions:      &stubSessionService{},
		booking:       &stubBookingService{},
		auth:          &stubAuthService{},
	}

	ts.router = NewRouter(Deps{
		Professionals: ts.professionals,
		Sessions:      ts.sessions,
		Booking:       ts.booking,
		Auth:          ts.auth,
		Location:      time.UTC,
		Logger:        zap.NewNop(),
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()

	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var out struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Error
}
