package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"anya/internal/model"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, name, email, password, ip, userAgent string) (*model.User, *model.Session, error) {
	args := m.Called(ctx, name, email, password, ip, userAgent)
	return userSessionResult(args)
}

func (m *MockAuthService) Login(ctx context.Context, email, password, ip, userAgent string) (*model.User, *model.Session, error) {
	args := m.Called(ctx, email, password, ip, userAgent)
	return userSessionResult(args)
}

func (m *MockAuthService) GetSession(ctx context.Context, token string) (*model.User, *model.Session, error) {
	args := m.Called(ctx, token)
	return userSessionResult(args)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) AuthenticateAPIKey(ctx context.Context, key string) (*model.User, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) OAuthBeginURL(linkUserID, redirect string) (string, error) {
	args := m.Called(linkUserID, redirect)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) OAuthCallback(ctx context.Context, code, state, ip, userAgent string) (*model.User, *model.Session, string, error) {
	args := m.Called(ctx, code, state, ip, userAgent)
	var user *model.User
	var session *model.Session
	if args.Get(0) != nil {
		user = args.Get(0).(*model.User)
	}
	if args.Get(1) != nil {
		session = args.Get(1).(*model.Session)
	}
	return user, session, args.String(2), args.Error(3)
}

func userSessionResult(args mock.Arguments) (*model.User, *model.Session, error) {
	var user *model.User
	var session *model.Session
	if args.Get(0) != nil {
		user = args.Get(0).(*model.User)
	}
	if args.Get(1) != nil {
		session = args.Get(1).(*model.Session)
	}
	return user, session, args.Error(2)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id string, user *model.User) (*model.User, error) {
	args := m.Called(ctx, id, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}
