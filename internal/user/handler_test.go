package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"laundry-be/internal/apperr"
	"laundry-be/internal/auth"
	"laundry-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LoginResult), args.Error(1)
}

func (m *MockService) Logout(ctx context.Context, id utils.Identity) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) Me(ctx context.Context, userID string) (*User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func newRouter(h *Handler, id *utils.Identity) http.Handler {
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if id != nil {
					req = req.WithContext(utils.SetUserContext(req.Context(), *id))
				}
				next.ServeHTTP(w, req)
			})
		})
		h.RegisterRoutes(r)
	})
	return r
}

func TestHandler_Login(t *testing.T) {
	t.Run("SetsCookie", func(t *testing.T) {
		svc := new(MockService)
		router := newRouter(NewHandler(svc, true), nil)

		svc.On("Login", mock.Anything, LoginInput{Username: "admin", Password: "admin123"}).
			Return(&LoginResult{Token: "jwt", User: &User{ID: "U-ADMIN-001", Username: "admin", Password: "hash", Role: "admin"}}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"admin","password":"admin123"}`)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"message":"Login successful"`)
		assert.Contains(t, w.Body.String(), `"token":"jwt"`)
		assert.NotContains(t, w.Body.String(), "hash")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.CookieName, cookies[0].Name)
		assert.Equal(t, "jwt", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		svc := new(MockService)
		router := newRouter(NewHandler(svc, false), nil)
		svc.On("Login", mock.Anything, mock.Anything).Return(nil, apperr.ErrInvalidCredentials)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"admin","password":"x"}`)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("EmptyBody", func(t *testing.T) {
		router := newRouter(NewHandler(new(MockService), false), nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Logout(t *testing.T) {
	id := utils.Identity{ID: "U-ADMIN-001", Username: "admin", Role: "admin"}
	svc := new(MockService)
	router := newRouter(NewHandler(svc, false), &id)
	svc.On("Logout", mock.Anything, id).Return(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logout successful"}`, w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestHandler_Me(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		id := utils.Identity{ID: "U-PELANGGAN-001"}
		svc := new(MockService)
		router := newRouter(NewHandler(svc, false), &id)
		svc.On("Me", mock.Anything, "U-PELANGGAN-001").Return(&User{ID: "U-PELANGGAN-001", FullName: "Software Testing"}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"fullName":"Software Testing"`)
	})

	t.Run("Vanished", func(t *testing.T) {
		id := utils.Identity{ID: "U-GONE"}
		svc := new(MockService)
		router := newRouter(NewHandler(svc, false), &id)
		svc.On("Me", mock.Anything, "U-GONE").Return(nil, ErrUserNotFound)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Anonymous", func(t *testing.T) {
		router := newRouter(NewHandler(new(MockService), false), nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
