package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glorious-tales/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type mockAdminRepo struct {
	mock.Mock
}

func (m *mockAdminRepo) CreateAdmin(admin *models.Admin) error {
	return m.Called(admin).Error(0)
}

func (m *mockAdminRepo) GetAdminByID(id uint) (*models.Admin, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *mockAdminRepo) GetAdminByUsername(username string) (*models.Admin, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *mockAdminRepo) GetAdminByUsernameOrEmail(username, email string) (*models.Admin, error) {
	args := m.Called(username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *mockAdminRepo) UpdateAdmin(admin *models.Admin) error {
	return m.Called(admin).Error(0)
}

func signToken(t *testing.T, adminID uint, expiresAt time.Time) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		AdminID:  adminID,
		Username: "editor",
		Role:     models.RoleEditor,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func runAuth(t *testing.T, repo *mockAdminRepo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"adminID": c.Get("adminID")})
	}, JWTAuthMiddleware(testSecret, repo))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	rec := runAuth(t, new(mockAdminRepo), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token required", message(t, rec))
}

func TestJWTAuth_BadHeaderFormat(t *testing.T) {
	rec := runAuth(t, new(mockAdminRepo), "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid Authorization header format", message(t, rec))
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	rec := runAuth(t, new(mockAdminRepo), "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", message(t, rec))
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, 1, time.Now().Add(-time.Hour))
	rec := runAuth(t, new(mockAdminRepo), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired", message(t, rec))
}

func TestJWTAuth_InactiveAdmin(t *testing.T) {
	repo := new(mockAdminRepo)
	repo.On("GetAdminByID", uint(7)).Return(&models.Admin{ID: 7, IsActive: false}, nil)

	token := signToken(t, 7, time.Now().Add(time.Hour))
	rec := runAuth(t, repo, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or inactive admin account", message(t, rec))
}

func TestJWTAuth_UnknownAdmin(t *testing.T) {
	repo := new(mockAdminRepo)
	repo.On("GetAdminByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

	token := signToken(t, 9, time.Now().Add(time.Hour))
	rec := runAuth(t, repo, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ValidTokenSetsContext(t *testing.T) {
	repo := new(mockAdminRepo)
	repo.On("GetAdminByID", uint(7)).Return(&models.Admin{ID: 7, Username: "editor", IsActive: true}, nil)

	token := signToken(t, 7, time.Now().Add(time.Hour))
	rec := runAuth(t, repo, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["adminID"])
	repo.AssertExpectations(t)
}
