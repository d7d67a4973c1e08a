package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/glorious-tales/backend/internal/models"
	"github.com/glorious-tales/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles admin authentication and account management
type AuthHandler struct {
	adminRepository repositories.AdminRepository
	jwtSecret       string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(adminRepo repositories.AdminRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		adminRepository: adminRepo,
		jwtSecret:       jwtSecret,
	}
}

// RegisterAuthRoutes registers admin account routes. auth guards
// everything except login.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/admin/login", h.Login)
	g.GET("/admin/profile", h.GetProfile, auth)
	g.PUT("/admin/profile", h.UpdateProfile, auth)
	g.POST("/admin/create", h.CreateAdmin, auth)
}

func (h *AuthHandler) generateJWT(admin *models.Admin) (string, error) {
	claims := &models.JwtCustomClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

// Login authenticates an admin and issues a 24h bearer token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	admin, err := h.adminRepository.GetAdminByUsername(strings.ToLower(req.Username))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	if !admin.IsActive {
		return echo.NewHTTPError(http.StatusUnauthorized, "Account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	now := time.Now()
	admin.LastLogin = &now
	if err := h.adminRepository.UpdateAdmin(admin); err != nil {
		log.Printf("Failed to stamp last login for %s: %v", admin.Username, err)
	}

	token, err := h.generateJWT(admin)
	if err != nil {
		log.Printf("Admin login error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Login failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   token,
		"admin":   admin,
	})
}

// GetProfile returns the authenticated admin's account
func (h *AuthHandler) GetProfile(c echo.Context) error {
	admin, ok := c.Get("admin").(*models.Admin)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Admin not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"admin": admin})
}

// UpdateProfile updates the authenticated admin's name, email and,
// gated on the current password, the password
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, ok := c.Get("admin").(*models.Admin)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Admin not found")
	}

	if req.Name != "" {
		admin.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		admin.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}

	if req.CurrentPassword != "" && req.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.CurrentPassword)); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Current password is incorrect")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Update admin profile error: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
		}
		admin.Password = string(hashed)
	}

	if err := h.adminRepository.UpdateAdmin(admin); err != nil {
		log.Printf("Update admin profile error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"admin":   admin,
	})
}

// CreateAdmin creates a new admin account. Only the admin role may do this.
func (h *AuthHandler) CreateAdmin(c echo.Context) error {
	current, ok := c.Get("admin").(*models.Admin)
	if !ok || current.Role != models.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Only super admins can create new admins")
	}

	var req models.CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := h.adminRepository.GetAdminByUsernameOrEmail(username, email)
	if err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Username or email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Create admin error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create admin")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Create admin error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create admin")
	}

	role := req.Role
	if role == "" {
		role = models.RoleEditor
	}

	admin := &models.Admin{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Name:     strings.TrimSpace(req.Name),
		Role:     role,
		IsActive: true,
	}
	if err := h.adminRepository.CreateAdmin(admin); err != nil {
		log.Printf("Create admin error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create admin")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Admin created successfully",
		"admin":   admin,
	})
}
