package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Admin roles
const (
	RoleAdmin     = "admin"
	RoleEditor    = "editor"
	RoleModerator = "moderator"
)

// Admin is an editorial account stored in PostgreSQL
type Admin struct {
	gorm.Model `json:"-"`
	ID         uint       `json:"id" gorm:"primaryKey"`
	Username   string     `json:"username" gorm:"uniqueIndex"`
	Email      string     `json:"email" gorm:"uniqueIndex"`
	Password   string     `json:"-"` // Store hashed password, ignore for JSON serialization
	Name       string     `json:"name"`
	Role       string     `json:"role" gorm:"default:editor"`
	IsActive   bool       `json:"isActive" gorm:"default:true"`
	LastLogin  *time.Time `json:"lastLogin"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Role     string `json:"role" validate:"omitempty,oneof=admin editor moderator"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty" validate:"omitempty,min=8"`
}
