package repositories

import (
	"github.com/glorious-tales/backend/internal/models"
	"gorm.io/gorm"
)

// AdminRepository defines the interface for admin account operations
type AdminRepository interface {
	CreateAdmin(admin *models.Admin) error
	GetAdminByID(id uint) (*models.Admin, error)
	GetAdminByUsername(username string) (*models.Admin, error)
	GetAdminByUsernameOrEmail(username, email string) (*models.Admin, error)
	UpdateAdmin(admin *models.Admin) error
}

// PostgresAdminRepository implements AdminRepository for PostgreSQL
type PostgresAdminRepository struct {
	db *gorm.DB
}

// NewPostgresAdminRepository creates a new PostgresAdminRepository
func NewPostgresAdminRepository(db *gorm.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

// CreateAdmin creates a new admin account
func (r *PostgresAdminRepository) CreateAdmin(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// GetAdminByID retrieves an admin by ID
func (r *PostgresAdminRepository) GetAdminByID(id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetAdminByUsername retrieves an admin by username
func (r *PostgresAdminRepository) GetAdminByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetAdminByUsernameOrEmail retrieves an admin matching either field,
// used for uniqueness checks before creation
func (r *PostgresAdminRepository) GetAdminByUsernameOrEmail(username, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("username = ? OR email = ?", username, email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpdateAdmin updates an existing admin account
func (r *PostgresAdminRepository) UpdateAdmin(admin *models.Admin) error {
	return r.db.Save(admin).Error
}
