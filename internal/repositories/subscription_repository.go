package repositories

import (
	"time"

	"github.com/glorious-tales/backend/internal/models"
	"gorm.io/gorm"
)

// SubscriptionRepository defines the interface for newsletter subscription operations
type SubscriptionRepository interface {
	CreateSubscription(sub *models.Subscription) error
	GetSubscriptionByEmail(email string) (*models.Subscription, error)
	UpdateSubscription(sub *models.Subscription) error
	GetActiveSubscriptions() ([]models.Subscription, error)
	CountByActive(active bool) (int64, error)
	CountActiveSince(t time.Time) (int64, error)
}

// PostgresSubscriptionRepository implements SubscriptionRepository for PostgreSQL
type PostgresSubscriptionRepository struct {
	db *gorm.DB
}

// NewPostgresSubscriptionRepository creates a new PostgresSubscriptionRepository
func NewPostgresSubscriptionRepository(db *gorm.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

// CreateSubscription creates a new subscription row
func (r *PostgresSubscriptionRepository) CreateSubscription(sub *models.Subscription) error {
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = time.Now()
	}
	return r.db.Create(sub).Error
}

// GetSubscriptionByEmail retrieves a subscription by its unique email
func (r *PostgresSubscriptionRepository) GetSubscriptionByEmail(email string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Where("email = ?", email).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateSubscription updates an existing subscription row
func (r *PostgresSubscriptionRepository) UpdateSubscription(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

// GetActiveSubscriptions retrieves all active subscribers, newest first
func (r *PostgresSubscriptionRepository) GetActiveSubscriptions() ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// CountByActive counts subscriptions by active state
func (r *PostgresSubscriptionRepository) CountByActive(active bool) (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).Where("is_active = ?", active).Count(&count).Error
	return count, err
}

// CountActiveSince counts active subscriptions created at or after t
func (r *PostgresSubscriptionRepository) CountActiveSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Subscription{}).
		Where("is_active = ? AND created_at >= ?", true, t).
		Count(&count).Error
	return count, err
}
