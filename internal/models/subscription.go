package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription is a newsletter subscription stored in PostgreSQL. The row
// survives unsubscription so resubscribing reactivates it in place.
type Subscription struct {
	gorm.Model     `json:"-"`
	ID             uint       `json:"id" gorm:"primaryKey"`
	Email          string     `json:"email" gorm:"uniqueIndex"`
	IsActive       bool       `json:"isActive" gorm:"default:true"`
	SubscribedAt   time.Time  `json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt"`
	LastEmailSent  *time.Time `json:"lastEmailSent"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

// SubscriptionStats summarizes the subscriber base
type SubscriptionStats struct {
	TotalSubscribers  int64 `json:"totalSubscribers"`
	TotalUnsubscribed int64 `json:"totalUnsubscribed"`
	NewThisMonth      int64 `json:"newThisMonth"`
	Total             int64 `json:"total"`
}
