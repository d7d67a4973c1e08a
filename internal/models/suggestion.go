package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Suggestion statuses
var ValidSuggestionStatuses = []string{"pending", "approved", "rejected", "implemented"}

// Suggestion represents a reader-submitted story idea, stored in MongoDB
type Suggestion struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	LegendName   string             `json:"legendName" bson:"legend_name"`
	Description  string             `json:"description" bson:"description"`
	Era          string             `json:"era" bson:"era"`
	Region       string             `json:"region" bson:"region"`
	HeroType     string             `json:"heroType" bson:"hero_type"`
	WhyImportant string             `json:"whyImportant" bson:"why_important"`
	Sources      string             `json:"sources" bson:"sources"`
	Status       string             `json:"status" bson:"status"`
	AdminNotes   string             `json:"adminNotes" bson:"admin_notes"`
	ReviewedBy   uint               `json:"reviewedBy,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time         `json:"reviewedAt" bson:"reviewed_at"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateSuggestionRequest defines the request body for submitting a suggestion
type CreateSuggestionRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	LegendName   string `json:"legendName" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Era          string `json:"era" validate:"required"`
	Region       string `json:"region" validate:"required"`
	HeroType     string `json:"heroType" validate:"required,oneof=warrior writer rebel spiritual"`
	WhyImportant string `json:"whyImportant" validate:"required"`
	Sources      string `json:"sources"`
}

// ReviewSuggestionRequest defines the request body for the status review endpoint
type ReviewSuggestionRequest struct {
	Status     string `json:"status" validate:"required,oneof=pending approved rejected implemented"`
	AdminNotes string `json:"adminNotes"`
}
