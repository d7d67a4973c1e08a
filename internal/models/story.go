package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hero types a story can be filed under
var ValidHeroTypes = []string{"warrior", "writer", "rebel", "spiritual"}

// Story represents a published legend stored in MongoDB
type Story struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title               string             `json:"title" bson:"title"`
	Slug                string             `json:"slug" bson:"slug"`
	Subtitle            string             `json:"subtitle" bson:"subtitle"`
	Description         string             `json:"description" bson:"description"`
	Image               string             `json:"image" bson:"image"`
	HeroType            string             `json:"heroType" bson:"hero_type"`
	Era                 string             `json:"era" bson:"era"`
	Region              string             `json:"region" bson:"region"`
	Gender              string             `json:"gender" bson:"gender"`
	BirthYear           int                `json:"birthYear" bson:"birth_year"`
	DeathYear           int                `json:"deathYear" bson:"death_year"`
	ReadingTime         string             `json:"readingTime" bson:"reading_time"`
	ListeningTime       string             `json:"listeningTime,omitempty" bson:"listening_time,omitempty"`
	Conditions          []string           `json:"conditions" bson:"conditions"`
	HistoricalContext   string             `json:"historicalContext" bson:"historical_context"`
	Chapters            []Chapter          `json:"chapters" bson:"chapters"`
	Quotes              []string           `json:"quotes" bson:"quotes"`
	Legacy              string             `json:"legacy" bson:"legacy"`
	ModernRelevance     string             `json:"modernRelevance,omitempty" bson:"modern_relevance,omitempty"`
	VoiceNarrationStyle string             `json:"voiceNarrationStyle,omitempty" bson:"voice_narration_style,omitempty"`
	AudioURL            string             `json:"audioUrl,omitempty" bson:"audio_url,omitempty"`
	IsPublished         bool               `json:"isPublished" bson:"is_published"`
	IsFeatured          bool               `json:"isFeatured" bson:"is_featured"`
	Views               int                `json:"views" bson:"views"`
	Likes               int                `json:"likes" bson:"likes"`
	Shares              int                `json:"shares" bson:"shares"`
	RatingCount         int                `json:"ratingCount" bson:"rating_count"`
	CreatedBy           uint               `json:"createdBy,omitempty" bson:"created_by,omitempty"`
	CreatedAt           time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" bson:"updated_at"`
}

// Chapter is a single chapter of a story
type Chapter struct {
	ID            string `json:"id" bson:"id"`
	Title         string `json:"title" bson:"title"`
	Content       string `json:"content" bson:"content"`
	EmotionalTone string `json:"emotionalTone,omitempty" bson:"emotional_tone,omitempty"`
	Annotation    string `json:"annotation,omitempty" bson:"annotation,omitempty"`
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	Title               string    `json:"title" validate:"required"`
	Slug                string    `json:"slug" validate:"required"`
	Subtitle            string    `json:"subtitle" validate:"required"`
	Description         string    `json:"description" validate:"required"`
	Image               string    `json:"image" validate:"required"`
	HeroType            string    `json:"heroType" validate:"required,oneof=warrior writer rebel spiritual"`
	Era                 string    `json:"era" validate:"required"`
	Region              string    `json:"region" validate:"required"`
	Gender              string    `json:"gender" validate:"required,oneof=male female"`
	BirthYear           int       `json:"birthYear" validate:"required"`
	DeathYear           int       `json:"deathYear" validate:"required"`
	ReadingTime         string    `json:"readingTime" validate:"required"`
	ListeningTime       string    `json:"listeningTime"`
	Conditions          []string  `json:"conditions"`
	HistoricalContext   string    `json:"historicalContext" validate:"required"`
	Chapters            []Chapter `json:"chapters" validate:"required"`
	Quotes              []string  `json:"quotes"`
	Legacy              string    `json:"legacy" validate:"required"`
	ModernRelevance     string    `json:"modernRelevance"`
	VoiceNarrationStyle string    `json:"voiceNarrationStyle"`
	AudioURL            string    `json:"audioUrl"`
	IsPublished         bool      `json:"isPublished"`
	IsFeatured          bool      `json:"isFeatured"`
}

// UpdateStoryRequest defines the request body for a partial story update.
// Only non-nil fields are applied.
type UpdateStoryRequest struct {
	Title               *string    `json:"title"`
	Slug                *string    `json:"slug"`
	Subtitle            *string    `json:"subtitle"`
	Description         *string    `json:"description"`
	Image               *string    `json:"image"`
	HeroType            *string    `json:"heroType" validate:"omitempty,oneof=warrior writer rebel spiritual"`
	Era                 *string    `json:"era"`
	Region              *string    `json:"region"`
	Gender              *string    `json:"gender" validate:"omitempty,oneof=male female"`
	BirthYear           *int       `json:"birthYear"`
	DeathYear           *int       `json:"deathYear"`
	ReadingTime         *string    `json:"readingTime"`
	ListeningTime       *string    `json:"listeningTime"`
	Conditions          *[]string  `json:"conditions"`
	HistoricalContext   *string    `json:"historicalContext"`
	Chapters            *[]Chapter `json:"chapters"`
	Quotes              *[]string  `json:"quotes"`
	Legacy              *string    `json:"legacy"`
	ModernRelevance     *string    `json:"modernRelevance"`
	VoiceNarrationStyle *string    `json:"voiceNarrationStyle"`
	AudioURL            *string    `json:"audioUrl"`
	IsPublished         *bool      `json:"isPublished"`
	IsFeatured          *bool      `json:"isFeatured"`
}

// StoryOverviewStats aggregates counters over published stories
type StoryOverviewStats struct {
	TotalStories int64        `json:"totalStories"`
	TotalViews   int64        `json:"totalViews"`
	TotalLikes   int64        `json:"totalLikes"`
	ByHeroType   []GroupCount `json:"byHeroType"`
	ByEra        []GroupCount `json:"byEra"`
}

// GroupCount is a single bucket of a grouped aggregation
type GroupCount struct {
	Key        string `json:"_id" bson:"_id"`
	Count      int64  `json:"count" bson:"count"`
	TotalViews int64  `json:"totalViews,omitempty" bson:"totalViews,omitempty"`
}
