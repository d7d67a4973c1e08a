package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/glorious-tales/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SuggestionFilter narrows suggestion list queries
type SuggestionFilter struct {
	Status   string
	HeroType string
	Era      string
}

// SuggestionRepository defines the interface for suggestion data operations
type SuggestionRepository interface {
	CreateSuggestion(ctx context.Context, suggestion *models.Suggestion) error
	GetSuggestionByID(ctx context.Context, id string) (*models.Suggestion, error)
	FindSuggestions(ctx context.Context, filter SuggestionFilter, skip, limit int64) ([]models.Suggestion, int64, error)
	ReviewSuggestion(ctx context.Context, id, status, adminNotes string, reviewerID uint) (*models.Suggestion, error)
}

// MongoSuggestionRepository implements SuggestionRepository for MongoDB
type MongoSuggestionRepository struct {
	collection *mongo.Collection
}

// NewMongoSuggestionRepository creates a new MongoSuggestionRepository
func NewMongoSuggestionRepository(db *mongo.Database) *MongoSuggestionRepository {
	return &MongoSuggestionRepository{collection: db.Collection("suggestions")}
}

// CreateSuggestion inserts a new suggestion in pending state
func (r *MongoSuggestionRepository) CreateSuggestion(ctx context.Context, suggestion *models.Suggestion) error {
	suggestion.ID = primitive.NewObjectID()
	suggestion.Status = "pending"
	suggestion.CreatedAt = time.Now()
	suggestion.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, suggestion)
	return err
}

// GetSuggestionByID retrieves a suggestion by ID
func (r *MongoSuggestionRepository) GetSuggestionByID(ctx context.Context, id string) (*models.Suggestion, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid suggestion ID format: %w", err)
	}
	var suggestion models.Suggestion
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&suggestion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("suggestion not found")
		}
		return nil, err
	}
	return &suggestion, nil
}

// FindSuggestions retrieves suggestions matching the filter, newest first
func (r *MongoSuggestionRepository) FindSuggestions(ctx context.Context, filter SuggestionFilter, skip, limit int64) ([]models.Suggestion, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.HeroType != "" {
		query["hero_type"] = filter.HeroType
	}
	if filter.Era != "" {
		query["era"] = filter.Era
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	suggestions := []models.Suggestion{}
	if err = cursor.All(ctx, &suggestions); err != nil {
		return nil, 0, err
	}
	return suggestions, total, nil
}

// ReviewSuggestion updates the review state of a suggestion and returns the
// updated document
func (r *MongoSuggestionRepository) ReviewSuggestion(ctx context.Context, id, status, adminNotes string, reviewerID uint) (*models.Suggestion, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid suggestion ID format: %w", err)
	}
	now := time.Now()
	set := bson.M{
		"status":      status,
		"admin_notes": adminNotes,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
		"updated_at":  now,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var suggestion models.Suggestion
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&suggestion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("suggestion not found")
		}
		return nil, err
	}
	return &suggestion, nil
}
