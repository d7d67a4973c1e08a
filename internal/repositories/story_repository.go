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

// StoryFilter narrows story list queries
type StoryFilter struct {
	HeroType   string
	Era        string
	Region     string
	Gender     string
	Conditions []string
	Search     string
	Published  *bool
}

// StoryRepository defines the interface for story data operations
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	FindStories(ctx context.Context, filter StoryFilter, sort string, skip, limit int64) ([]models.Story, int64, error)
	GetFeaturedStories(ctx context.Context, limit int64) ([]models.Story, error)
	UpdateStory(ctx context.Context, id string, req *models.UpdateStoryRequest) (*models.Story, error)
	DeleteStory(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) (*models.Story, error)
	IncrementShares(ctx context.Context, id string) (*models.Story, error)
	IncrementRatingCount(ctx context.Context, id string) error
	GetOverviewStats(ctx context.Context) (*models.StoryOverviewStats, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoStoryRepository implements StoryRepository for MongoDB
type MongoStoryRepository struct {
	collection *mongo.Collection
}

// NewMongoStoryRepository creates a new MongoStoryRepository
func NewMongoStoryRepository(db *mongo.Database) *MongoStoryRepository {
	return &MongoStoryRepository{collection: db.Collection("stories")}
}

// EnsureIndexes creates the indexes list queries rely on, including the
// text index backing the search filter
func (r *MongoStoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "is_published", Value: 1}}},
		{Keys: bson.D{{Key: "is_featured", Value: 1}}},
		{Keys: bson.D{{Key: "hero_type", Value: 1}}},
		{Keys: bson.D{{Key: "era", Value: 1}}},
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "subtitle", Value: "text"},
			{Key: "description", Value: "text"},
		}},
	})
	return err
}

// CreateStory creates a new story in MongoDB
func (r *MongoStoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now()
	story.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, story)
	return err
}

// GetStoryByID retrieves a story by ID from MongoDB
func (r *MongoStoryRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid story ID format: %w", err)
	}

	var story models.Story
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&story)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("story not found")
		}
		return nil, err
	}
	return &story, nil
}

func (f StoryFilter) toBson() bson.M {
	query := bson.M{}
	if f.Published != nil {
		query["is_published"] = *f.Published
	}
	if f.HeroType != "" {
		query["hero_type"] = f.HeroType
	}
	if f.Era != "" {
		query["era"] = f.Era
	}
	if f.Region != "" {
		query["region"] = f.Region
	}
	if f.Gender != "" {
		query["gender"] = f.Gender
	}
	if len(f.Conditions) > 0 {
		query["conditions"] = bson.M{"$in": f.Conditions}
	}
	if f.Search != "" {
		query["$text"] = bson.M{"$search": f.Search}
	}
	return query
}

func storySort(mode string) bson.D {
	switch mode {
	case "oldest":
		return bson.D{{Key: "created_at", Value: 1}}
	case "popular":
		return bson.D{{Key: "views", Value: -1}, {Key: "likes", Value: -1}}
	case "featured":
		return bson.D{{Key: "is_featured", Value: -1}, {Key: "created_at", Value: -1}}
	default: // newest
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

// FindStories retrieves stories matching the filter with pagination,
// returning the page and the total match count
func (r *MongoStoryRepository) FindStories(ctx context.Context, filter StoryFilter, sort string, skip, limit int64) ([]models.Story, int64, error) {
	query := filter.toBson()

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(storySort(sort))
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	stories := []models.Story{}
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, 0, err
	}
	return stories, total, nil
}

// GetFeaturedStories retrieves the newest published featured stories
func (r *MongoStoryRepository) GetFeaturedStories(ctx context.Context, limit int64) ([]models.Story, error) {
	filter := bson.M{"is_published": true, "is_featured": true}
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stories := []models.Story{}
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// UpdateStory applies the non-nil fields of req and returns the updated
// document, so callers can compare publication state before and after
func (r *MongoStoryRepository) UpdateStory(ctx context.Context, id string, req *models.UpdateStoryRequest) (*models.Story, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid story ID format: %w", err)
	}

	set := bson.M{"updated_at": time.Now()}
	setIf := func(key string, v interface{}, ok bool) {
		if ok {
			set[key] = v
		}
	}
	setIf("title", deref(req.Title), req.Title != nil)
	setIf("slug", deref(req.Slug), req.Slug != nil)
	setIf("subtitle", deref(req.Subtitle), req.Subtitle != nil)
	setIf("description", deref(req.Description), req.Description != nil)
	setIf("image", deref(req.Image), req.Image != nil)
	setIf("hero_type", deref(req.HeroType), req.HeroType != nil)
	setIf("era", deref(req.Era), req.Era != nil)
	setIf("region", deref(req.Region), req.Region != nil)
	setIf("gender", deref(req.Gender), req.Gender != nil)
	setIf("reading_time", deref(req.ReadingTime), req.ReadingTime != nil)
	setIf("listening_time", deref(req.ListeningTime), req.ListeningTime != nil)
	setIf("historical_context", deref(req.HistoricalContext), req.HistoricalContext != nil)
	setIf("legacy", deref(req.Legacy), req.Legacy != nil)
	setIf("modern_relevance", deref(req.ModernRelevance), req.ModernRelevance != nil)
	setIf("voice_narration_style", deref(req.VoiceNarrationStyle), req.VoiceNarrationStyle != nil)
	setIf("audio_url", deref(req.AudioURL), req.AudioURL != nil)
	if req.BirthYear != nil {
		set["birth_year"] = *req.BirthYear
	}
	if req.DeathYear != nil {
		set["death_year"] = *req.DeathYear
	}
	if req.Conditions != nil {
		set["conditions"] = *req.Conditions
	}
	if req.Chapters != nil {
		set["chapters"] = *req.Chapters
	}
	if req.Quotes != nil {
		set["quotes"] = *req.Quotes
	}
	if req.IsPublished != nil {
		set["is_published"] = *req.IsPublished
	}
	if req.IsFeatured != nil {
		set["is_featured"] = *req.IsFeatured
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Story
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("story not found")
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteStory deletes a story by ID
func (r *MongoStoryRepository) DeleteStory(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid story ID format: %w", err)
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("story not found")
	}
	return nil
}

func (r *MongoStoryRepository) incrementAndReturn(ctx context.Context, id, field string) (*models.Story, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid story ID format: %w", err)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var story models.Story
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{field: 1}}, opts).Decode(&story)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("story not found")
		}
		return nil, err
	}
	return &story, nil
}

// IncrementViews bumps the view counter
func (r *MongoStoryRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.incrementAndReturn(ctx, id, "views")
	return err
}

// IncrementLikes bumps the like counter and returns the updated story
func (r *MongoStoryRepository) IncrementLikes(ctx context.Context, id string) (*models.Story, error) {
	return r.incrementAndReturn(ctx, id, "likes")
}

// IncrementShares bumps the share counter and returns the updated story
func (r *MongoStoryRepository) IncrementShares(ctx context.Context, id string) (*models.Story, error) {
	return r.incrementAndReturn(ctx, id, "shares")
}

// IncrementRatingCount bumps the counter of comment ratings received
func (r *MongoStoryRepository) IncrementRatingCount(ctx context.Context, id string) error {
	_, err := r.incrementAndReturn(ctx, id, "rating_count")
	return err
}

// GetOverviewStats aggregates counters over published stories
func (r *MongoStoryRepository) GetOverviewStats(ctx context.Context) (*models.StoryOverviewStats, error) {
	published := bson.M{"is_published": true}

	total, err := r.collection.CountDocuments(ctx, published)
	if err != nil {
		return nil, err
	}

	stats := &models.StoryOverviewStats{TotalStories: total}

	sums := []bson.M{
		{"$match": published},
		{"$group": bson.M{
			"_id":   nil,
			"views": bson.M{"$sum": "$views"},
			"likes": bson.M{"$sum": "$likes"},
		}},
	}
	cursor, err := r.collection.Aggregate(ctx, sums)
	if err != nil {
		return nil, err
	}
	var totals []struct {
		Views int64 `bson:"views"`
		Likes int64 `bson:"likes"`
	}
	if err = cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	if len(totals) > 0 {
		stats.TotalViews = totals[0].Views
		stats.TotalLikes = totals[0].Likes
	}

	stats.ByHeroType, err = r.groupBy(ctx, "$hero_type", true)
	if err != nil {
		return nil, err
	}
	stats.ByEra, err = r.groupBy(ctx, "$era", false)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *MongoStoryRepository) groupBy(ctx context.Context, field string, withViews bool) ([]models.GroupCount, error) {
	group := bson.M{"_id": field, "count": bson.M{"$sum": 1}}
	if withViews {
		group["totalViews"] = bson.M{"$sum": "$views"}
	}
	pipeline := []bson.M{
		{"$match": bson.M{"is_published": true}},
		{"$group": group},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	groups := []models.GroupCount{}
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
