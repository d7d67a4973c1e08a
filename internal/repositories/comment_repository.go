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

// AdminCommentFilter narrows the moderation queue listing
type AdminCommentFilter struct {
	StoryID  string
	Approved *bool
	Spam     *bool
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	FindTopLevel(ctx context.Context, storyID string, sort string, skip, limit int64) ([]models.Comment, int64, error)
	FindVisibleReplies(ctx context.Context, parentID primitive.ObjectID) ([]models.Comment, error)
	FindAll(ctx context.Context, filter AdminCommentFilter, skip, limit int64) ([]models.Comment, int64, error)
	UpdateModeration(ctx context.Context, id string, isApproved, isSpam *bool) (*models.Comment, error)
	PushReply(ctx context.Context, parentID, replyID primitive.ObjectID) error
	PullReply(ctx context.Context, parentID, replyID primitive.ObjectID) error
	DeleteReplies(ctx context.Context, parentID primitive.ObjectID) (int64, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
	IncrementLikes(ctx context.Context, id string) (*models.Comment, error)
	CountVisible(ctx context.Context, storyID string) (int64, error)
	CountVisibleReplies(ctx context.Context, storyID string) (int64, error)
	VisibleRatings(ctx context.Context, storyID string) ([]int, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// CreateComment inserts a new comment. Moderation flags are forced to the
// unreviewed state regardless of what the caller set.
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.IsApproved = false
	comment.IsSpam = false
	if comment.Replies == nil {
		comment.Replies = []primitive.ObjectID{}
	}
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID format: %w", err)
	}
	var comment models.Comment
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

// visible matches approved, non-spam comments of one story
func visible(storyID primitive.ObjectID) bson.M {
	return bson.M{
		"story_id":    storyID,
		"is_approved": true,
		"is_spam":     false,
	}
}

func commentSort(mode string) bson.D {
	switch mode {
	case "oldest":
		return bson.D{{Key: "created_at", Value: 1}}
	case "rating":
		return bson.D{{Key: "rating", Value: -1}, {Key: "created_at", Value: -1}}
	case "likes":
		return bson.D{{Key: "likes", Value: -1}, {Key: "created_at", Value: -1}}
	default: // newest
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

// FindTopLevel retrieves the visible top-level comments of a story with
// pagination, returning the page and the total top-level count
func (r *MongoCommentRepository) FindTopLevel(ctx context.Context, storyID string, sort string, skip, limit int64) ([]models.Comment, int64, error) {
	storyObjID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid story ID format: %w", err)
	}
	query := visible(storyObjID)
	query["parent_comment"] = nil

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(commentSort(sort))
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// FindVisibleReplies retrieves the approved, non-spam replies of a
// top-level comment, oldest first
func (r *MongoCommentRepository) FindVisibleReplies(ctx context.Context, parentID primitive.ObjectID) ([]models.Comment, error) {
	query := bson.M{
		"parent_comment": parentID,
		"is_approved":    true,
		"is_spam":        false,
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	replies := []models.Comment{}
	if err = cursor.All(ctx, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

// FindAll retrieves comments for the moderation queue, newest first
func (r *MongoCommentRepository) FindAll(ctx context.Context, filter AdminCommentFilter, skip, limit int64) ([]models.Comment, int64, error) {
	query := bson.M{}
	if filter.StoryID != "" {
		storyObjID, err := primitive.ObjectIDFromHex(filter.StoryID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid story ID format: %w", err)
		}
		query["story_id"] = storyObjID
	}
	if filter.Approved != nil {
		query["is_approved"] = *filter.Approved
	}
	if filter.Spam != nil {
		query["is_spam"] = *filter.Spam
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

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// UpdateModeration applies the supplied moderation flags, leaving the
// omitted ones untouched, and returns the updated comment
func (r *MongoCommentRepository) UpdateModeration(ctx context.Context, id string, isApproved, isSpam *bool) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID format: %w", err)
	}
	set := bson.M{"updated_at": time.Now()}
	if isApproved != nil {
		set["is_approved"] = *isApproved
	}
	if isSpam != nil {
		set["is_spam"] = *isSpam
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var comment models.Comment
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

// PushReply appends a reply id to the parent's replies array
func (r *MongoCommentRepository) PushReply(ctx context.Context, parentID, replyID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": parentID}, bson.M{"$push": bson.M{"replies": replyID}})
	return err
}

// PullReply removes a reply id from the parent's replies array
func (r *MongoCommentRepository) PullReply(ctx context.Context, parentID, replyID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": parentID}, bson.M{"$pull": bson.M{"replies": replyID}})
	return err
}

// DeleteReplies deletes all direct replies of a comment
func (r *MongoCommentRepository) DeleteReplies(ctx context.Context, parentID primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"parent_comment": parentID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteComment deletes a single comment by id
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// IncrementLikes bumps the like counter and returns the updated comment
func (r *MongoCommentRepository) IncrementLikes(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID format: %w", err)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var comment models.Comment
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"likes": 1}}, opts).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("comment not found")
		}
		return nil, err
	}
	return &comment, nil
}

// CountVisible counts all visible comments of a story, replies included
func (r *MongoCommentRepository) CountVisible(ctx context.Context, storyID string) (int64, error) {
	storyObjID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return 0, fmt.Errorf("invalid story ID format: %w", err)
	}
	return r.collection.CountDocuments(ctx, visible(storyObjID))
}

// CountVisibleReplies counts the visible replies of a story
func (r *MongoCommentRepository) CountVisibleReplies(ctx context.Context, storyID string) (int64, error) {
	storyObjID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return 0, fmt.Errorf("invalid story ID format: %w", err)
	}
	query := visible(storyObjID)
	query["parent_comment"] = bson.M{"$ne": nil}
	return r.collection.CountDocuments(ctx, query)
}

// VisibleRatings returns the ratings of visible rated comments of a story
func (r *MongoCommentRepository) VisibleRatings(ctx context.Context, storyID string) ([]int, error) {
	storyObjID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return nil, fmt.Errorf("invalid story ID format: %w", err)
	}
	query := visible(storyObjID)
	query["rating"] = bson.M{"$ne": nil}

	findOptions := options.Find().SetProjection(bson.M{"rating": 1})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Rating *int `bson:"rating"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ratings := make([]int, 0, len(docs))
	for _, d := range docs {
		if d.Rating != nil {
			ratings = append(ratings, *d.Rating)
		}
	}
	return ratings, nil
}
