package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a reader comment on a story, stored in MongoDB.
// A comment is publicly visible only when IsApproved && !IsSpam.
// Threading is two levels deep: a top-level comment owns the ids of its
// direct replies; replies carry ParentComment back to the top level.
type Comment struct {
	ID            primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	StoryID       primitive.ObjectID   `json:"storyId" bson:"story_id"`
	Name          string               `json:"name" bson:"name"`
	Email         string               `json:"email" bson:"email"`
	Content       string               `json:"content" bson:"content"`
	Rating        *int                 `json:"rating" bson:"rating"`
	IsApproved    bool                 `json:"isApproved" bson:"is_approved"`
	IsSpam        bool                 `json:"isSpam" bson:"is_spam"`
	ParentComment *primitive.ObjectID  `json:"parentComment" bson:"parent_comment"`
	Replies       []primitive.ObjectID `json:"-" bson:"replies"`
	Likes         int                  `json:"likes" bson:"likes"`
	UserIP        string               `json:"-" bson:"user_ip,omitempty"`
	UserAgent     string               `json:"-" bson:"user_agent,omitempty"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updated_at"`
}

// CommentThread is a top-level comment with its visible replies populated
type CommentThread struct {
	Comment
	Replies []Comment `json:"replies"`
}

// CreateCommentRequest defines the request body for submitting a comment.
// Validation is explicit in the handler so each failure names its field.
type CreateCommentRequest struct {
	StoryID       string `json:"storyId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Content       string `json:"content"`
	Rating        *int   `json:"rating"`
	ParentComment string `json:"parentComment"`
}

// ModerateCommentRequest defines the request body for the moderation
// endpoint. Each flag is independently optional.
type ModerateCommentRequest struct {
	IsApproved *bool `json:"isApproved"`
	IsSpam     *bool `json:"isSpam"`
}

// CommentStats summarizes the visible comments of one story
type CommentStats struct {
	TotalComments      int64          `json:"totalComments"`
	TotalReplies       int64          `json:"totalReplies"`
	AverageRating      float64        `json:"averageRating"`
	TotalRatings       int            `json:"totalRatings"`
	RatingDistribution []RatingBucket `json:"ratingDistribution"`
}

// RatingBucket counts the comments that gave one rating value
type RatingBucket struct {
	Rating int   `json:"_id"`
	Count  int64 `json:"count"`
}

// BuildRatingStats computes the average and per-value distribution of the
// given ratings. Stored ratings are always 1..5, so buckets cover exactly
// that range, ascending, with empty buckets omitted. The average is 0 when
// no ratings exist.
func BuildRatingStats(ratings []int) (avg float64, dist []RatingBucket) {
	dist = make([]RatingBucket, 0, 5)
	if len(ratings) == 0 {
		return 0, dist
	}
	var sum int
	counts := [6]int64{}
	for _, r := range ratings {
		sum += r
		if r >= 1 && r <= 5 {
			counts[r]++
		}
	}
	avg = math.Round(float64(sum)/float64(len(ratings))*100) / 100
	for v := 1; v <= 5; v++ {
		if counts[v] > 0 {
			dist = append(dist, RatingBucket{Rating: v, Count: counts[v]})
		}
	}
	return avg, dist
}
