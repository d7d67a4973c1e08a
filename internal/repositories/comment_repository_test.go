package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestVisible_GatesOnBothModerationFlags(t *testing.T) {
	storyID := primitive.NewObjectID()

	query := visible(storyID)

	assert.Equal(t, bson.M{
		"story_id":    storyID,
		"is_approved": true,
		"is_spam":     false,
	}, query)
}

func TestCommentSort(t *testing.T) {
	tests := []struct {
		mode string
		want bson.D
	}{
		{"newest", bson.D{{Key: "created_at", Value: -1}}},
		{"oldest", bson.D{{Key: "created_at", Value: 1}}},
		{"rating", bson.D{{Key: "rating", Value: -1}, {Key: "created_at", Value: -1}}},
		{"likes", bson.D{{Key: "likes", Value: -1}, {Key: "created_at", Value: -1}}},
		{"bogus", bson.D{{Key: "created_at", Value: -1}}},
		{"", bson.D{{Key: "created_at", Value: -1}}},
	}

	for _, tt := range tests {
		t.Run("mode "+tt.mode, func(t *testing.T) {
			assert.Equal(t, tt.want, commentSort(tt.mode))
		})
	}
}

func TestCommentSort_RatingAndLikesTieBreakNewestFirst(t *testing.T) {
	for _, mode := range []string{"rating", "likes"} {
		sort := commentSort(mode)
		assert.Len(t, sort, 2)
		assert.Equal(t, bson.E{Key: "created_at", Value: -1}, sort[1])
	}
}
