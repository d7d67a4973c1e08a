package handlers

import (
	"context"
	"time"

	"github.com/glorious-tales/backend/internal/models"
	"github.com/glorious-tales/backend/internal/notifier"
	"github.com/glorious-tales/backend/internal/repositories"
	"github.com/glorious-tales/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

// asAdmin stands in for the JWT middleware in handler tests
func asAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set("admin", &models.Admin{ID: 1, Username: "editor", Role: models.RoleAdmin, IsActive: true})
		c.Set("adminID", uint(1))
		return next(c)
	}
}

// MockStoryRepository mocks the StoryRepository interface
type MockStoryRepository struct {
	mock.Mock
}

func (m *MockStoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	args := m.Called(ctx, story)
	return args.Error(0)
}

func (m *MockStoryRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockStoryRepository) FindStories(ctx context.Context, filter repositories.StoryFilter, sort string, skip, limit int64) ([]models.Story, int64, error) {
	args := m.Called(ctx, filter, sort, skip, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Story), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoryRepository) GetFeaturedStories(ctx context.Context, limit int64) ([]models.Story, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Story), args.Error(1)
}

func (m *MockStoryRepository) UpdateStory(ctx context.Context, id string, req *models.UpdateStoryRequest) (*models.Story, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockStoryRepository) DeleteStory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStoryRepository) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStoryRepository) IncrementLikes(ctx context.Context, id string) (*models.Story, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockStoryRepository) IncrementShares(ctx context.Context, id string) (*models.Story, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockStoryRepository) IncrementRatingCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStoryRepository) GetOverviewStats(ctx context.Context) (*models.StoryOverviewStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoryOverviewStats), args.Error(1)
}

func (m *MockStoryRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	if args.Error(0) == nil && comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindTopLevel(ctx context.Context, storyID string, sort string, skip, limit int64) ([]models.Comment, int64, error) {
	args := m.Called(ctx, storyID, sort, skip, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) FindVisibleReplies(ctx context.Context, parentID primitive.ObjectID) ([]models.Comment, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindAll(ctx context.Context, filter repositories.AdminCommentFilter, skip, limit int64) ([]models.Comment, int64, error) {
	args := m.Called(ctx, filter, skip, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) UpdateModeration(ctx context.Context, id string, isApproved, isSpam *bool) (*models.Comment, error) {
	args := m.Called(ctx, id, isApproved, isSpam)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) PushReply(ctx context.Context, parentID, replyID primitive.ObjectID) error {
	args := m.Called(ctx, parentID, replyID)
	return args.Error(0)
}

func (m *MockCommentRepository) PullReply(ctx context.Context, parentID, replyID primitive.ObjectID) error {
	args := m.Called(ctx, parentID, replyID)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteReplies(ctx context.Context, parentID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) IncrementLikes(ctx context.Context, id string) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountVisible(ctx context.Context, storyID string) (int64, error) {
	args := m.Called(ctx, storyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) CountVisibleReplies(ctx context.Context, storyID string) (int64, error) {
	args := m.Called(ctx, storyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) VisibleRatings(ctx context.Context, storyID string) ([]int, error) {
	args := m.Called(ctx, storyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// MockAdminRepository mocks the AdminRepository interface
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) CreateAdmin(admin *models.Admin) error {
	return m.Called(admin).Error(0)
}

func (m *MockAdminRepository) GetAdminByID(id uint) (*models.Admin, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) GetAdminByUsername(username string) (*models.Admin, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) GetAdminByUsernameOrEmail(username, email string) (*models.Admin, error) {
	args := m.Called(username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) UpdateAdmin(admin *models.Admin) error {
	return m.Called(admin).Error(0)
}

// MockSubscriptionRepository mocks the SubscriptionRepository interface
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) CreateSubscription(sub *models.Subscription) error {
	args := m.Called(sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetSubscriptionByEmail(email string) (*models.Subscription, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateSubscription(sub *models.Subscription) error {
	args := m.Called(sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetActiveSubscriptions() ([]models.Subscription, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) CountByActive(active bool) (int64, error) {
	args := m.Called(active)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepository) CountActiveSince(t time.Time) (int64, error) {
	args := m.Called(t)
	return args.Get(0).(int64), args.Error(1)
}

// MockMailer mocks the Mailer interface
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}

// MockNotifier records publication notifications
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) StoryPublished(ctx context.Context, story *models.Story) []notifier.SendResult {
	args := m.Called(ctx, story)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]notifier.SendResult)
}
