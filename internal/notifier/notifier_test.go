package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glorious-tales/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) CreateSubscription(sub *models.Subscription) error {
	return m.Called(sub).Error(0)
}

func (m *mockSubscriptionRepo) GetSubscriptionByEmail(email string) (*models.Subscription, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) UpdateSubscription(sub *models.Subscription) error {
	return m.Called(sub).Error(0)
}

func (m *mockSubscriptionRepo) GetActiveSubscriptions() ([]models.Subscription, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) CountByActive(active bool) (int64, error) {
	args := m.Called(active)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubscriptionRepo) CountActiveSince(t time.Time) (int64, error) {
	args := m.Called(t)
	return args.Get(0).(int64), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(to, subject, htmlBody string) error {
	return m.Called(to, subject, htmlBody).Error(0)
}

func testStory() *models.Story {
	return &models.Story{
		ID:          primitive.NewObjectID(),
		Title:       "Rani Lakshmibai",
		IsPublished: true,
	}
}

func TestStoryPublished_NotifiesEverySubscriber(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	m := new(mockMailer)
	n := NewEmailNotifier(subs, m, "http://localhost:5173")
	n.SetDelay(0)

	story := testStory()
	subs.On("GetActiveSubscriptions").Return([]models.Subscription{
		{Email: "a@example.com", IsActive: true},
		{Email: "b@example.com", IsActive: true},
	}, nil)
	m.On("Send", "a@example.com", "New Story Published: Rani Lakshmibai", mock.AnythingOfType("string")).Return(nil)
	m.On("Send", "b@example.com", "New Story Published: Rani Lakshmibai", mock.AnythingOfType("string")).Return(nil)

	results := n.StoryPublished(context.Background(), story)

	assert.Len(t, results, 2)
	assert.Equal(t, SendResult{Email: "a@example.com", Success: true}, results[0])
	assert.Equal(t, SendResult{Email: "b@example.com", Success: true}, results[1])
	subs.AssertExpectations(t)
	m.AssertExpectations(t)
}

func TestStoryPublished_BodyContainsStoryLink(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	m := new(mockMailer)
	n := NewEmailNotifier(subs, m, "http://localhost:5173")
	n.SetDelay(0)

	story := testStory()
	subs.On("GetActiveSubscriptions").Return([]models.Subscription{{Email: "a@example.com"}}, nil)

	var body string
	m.On("Send", "a@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { body = args.String(2) }).
		Return(nil)

	n.StoryPublished(context.Background(), story)

	assert.Contains(t, body, "Rani Lakshmibai")
	assert.Contains(t, body, "http://localhost:5173/stories/"+story.ID.Hex())
}

func TestStoryPublished_FailedSendDoesNotStopTheLoop(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	m := new(mockMailer)
	n := NewEmailNotifier(subs, m, "http://localhost:5173")
	n.SetDelay(0)

	subs.On("GetActiveSubscriptions").Return([]models.Subscription{
		{Email: "a@example.com"},
		{Email: "b@example.com"},
		{Email: "c@example.com"},
	}, nil)
	m.On("Send", "a@example.com", mock.Anything, mock.Anything).Return(nil)
	m.On("Send", "b@example.com", mock.Anything, mock.Anything).Return(errors.New("smtp: connection reset"))
	m.On("Send", "c@example.com", mock.Anything, mock.Anything).Return(nil)

	results := n.StoryPublished(context.Background(), testStory())

	assert.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, "smtp: connection reset", results[1].Error)
	assert.True(t, results[2].Success)
	m.AssertExpectations(t)
}

func TestStoryPublished_SubscriberLoadFailure(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	m := new(mockMailer)
	n := NewEmailNotifier(subs, m, "http://localhost:5173")
	n.SetDelay(0)

	subs.On("GetActiveSubscriptions").Return(nil, errors.New("connection refused"))

	results := n.StoryPublished(context.Background(), testStory())

	assert.Nil(t, results)
	m.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestStoryPublished_NoSubscribers(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	m := new(mockMailer)
	n := NewEmailNotifier(subs, m, "http://localhost:5173")
	n.SetDelay(0)

	subs.On("GetActiveSubscriptions").Return([]models.Subscription{}, nil)

	results := n.StoryPublished(context.Background(), testStory())

	assert.Empty(t, results)
	m.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestStoryPublished_ThrottlesBetweenSends(t *testing.T) {
	subs := new(mockSubscriptionRepo)
	m := new(mockMailer)
	n := NewEmailNotifier(subs, m, "http://localhost:5173")
	n.SetDelay(20 * time.Millisecond)

	subs.On("GetActiveSubscriptions").Return([]models.Subscription{
		{Email: "a@example.com"},
		{Email: "b@example.com"},
	}, nil)
	m.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	start := time.Now()
	n.StoryPublished(context.Background(), testStory())
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond)
}
