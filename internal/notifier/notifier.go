package notifier

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/glorious-tales/backend/internal/mailer"
	"github.com/glorious-tales/backend/internal/models"
	"github.com/glorious-tales/backend/internal/repositories"
)

// SendResult records the outcome of one notification send
type SendResult struct {
	Email   string `json:"email"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Notifier receives publication transitions and fans them out to
// subscribers. The caller fires it exactly when a story's published flag
// flips from false to true.
type Notifier interface {
	StoryPublished(ctx context.Context, story *models.Story) []SendResult
}

// EmailNotifier notifies active subscribers by email. Sends run
// sequentially with a fixed pause between them to stay under the mail
// provider's rate limits; a failed send never stops the loop.
type EmailNotifier struct {
	subscriptions repositories.SubscriptionRepository
	mailer        mailer.Mailer
	frontendURL   string
	delay         time.Duration
}

// NewEmailNotifier creates an EmailNotifier with the standard inter-send
// delay of 100ms
func NewEmailNotifier(subs repositories.SubscriptionRepository, m mailer.Mailer, frontendURL string) *EmailNotifier {
	return &EmailNotifier{
		subscriptions: subs,
		mailer:        m,
		frontendURL:   frontendURL,
		delay:         100 * time.Millisecond,
	}
}

// SetDelay overrides the inter-send delay
func (n *EmailNotifier) SetDelay(d time.Duration) {
	n.delay = d
}

// StoryPublished sends the new-story notification to every active
// subscriber, one at a time, and returns the per-recipient outcomes.
// Delivery state is not persisted anywhere.
func (n *EmailNotifier) StoryPublished(ctx context.Context, story *models.Story) []SendResult {
	subscribers, err := n.subscriptions.GetActiveSubscriptions()
	if err != nil {
		log.Printf("Failed to load subscribers for story %q: %v", story.Title, err)
		return nil
	}

	storyURL := fmt.Sprintf("%s/stories/%s", n.frontendURL, story.ID.Hex())
	subject, body, err := mailer.RenderNewStoryNotification(story.Title, storyURL, n.frontendURL)
	if err != nil {
		log.Printf("Failed to render notification for story %q: %v", story.Title, err)
		return nil
	}

	results := make([]SendResult, 0, len(subscribers))
	for _, sub := range subscribers {
		result := SendResult{Email: sub.Email, Success: true}
		if err := n.mailer.Send(sub.Email, subject, body); err != nil {
			result.Success = false
			result.Error = err.Error()
			log.Printf("Notification send failed for %s: %v", sub.Email, err)
		}
		results = append(results, result)

		// Throttle between sends to avoid mail provider rate limits
		time.Sleep(n.delay)
	}

	log.Printf("Story %q: notified %d subscribers", story.Title, len(results))
	return results
}
