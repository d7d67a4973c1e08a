package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderNewStoryNotification(t *testing.T) {
	subject, body, err := RenderNewStoryNotification(
		"Rani Lakshmibai",
		"http://localhost:5173/stories/abc123",
		"http://localhost:5173",
	)

	assert.NoError(t, err)
	assert.Equal(t, "New Story Published: Rani Lakshmibai", subject)
	assert.Contains(t, body, "Rani Lakshmibai")
	assert.Contains(t, body, `href="http://localhost:5173/stories/abc123"`)
	assert.Contains(t, body, `href="http://localhost:5173/unsubscribe"`)
}

func TestRenderSubscriptionConfirmation(t *testing.T) {
	subject, body, err := RenderSubscriptionConfirmation("reader@example.com", "http://localhost:5173")

	assert.NoError(t, err)
	assert.Equal(t, "Welcome to Glorious Tales!", subject)
	assert.Contains(t, body, "unsubscribe?email=reader@example.com")
}

func TestRenderUnsubscribeConfirmation(t *testing.T) {
	subject, body, err := RenderUnsubscribeConfirmation("http://localhost:5173")

	assert.NoError(t, err)
	assert.Equal(t, "You've been unsubscribed from Glorious Tales", subject)
	assert.Contains(t, body, "unsubscribed")
}
