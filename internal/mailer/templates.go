package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// Email templates, rendered server-side and sent as HTML bodies.

const newStoryTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #ff6b35, #f7931e); padding: 30px; text-align: center;">
    <h1 style="color: white; margin: 0;">Glorious Tales</h1>
    <p style="color: white; margin: 10px 0 0 0;">Stories of India's Greatest Heroes</p>
  </div>
  <div style="background: white; padding: 30px;">
    <h2 style="color: #333;">New Story Published!</h2>
    <p style="color: #666; line-height: 1.6;">
      We're excited to share a new inspiring story with you! A new legend has been added to our collection.
    </p>
    <div style="background: #f8f9fa; padding: 20px; margin: 25px 0;">
      <h3 style="color: #333; margin: 0 0 10px 0;">{{.Title}}</h3>
      <p style="color: #666; margin: 0;">Discover the incredible journey of this remarkable hero.</p>
    </div>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.StoryURL}}" style="background: #ff6b35; color: white; padding: 15px 30px; text-decoration: none;">Read the Story Now</a>
    </div>
    <p style="color: #999; font-size: 14px; text-align: center;">
      You're receiving this email because you subscribed to Glorious Tales notifications.<br>
      <a href="{{.FrontendURL}}/unsubscribe" style="color: #ff6b35;">Unsubscribe</a> |
      <a href="{{.FrontendURL}}" style="color: #ff6b35;">Visit Website</a>
    </p>
  </div>
</div>`

const subscriptionConfirmationTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #ff6b35, #f7931e); padding: 30px; text-align: center;">
    <h1 style="color: white; margin: 0;">Glorious Tales</h1>
    <p style="color: white; margin: 10px 0 0 0;">Stories of India's Greatest Heroes</p>
  </div>
  <div style="background: white; padding: 30px;">
    <h2 style="color: #333;">Welcome to Glorious Tales!</h2>
    <p style="color: #666; line-height: 1.6;">
      Thank you for subscribing to our newsletter! You'll now receive notifications whenever we publish new stories about India's greatest heroes.
    </p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.FrontendURL}}" style="background: #ff6b35; color: white; padding: 15px 30px; text-decoration: none;">Explore Stories</a>
    </div>
    <p style="color: #999; font-size: 14px; text-align: center;">
      You can unsubscribe at any time.<br>
      <a href="{{.FrontendURL}}/unsubscribe?email={{.Email}}" style="color: #ff6b35;">Unsubscribe</a>
    </p>
  </div>
</div>`

const unsubscribeConfirmationTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #ff6b35, #f7931e); padding: 30px; text-align: center;">
    <h1 style="color: white; margin: 0;">Glorious Tales</h1>
  </div>
  <div style="background: white; padding: 30px;">
    <h2 style="color: #333;">You've been unsubscribed</h2>
    <p style="color: #666; line-height: 1.6;">
      We're sorry to see you go! You've been successfully unsubscribed from our newsletter and won't receive any more email notifications.
    </p>
    <p style="color: #666; line-height: 1.6;">
      If you change your mind, you can always subscribe again from our website.
    </p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.FrontendURL}}" style="background: #ff6b35; color: white; padding: 15px 30px; text-decoration: none;">Visit Website</a>
    </div>
  </div>
</div>`

var (
	newStoryTmpl     = template.Must(template.New("newStoryNotification").Parse(newStoryTemplate))
	subscriptionTmpl = template.Must(template.New("subscriptionConfirmation").Parse(subscriptionConfirmationTemplate))
	unsubscribeTmpl  = template.Must(template.New("unsubscribeConfirmation").Parse(unsubscribeConfirmationTemplate))
)

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// RenderNewStoryNotification renders the message announcing a freshly
// published story
func RenderNewStoryNotification(storyTitle, storyURL, frontendURL string) (subject, body string, err error) {
	body, err = render(newStoryTmpl, map[string]string{
		"Title":       storyTitle,
		"StoryURL":    storyURL,
		"FrontendURL": frontendURL,
	})
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("New Story Published: %s", storyTitle), body, nil
}

// RenderSubscriptionConfirmation renders the welcome message
func RenderSubscriptionConfirmation(email, frontendURL string) (subject, body string, err error) {
	body, err = render(subscriptionTmpl, map[string]string{
		"Email":       email,
		"FrontendURL": frontendURL,
	})
	if err != nil {
		return "", "", err
	}
	return "Welcome to Glorious Tales!", body, nil
}

// RenderUnsubscribeConfirmation renders the goodbye message
func RenderUnsubscribeConfirmation(frontendURL string) (subject, body string, err error) {
	body, err = render(unsubscribeTmpl, map[string]string{
		"FrontendURL": frontendURL,
	})
	if err != nil {
		return "", "", err
	}
	return "You've been unsubscribed from Glorious Tales", body, nil
}
