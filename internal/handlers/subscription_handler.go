package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/glorious-tales/backend/internal/mailer"
	"github.com/glorious-tales/backend/internal/models"
	"github.com/glorious-tales/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// SubscriptionHandler handles newsletter subscription requests
type SubscriptionHandler struct {
	subscriptionRepository repositories.SubscriptionRepository
	mailer                 mailer.Mailer
	frontendURL            string
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subRepo repositories.SubscriptionRepository, m mailer.Mailer, frontendURL string) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionRepository: subRepo,
		mailer:                 m,
		frontendURL:            frontendURL,
	}
}

// RegisterSubscriptionRoutes registers subscription-related routes. auth
// guards the subscriber listing.
func (h *SubscriptionHandler) RegisterSubscriptionRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/subscriptions/subscribe", h.Subscribe)
	g.POST("/subscriptions/unsubscribe", h.Unsubscribe)
	g.GET("/subscriptions/unsubscribe", h.UnsubscribeByLink)
	g.GET("/subscriptions/status/:email", h.GetStatus)
	g.GET("/subscriptions/all", h.GetAllSubscribers, auth)
	g.GET("/subscriptions/stats", h.GetStats)
}

func (h *SubscriptionHandler) sendConfirmation(email string) {
	subject, body, err := mailer.RenderSubscriptionConfirmation(email, h.frontendURL)
	if err != nil {
		log.Printf("Error rendering subscription confirmation: %v", err)
		return
	}
	if err := h.mailer.Send(email, subject, body); err != nil {
		log.Printf("Subscription confirmation send failed for %s: %v", email, err)
	}
}

func (h *SubscriptionHandler) sendUnsubscribeConfirmation(email string) {
	subject, body, err := mailer.RenderUnsubscribeConfirmation(h.frontendURL)
	if err != nil {
		log.Printf("Error rendering unsubscribe confirmation: %v", err)
		return
	}
	if err := h.mailer.Send(email, subject, body); err != nil {
		log.Printf("Unsubscribe confirmation send failed for %s: %v", email, err)
	}
}

// Subscribe adds an email to the newsletter. An inactive subscription is
// reactivated in place rather than duplicated.
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	var req models.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.subscriptionRepository.GetSubscriptionByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Subscription error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to subscribe. Please try again.")
	}

	if existing != nil {
		if existing.IsActive {
			return echo.NewHTTPError(http.StatusBadRequest, "Email is already subscribed")
		}
		// Reactivate in place
		existing.IsActive = true
		existing.UnsubscribedAt = nil
		if err := h.subscriptionRepository.UpdateSubscription(existing); err != nil {
			log.Printf("Subscription error: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to subscribe. Please try again.")
		}
		h.sendConfirmation(email)
		return c.JSON(http.StatusOK, echo.Map{
			"message":      "Successfully resubscribed!",
			"subscription": existing,
		})
	}

	subscription := &models.Subscription{Email: email, IsActive: true}
	if err := h.subscriptionRepository.CreateSubscription(subscription); err != nil {
		log.Printf("Subscription error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to subscribe. Please try again.")
	}
	h.sendConfirmation(email)

	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Successfully subscribed to newsletter!",
		"subscription": subscription,
	})
}

func (h *SubscriptionHandler) unsubscribe(c echo.Context, email string) error {
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	subscription, err := h.subscriptionRepository.GetSubscriptionByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Email not found in subscriptions")
		}
		log.Printf("Unsubscribe error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unsubscribe. Please try again.")
	}

	if !subscription.IsActive {
		return echo.NewHTTPError(http.StatusBadRequest, "Email is already unsubscribed")
	}

	now := time.Now()
	subscription.IsActive = false
	subscription.UnsubscribedAt = &now
	if err := h.subscriptionRepository.UpdateSubscription(subscription); err != nil {
		log.Printf("Unsubscribe error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unsubscribe. Please try again.")
	}
	h.sendUnsubscribeConfirmation(email)

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Successfully unsubscribed from newsletter",
		"subscription": subscription,
	})
}

// Unsubscribe deactivates a subscription via POST body
func (h *SubscriptionHandler) Unsubscribe(c echo.Context) error {
	var req models.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return h.unsubscribe(c, req.Email)
}

// UnsubscribeByLink deactivates a subscription via the emailed link
func (h *SubscriptionHandler) UnsubscribeByLink(c echo.Context) error {
	return h.unsubscribe(c, c.QueryParam("email"))
}

// GetStatus reports whether an email is subscribed
func (h *SubscriptionHandler) GetStatus(c echo.Context) error {
	raw := c.Param("email")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	email := strings.ToLower(strings.TrimSpace(raw))

	subscription, err := h.subscriptionRepository.GetSubscriptionByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"subscribed": false})
		}
		log.Printf("Status check error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check subscription status")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"subscribed":   subscription.IsActive,
		"subscription": subscription,
	})
}

// GetAllSubscribers lists active subscribers, newest first
func (h *SubscriptionHandler) GetAllSubscribers(c echo.Context) error {
	subscriptions, err := h.subscriptionRepository.GetActiveSubscriptions()
	if err != nil {
		log.Printf("Get subscribers error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get subscribers")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":         len(subscriptions),
		"subscriptions": subscriptions,
	})
}

// GetStats summarizes the subscriber base
func (h *SubscriptionHandler) GetStats(c echo.Context) error {
	active, err := h.subscriptionRepository.CountByActive(true)
	if err != nil {
		log.Printf("Stats error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get subscription statistics")
	}
	inactive, err := h.subscriptionRepository.CountByActive(false)
	if err != nil {
		log.Printf("Stats error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get subscription statistics")
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	newThisMonth, err := h.subscriptionRepository.CountActiveSince(monthStart)
	if err != nil {
		log.Printf("Stats error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get subscription statistics")
	}

	return c.JSON(http.StatusOK, models.SubscriptionStats{
		TotalSubscribers:  active,
		TotalUnsubscribed: inactive,
		NewThisMonth:      newThisMonth,
		Total:             active + inactive,
	})
}
