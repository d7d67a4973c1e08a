package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/glorious-tales/backend/internal/models"
	"github.com/glorious-tales/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// SuggestionHandler handles reader story suggestions
type SuggestionHandler struct {
	suggestionRepository repositories.SuggestionRepository
}

// NewSuggestionHandler creates a new SuggestionHandler
func NewSuggestionHandler(suggestionRepo repositories.SuggestionRepository) *SuggestionHandler {
	return &SuggestionHandler{suggestionRepository: suggestionRepo}
}

// RegisterSuggestionRoutes registers suggestion-related routes. auth
// guards the review endpoints.
func (h *SuggestionHandler) RegisterSuggestionRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/suggestions", h.SubmitSuggestion)
	g.GET("/suggestions", h.GetSuggestions, auth)
	g.GET("/suggestions/:id", h.GetSuggestion, auth)
	g.PATCH("/suggestions/:id/status", h.ReviewSuggestion, auth)
}

// SubmitSuggestion accepts a new story suggestion in pending state
func (h *SuggestionHandler) SubmitSuggestion(c echo.Context) error {
	var req models.CreateSuggestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if len(req.Description) < 50 {
		return echo.NewHTTPError(http.StatusBadRequest, "Description must be at least 50 characters long")
	}

	suggestion := &models.Suggestion{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		LegendName:   strings.TrimSpace(req.LegendName),
		Description:  strings.TrimSpace(req.Description),
		Era:          strings.TrimSpace(req.Era),
		Region:       strings.TrimSpace(req.Region),
		HeroType:     req.HeroType,
		WhyImportant: strings.TrimSpace(req.WhyImportant),
		Sources:      strings.TrimSpace(req.Sources),
	}

	if err := h.suggestionRepository.CreateSuggestion(c.Request().Context(), suggestion); err != nil {
		log.Printf("Suggestion submission error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to submit suggestion. Please try again.")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Suggestion submitted successfully! We will review it and get back to you.",
		"suggestion": suggestion,
	})
}

// GetSuggestions lists suggestions for review, newest first
func (h *SuggestionHandler) GetSuggestions(c echo.Context) error {
	filter := repositories.SuggestionFilter{
		Status:   c.QueryParam("status"),
		HeroType: c.QueryParam("heroType"),
		Era:      c.QueryParam("era"),
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	skip := int64((page - 1) * limit)

	suggestions, total, err := h.suggestionRepository.FindSuggestions(c.Request().Context(), filter, skip, int64(limit))
	if err != nil {
		log.Printf("Get suggestions error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get suggestions")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"suggestions": suggestions,
		"pagination":  models.NewPagination(page, limit, len(suggestions), total),
		"total":       total,
	})
}

// GetSuggestion fetches one suggestion
func (h *SuggestionHandler) GetSuggestion(c echo.Context) error {
	suggestion, err := h.suggestionRepository.GetSuggestionByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Suggestion not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"suggestion": suggestion})
}

// ReviewSuggestion updates a suggestion's review status
func (h *SuggestionHandler) ReviewSuggestion(c echo.Context) error {
	var req models.ReviewSuggestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	adminID, _ := c.Get("adminID").(uint)

	ctx := c.Request().Context()
	if _, err := h.suggestionRepository.GetSuggestionByID(ctx, c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Suggestion not found")
	}

	suggestion, err := h.suggestionRepository.ReviewSuggestion(ctx, c.Param("id"), req.Status, req.AdminNotes, adminID)
	if err != nil {
		log.Printf("Update suggestion error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update suggestion")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Suggestion status updated successfully",
		"suggestion": suggestion,
	})
}
