package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/glorious-tales/backend/internal/models"
	"github.com/glorious-tales/backend/internal/notifier"
	"github.com/glorious-tales/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles HTTP requests related to stories
type StoryHandler struct {
	storyRepository repositories.StoryRepository
	notifier        notifier.Notifier
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyRepo repositories.StoryRepository, n notifier.Notifier) *StoryHandler {
	return &StoryHandler{
		storyRepository: storyRepo,
		notifier:        n,
	}
}

// RegisterStoryRoutes registers story-related routes. auth guards the
// editorial endpoints.
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/stories", h.GetStories)
	g.GET("/stories/featured/list", h.GetFeaturedStories)
	g.GET("/stories/stats/overview", h.GetOverviewStats)
	g.GET("/stories/admin/all", h.GetAllStories, auth)
	g.GET("/stories/:id", h.GetStory)
	g.POST("/stories/:id/share", h.ShareStory)
	g.POST("/stories/:id/like", h.LikeStory)
	g.POST("/stories", h.CreateStory, auth)
	g.PUT("/stories/:id", h.UpdateStory, auth)
	g.DELETE("/stories/:id", h.DeleteStory, auth)
}

// GetStories lists published stories with filters and pagination
func (h *StoryHandler) GetStories(c echo.Context) error {
	published := true
	filter := repositories.StoryFilter{
		HeroType:  c.QueryParam("heroType"),
		Era:       c.QueryParam("era"),
		Region:    c.QueryParam("region"),
		Gender:    c.QueryParam("gender"),
		Search:    c.QueryParam("search"),
		Published: &published,
	}
	if conditions := c.QueryParam("conditions"); conditions != "" {
		for _, cond := range strings.Split(conditions, ",") {
			filter.Conditions = append(filter.Conditions, strings.TrimSpace(cond))
		}
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	sort := c.QueryParam("sort")
	if sort == "" {
		sort = "newest"
	}
	skip := int64((page - 1) * limit)

	stories, total, err := h.storyRepository.FindStories(c.Request().Context(), filter, sort, skip, int64(limit))
	if err != nil {
		log.Printf("Get stories error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get stories")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"stories":    stories,
		"pagination": models.NewPagination(page, limit, len(stories), total),
		"total":      total,
	})
}

// GetStory fetches one story and bumps its view counter
func (h *StoryHandler) GetStory(c echo.Context) error {
	ctx := c.Request().Context()

	story, err := h.storyRepository.GetStoryByID(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}

	if err := h.storyRepository.IncrementViews(ctx, c.Param("id")); err != nil {
		log.Printf("Failed to bump views for story %s: %v", c.Param("id"), err)
	} else {
		story.Views++
	}

	return c.JSON(http.StatusOK, echo.Map{"story": story})
}

// GetFeaturedStories lists the newest published featured stories
func (h *StoryHandler) GetFeaturedStories(c echo.Context) error {
	stories, err := h.storyRepository.GetFeaturedStories(c.Request().Context(), 6)
	if err != nil {
		log.Printf("Get featured stories error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get featured stories")
	}
	return c.JSON(http.StatusOK, echo.Map{"stories": stories})
}

// GetOverviewStats returns aggregate statistics over published stories
func (h *StoryHandler) GetOverviewStats(c echo.Context) error {
	stats, err := h.storyRepository.GetOverviewStats(c.Request().Context())
	if err != nil {
		log.Printf("Get story stats error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get story statistics")
	}
	return c.JSON(http.StatusOK, stats)
}

// ShareStory increments the share counter
func (h *StoryHandler) ShareStory(c echo.Context) error {
	story, err := h.storyRepository.IncrementShares(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Story shared successfully",
		"shares":  story.Shares,
	})
}

// LikeStory unconditionally increments the like counter
func (h *StoryHandler) LikeStory(c echo.Context) error {
	story, err := h.storyRepository.IncrementLikes(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Story liked successfully",
		"likes":   story.Likes,
	})
}

// GetAllStories lists stories for the editorial dashboard, drafts included
func (h *StoryHandler) GetAllStories(c echo.Context) error {
	filter := repositories.StoryFilter{
		HeroType: c.QueryParam("heroType"),
		Era:      c.QueryParam("era"),
	}
	if status := c.QueryParam("status"); status != "" {
		published := status == "published"
		filter.Published = &published
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	skip := int64((page - 1) * limit)

	stories, total, err := h.storyRepository.FindStories(c.Request().Context(), filter, "newest", skip, int64(limit))
	if err != nil {
		log.Printf("Get all stories error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get stories")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"stories":    stories,
		"pagination": models.NewPagination(page, limit, len(stories), total),
		"total":      total,
	})
}

// CreateStory creates a new story. When it is created already published
// the publication notifier fires immediately.
func (h *StoryHandler) CreateStory(c echo.Context) error {
	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	adminID, _ := c.Get("adminID").(uint)

	story := &models.Story{
		Title:               strings.TrimSpace(req.Title),
		Slug:                strings.TrimSpace(req.Slug),
		Subtitle:            strings.TrimSpace(req.Subtitle),
		Description:         strings.TrimSpace(req.Description),
		Image:               req.Image,
		HeroType:            req.HeroType,
		Era:                 strings.TrimSpace(req.Era),
		Region:              strings.TrimSpace(req.Region),
		Gender:              req.Gender,
		BirthYear:           req.BirthYear,
		DeathYear:           req.DeathYear,
		ReadingTime:         req.ReadingTime,
		ListeningTime:       req.ListeningTime,
		Conditions:          req.Conditions,
		HistoricalContext:   strings.TrimSpace(req.HistoricalContext),
		Chapters:            req.Chapters,
		Quotes:              req.Quotes,
		Legacy:              strings.TrimSpace(req.Legacy),
		ModernRelevance:     strings.TrimSpace(req.ModernRelevance),
		VoiceNarrationStyle: strings.TrimSpace(req.VoiceNarrationStyle),
		AudioURL:            req.AudioURL,
		IsPublished:         req.IsPublished,
		IsFeatured:          req.IsFeatured,
		CreatedBy:           adminID,
	}
	if story.Conditions == nil {
		story.Conditions = []string{}
	}
	if story.Chapters == nil {
		story.Chapters = []models.Chapter{}
	}
	if story.Quotes == nil {
		story.Quotes = []string{}
	}

	ctx := c.Request().Context()
	if err := h.storyRepository.CreateStory(ctx, story); err != nil {
		log.Printf("Create story error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create story")
	}

	// A story born published counts as a publication transition
	if story.IsPublished {
		h.notifier.StoryPublished(ctx, story)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Story created successfully",
		"story":   story,
	})
}

// UpdateStory applies a partial update. The notifier fires exactly when
// the stored published flag flips from false to true; re-saving an
// already-published story stays silent.
func (h *StoryHandler) UpdateStory(c echo.Context) error {
	var req models.UpdateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	existing, err := h.storyRepository.GetStoryByID(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}
	wasPublished := existing.IsPublished

	story, err := h.storyRepository.UpdateStory(ctx, c.Param("id"), &req)
	if err != nil {
		log.Printf("Update story error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update story")
	}

	if !wasPublished && story.IsPublished {
		h.notifier.StoryPublished(ctx, story)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Story updated successfully",
		"story":   story,
	})
}

// DeleteStory deletes a story
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	if err := h.storyRepository.DeleteStory(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Story deleted successfully"})
}
