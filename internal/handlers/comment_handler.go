package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/glorious-tales/backend/internal/models"
	"github.com/glorious-tales/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	storyRepository   repositories.StoryRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, storyRepo repositories.StoryRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		storyRepository:   storyRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes. auth guards the
// moderation endpoints.
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/comments", h.SubmitComment)
	g.GET("/comments/story/:storyId", h.GetStoryComments)
	g.GET("/comments/story/:storyId/stats", h.GetStoryCommentStats)
	g.GET("/comments", h.GetAllComments, auth)
	g.PATCH("/comments/:id/approve", h.ModerateComment, auth)
	g.DELETE("/comments/:id", h.DeleteComment, auth)
	g.POST("/comments/:id/like", h.LikeComment)
}

// SubmitComment accepts a new comment or reply. It is created unapproved
// and becomes visible only after moderation.
func (h *CommentHandler) SubmitComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.StoryID == "" || req.Name == "" || req.Email == "" || req.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Story ID, name, email, and content are required")
	}
	if n := utf8.RuneCountInString(req.Content); n < 10 || n > 1000 {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment must be between 10 and 1000 characters")
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return echo.NewHTTPError(http.StatusBadRequest, "Rating must be between 1 and 5")
	}

	ctx := c.Request().Context()

	story, err := h.storyRepository.GetStoryByID(ctx, req.StoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Story not found")
	}

	comment := &models.Comment{
		StoryID:   story.ID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Content:   strings.TrimSpace(req.Content),
		Rating:    req.Rating,
		UserIP:    c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}

	if req.ParentComment != "" {
		parent, err := h.commentRepository.GetCommentByID(ctx, req.ParentComment)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
		comment.ParentComment = &parent.ID
	}

	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		log.Printf("Comment submission error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to submit comment. Please try again.")
	}

	// If this is a reply, add it to the parent's replies array
	if comment.ParentComment != nil {
		if err := h.commentRepository.PushReply(ctx, *comment.ParentComment, comment.ID); err != nil {
			log.Printf("Failed to attach reply %s to parent: %v", comment.ID.Hex(), err)
		}
	}

	// A rating counts toward the story's rating counter
	if req.Rating != nil {
		if err := h.storyRepository.IncrementRatingCount(ctx, req.StoryID); err != nil {
			log.Printf("Failed to bump rating count for story %s: %v", req.StoryID, err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Comment submitted successfully! It will be reviewed before appearing.",
		"comment": comment,
	})
}

// GetStoryComments returns the visible top-level comments of a story with
// their visible replies, paginated
func (h *CommentHandler) GetStoryComments(c echo.Context) error {
	storyID := c.Param("storyId")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	sort := c.QueryParam("sort")
	if sort == "" {
		sort = "newest"
	}
	skip := int64((page - 1) * limit)

	ctx := c.Request().Context()
	comments, total, err := h.commentRepository.FindTopLevel(ctx, storyID, sort, skip, int64(limit))
	if err != nil {
		log.Printf("Get comments error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get comments")
	}

	threads := make([]models.CommentThread, 0, len(comments))
	for _, comment := range comments {
		replies, err := h.commentRepository.FindVisibleReplies(ctx, comment.ID)
		if err != nil {
			log.Printf("Get replies error for comment %s: %v", comment.ID.Hex(), err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get comments")
		}
		threads = append(threads, models.CommentThread{Comment: comment, Replies: replies})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"comments":   threads,
		"pagination": models.NewPagination(page, limit, len(threads), total),
		"total":      total,
	})
}

// GetStoryCommentStats returns aggregate comment statistics for a story
func (h *CommentHandler) GetStoryCommentStats(c echo.Context) error {
	storyID := c.Param("storyId")
	ctx := c.Request().Context()

	totalComments, err := h.commentRepository.CountVisible(ctx, storyID)
	if err != nil {
		log.Printf("Get comment stats error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get comment statistics")
	}
	totalReplies, err := h.commentRepository.CountVisibleReplies(ctx, storyID)
	if err != nil {
		log.Printf("Get comment stats error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get comment statistics")
	}
	ratings, err := h.commentRepository.VisibleRatings(ctx, storyID)
	if err != nil {
		log.Printf("Get comment stats error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get comment statistics")
	}

	avg, dist := models.BuildRatingStats(ratings)

	return c.JSON(http.StatusOK, models.CommentStats{
		TotalComments:      totalComments,
		TotalReplies:       totalReplies,
		AverageRating:      avg,
		TotalRatings:       len(ratings),
		RatingDistribution: dist,
	})
}

// GetAllComments lists comments for the moderation queue
func (h *CommentHandler) GetAllComments(c echo.Context) error {
	filter := repositories.AdminCommentFilter{StoryID: c.QueryParam("storyId")}
	if status := c.QueryParam("status"); status != "" {
		approved := status == "approved"
		filter.Approved = &approved
	}
	if isSpam := c.QueryParam("isSpam"); isSpam != "" {
		spam := isSpam == "true"
		filter.Spam = &spam
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

	comments, total, err := h.commentRepository.FindAll(c.Request().Context(), filter, skip, int64(limit))
	if err != nil {
		log.Printf("Get all comments error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get comments")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"comments":   comments,
		"pagination": models.NewPagination(page, limit, len(comments), total),
		"total":      total,
	})
}

// ModerateComment updates the approval/spam flags of a comment. Each flag
// is applied only when supplied.
func (h *CommentHandler) ModerateComment(c echo.Context) error {
	var req models.ModerateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	ctx := c.Request().Context()
	if _, err := h.commentRepository.GetCommentByID(ctx, c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	comment, err := h.commentRepository.UpdateModeration(ctx, c.Param("id"), req.IsApproved, req.IsSpam)
	if err != nil {
		log.Printf("Update comment error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update comment")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Comment status updated successfully",
		"comment": comment,
	})
}

// DeleteComment deletes a comment, its direct replies, and its entry in
// the parent's replies array. The cascade is a single level deep.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	ctx := c.Request().Context()

	comment, err := h.commentRepository.GetCommentByID(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	if comment.ParentComment != nil {
		if err := h.commentRepository.PullReply(ctx, *comment.ParentComment, comment.ID); err != nil {
			log.Printf("Delete comment error: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete comment")
		}
	}

	if _, err := h.commentRepository.DeleteReplies(ctx, comment.ID); err != nil {
		log.Printf("Delete comment error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete comment")
	}

	if err := h.commentRepository.DeleteComment(ctx, comment.ID); err != nil {
		log.Printf("Delete comment error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete comment")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted successfully"})
}

// LikeComment unconditionally increments a comment's like counter
func (h *CommentHandler) LikeComment(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.commentRepository.GetCommentByID(ctx, c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}

	comment, err := h.commentRepository.IncrementLikes(ctx, c.Param("id"))
	if err != nil {
		log.Printf("Like comment error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to like comment")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Comment liked successfully",
		"likes":   comment.Likes,
	})
}
