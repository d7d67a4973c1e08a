package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glorious-tales/backend/internal/models"
	"github.com/glorious-tales/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockSuggestionRepository mocks the SuggestionRepository interface
type MockSuggestionRepository struct {
	mock.Mock
}

func (m *MockSuggestionRepository) CreateSuggestion(ctx context.Context, suggestion *models.Suggestion) error {
	args := m.Called(ctx, suggestion)
	if args.Error(0) == nil && suggestion.ID.IsZero() {
		suggestion.ID = primitive.NewObjectID()
		suggestion.Status = "pending"
	}
	return args.Error(0)
}

func (m *MockSuggestionRepository) GetSuggestionByID(ctx context.Context, id string) (*models.Suggestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) FindSuggestions(ctx context.Context, filter repositories.SuggestionFilter, skip, limit int64) ([]models.Suggestion, int64, error) {
	args := m.Called(ctx, filter, skip, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Suggestion), args.Get(1).(int64), args.Error(2)
}

func (m *MockSuggestionRepository) ReviewSuggestion(ctx context.Context, id, status, adminNotes string, reviewerID uint) (*models.Suggestion, error) {
	args := m.Called(ctx, id, status, adminNotes, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Suggestion), args.Error(1)
}

func setupSuggestionRoutes(repo *MockSuggestionRepository) *httptest.Server {
	e := newTestEcho()
	h := NewSuggestionHandler(repo)
	h.RegisterSuggestionRoutes(e.Group("/api"), asAdmin)
	return httptest.NewServer(e)
}

func validSuggestionRequest() models.CreateSuggestionRequest {
	return models.CreateSuggestionRequest{
		Name:         "Asha",
		Email:        "asha@example.com",
		LegendName:   "Birsa Munda",
		Description:  strings.Repeat("A tribal leader who fought colonial land grabs. ", 3),
		Era:          "Late 1800s",
		Region:       "Chotanagpur",
		HeroType:     "rebel",
		WhyImportant: "His movement reshaped land rights for tribal communities.",
	}
}

func TestSubmitSuggestion_DescriptionTooShort(t *testing.T) {
	repo := new(MockSuggestionRepository)
	srv := setupSuggestionRoutes(repo)
	defer srv.Close()

	req := validSuggestionRequest()
	req.Description = "A short description."
	resp := postJSON(t, srv.URL+"/api/suggestions", req)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Description must be at least 50 characters long", body["message"])
	repo.AssertNotCalled(t, "CreateSuggestion", mock.Anything, mock.Anything)
}

func TestSubmitSuggestion_Valid(t *testing.T) {
	repo := new(MockSuggestionRepository)
	srv := setupSuggestionRoutes(repo)
	defer srv.Close()

	repo.On("CreateSuggestion", mock.Anything, mock.MatchedBy(func(s *models.Suggestion) bool {
		return s.Email == "asha@example.com" && s.LegendName == "Birsa Munda"
	})).Return(nil)

	resp := postJSON(t, srv.URL+"/api/suggestions", validSuggestionRequest())

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Suggestion submitted successfully! We will review it and get back to you.", body["message"])
	repo.AssertExpectations(t)
}

func TestReviewSuggestion_StampsReviewer(t *testing.T) {
	repo := new(MockSuggestionRepository)
	srv := setupSuggestionRoutes(repo)
	defer srv.Close()

	id := primitive.NewObjectID()
	pending := &models.Suggestion{ID: id, Status: "pending"}
	approved := &models.Suggestion{ID: id, Status: "approved", AdminNotes: "Great pick", ReviewedBy: 1}

	repo.On("GetSuggestionByID", mock.Anything, id.Hex()).Return(pending, nil)
	repo.On("ReviewSuggestion", mock.Anything, id.Hex(), "approved", "Great pick", uint(1)).Return(approved, nil)

	payload, _ := json.Marshal(models.ReviewSuggestionRequest{Status: "approved", AdminNotes: "Great pick"})
	req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/api/suggestions/"+id.Hex()+"/status", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody(t, resp)
	assert.Equal(t, "Suggestion status updated successfully", out["message"])
	repo.AssertExpectations(t)
}

func TestReviewSuggestion_InvalidStatus(t *testing.T) {
	repo := new(MockSuggestionRepository)
	srv := setupSuggestionRoutes(repo)
	defer srv.Close()

	payload, _ := json.Marshal(models.ReviewSuggestionRequest{Status: "archived"})
	req, _ := http.NewRequest(http.MethodPatch, srv.URL+"/api/suggestions/"+primitive.NewObjectID().Hex()+"/status", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	repo.AssertNotCalled(t, "ReviewSuggestion", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
