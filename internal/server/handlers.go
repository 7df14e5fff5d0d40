package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cryops/cryops/internal/analytics"
	"github.com/cryops/cryops/internal/ghcrawl"
	"github.com/gin-gonic/gin"
)

const profileURLPrefix = "https://github.com/"

// Fetcher retrieves GitHub data for a user.
type Fetcher interface {
	Crawl(ctx context.Context, username string) (*ghcrawl.CrawlResult, error)
	Validate(ctx context.Context, username string) (*analytics.Profile, error)
}

// Handler serves the GitHub endpoints.
type Handler struct {
	fetcher Fetcher
	log     *slog.Logger
	now     func() time.Time
}

// NewHandler returns a Handler. now is the clock used for all date-relative
// statistics.
func NewHandler(fetcher Fetcher, log *slog.Logger, now func() time.Time) *Handler {
	return &Handler{fetcher: fetcher, log: log, now: now}
}

type detailsRequest struct {
	URL string `json:"url"`
}

// GetDetails handles POST /api/github/get-details.
func (h *Handler) GetDetails(c *gin.Context) {
	var req detailsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		h.log.Warn("invalid details request", slog.Any("error", err))
		respondError(c, http.StatusBadRequest, msgURLRequired)
		return
	}

	username, ok := ghcrawl.ExtractUsername(req.URL)
	if !ok {
		h.log.Warn("unparsable github url", slog.String("url", req.URL))
		respondError(c, http.StatusBadRequest, msgInvalidURL)
		return
	}

	result, err := h.fetcher.Crawl(c.Request.Context(), username)
	if err != nil {
		h.fetchFailed(c, username, err)
		return
	}

	report := analytics.BuildReport(result.Sources(profileURLPrefix+username), h.now())
	h.log.Info("built report",
		slog.String("user", username),
		slog.Int("repos", len(report.SanitizedRepos)),
		slog.Any("missing", result.Missing()),
	)
	respondOK(c, http.StatusOK, report)
}

type validateResponse struct {
	Valid bool               `json:"valid"`
	Data  *analytics.Profile `json:"data,omitempty"`
	Error string             `json:"error,omitempty"`
}

// ValidateUser handles GET /api/github/validate.
func (h *Handler) ValidateUser(c *gin.Context) {
	username := c.Query("username")
	switch {
	case username == "":
		c.JSON(http.StatusBadRequest, validateResponse{Error: msgUsernameRequired})
		return
	case !ghcrawl.ValidUsername(username):
		c.JSON(http.StatusBadRequest, validateResponse{Error: msgInvalidUsername})
		return
	}

	profile, err := h.fetcher.Validate(c.Request.Context(), username)
	switch {
	case errors.Is(err, ghcrawl.ErrUserNotFound):
		c.JSON(http.StatusNotFound, validateResponse{Error: msgUserNotFound})
	case err != nil:
		h.log.Error("validate user failed", slog.String("user", username), slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, validateResponse{Error: msgFetchFailed})
	default:
		c.JSON(http.StatusOK, validateResponse{Valid: true, Data: profile})
	}
}

func (h *Handler) fetchFailed(c *gin.Context, username string, err error) {
	if errors.Is(err, ghcrawl.ErrUserNotFound) {
		h.log.Info("github user not found", slog.String("user", username))
		respondError(c, http.StatusNotFound, msgUserNotFound)
		return
	}
	h.log.Error("crawl failed", slog.String("user", username), slog.String("error", err.Error()))
	respondError(c, http.StatusBadGateway, msgFetchFailed)
}
