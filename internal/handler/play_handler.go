package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orchids/plays-registry/internal/config"
	"github.com/orchids/plays-registry/internal/domain"
	"github.com/orchids/plays-registry/internal/service"
	"github.com/orchids/plays-registry/pkg/logger"
	"github.com/orchids/plays-registry/pkg/response"
	"github.com/orchids/plays-registry/pkg/validator"
)

const playsBasePath = "/v1/plays"

type createPlayRequest struct {
	Title     string `json:"title"`
	VideoPath string `json:"video_path"`
}

type createPlayResponse struct {
	PlayID string `json:"playId"`
}

type playResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	VideoPath string    `json:"video_path"`
	CreatedAt time.Time `json:"created_at"`
}

func toPlayResponse(p *domain.Play) playResponse {
	return playResponse{
		ID:        p.ID,
		Title:     p.Title,
		VideoPath: p.VideoPath,
		CreatedAt: p.CreatedAt,
	}
}

type PlayHandler struct {
	plays  *service.PlayService
	log    *logger.Logger
	config config.PlaysConfig
}

func NewPlayHandler(plays *service.PlayService, log *logger.Logger, cfg config.PlaysConfig) *PlayHandler {
	return &PlayHandler{
		plays:  plays,
		log:    log,
		config: cfg,
	}
}

func (h *PlayHandler) CreatePlay(c *gin.Context) {
	ctx := c.Request.Context()

	var req createPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "body", "Request body must be a JSON object with title and video_path")
		return
	}

	title, err := validator.NormalizeTitle(req.Title)
	if err != nil {
		response.ValidationError(c, "title", err.Error())
		return
	}

	videoPath, err := validator.NormalizeVideoPath(req.VideoPath)
	if err != nil {
		response.ValidationError(c, "video_path", err.Error())
		return
	}

	play, err := h.plays.Create(ctx, title, videoPath)
	if err != nil {
		h.log.Error(ctx, "failed to create play", err, map[string]interface{}{
			"title": title,
		})
		response.InternalError(c, "Failed to create play")
		return
	}

	response.Created(c, playsBasePath+"/"+play.ID, createPlayResponse{PlayID: play.ID})
}

func (h *PlayHandler) GetPlay(c *gin.Context) {
	ctx := c.Request.Context()

	playID, ok := h.playID(c)
	if !ok {
		return
	}

	play, err := h.plays.Get(ctx, playID)
	if err != nil {
		if errors.Is(err, domain.ErrPlayNotFound) {
			response.NotFound(c, "Play not found")
			return
		}
		h.log.Error(ctx, "failed to get play", err, map[string]interface{}{
			"play_id": playID,
		})
		response.InternalError(c, "Failed to retrieve play")
		return
	}

	response.Success(c, http.StatusOK, toPlayResponse(play))
}

func (h *PlayHandler) DeletePlay(c *gin.Context) {
	ctx := c.Request.Context()

	playID, ok := h.playID(c)
	if !ok {
		return
	}

	if err := h.plays.Delete(ctx, playID); err != nil {
		if errors.Is(err, domain.ErrPlayNotFound) {
			response.NotFound(c, "Play not found")
			return
		}
		h.log.Error(ctx, "failed to delete play", err, map[string]interface{}{
			"play_id": playID,
		})
		response.InternalError(c, "Failed to delete play")
		return
	}

	response.NoContent(c)
}

func (h *PlayHandler) ListPlays(c *gin.Context) {
	ctx := c.Request.Context()

	limit, err := validator.ParseLimit(c.Query("limit"), h.config.DefaultLimit, h.config.MaxLimit)
	if err != nil {
		response.ValidationError(c, "limit", err.Error())
		return
	}

	query := domain.ListQuery{
		Cursor:      validator.SanitizeString(c.Query("cursor")),
		Limit:       limit,
		TitlePrefix: c.Query("title_prefix"),
	}

	page, err := h.plays.List(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCursor) {
			response.InvalidCursor(c, "Cursor does not match any play in the current listing")
			return
		}
		h.log.Error(ctx, "failed to list plays", err, nil)
		response.InternalError(c, "Failed to list plays")
		return
	}

	data := make([]playResponse, 0, len(page.Plays))
	for _, p := range page.Plays {
		data = append(data, toPlayResponse(p))
	}

	response.SuccessWithCursor(c, data, page.NextCursor)
}

func (h *PlayHandler) GetPlayStats(c *gin.Context) {
	ctx := c.Request.Context()

	playID, ok := h.playID(c)
	if !ok {
		return
	}

	stats, err := h.plays.Stats(ctx, playID)
	if err != nil {
		if errors.Is(err, domain.ErrPlayNotFound) {
			response.NotFound(c, "Play not found")
			return
		}
		h.log.Error(ctx, "failed to get play stats", err, map[string]interface{}{
			"play_id": playID,
		})
		response.InternalError(c, "Failed to retrieve play stats")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":          stats.PlayID,
		"total_views": stats.TotalViews,
		"today_views": stats.TodayViews,
		"hour_views":  stats.HourViews,
	})
}

func (h *PlayHandler) playID(c *gin.Context) (string, bool) {
	id, err := validator.ValidateUUID(c.Param("id"))
	if err != nil {
		response.ValidationError(c, "id", "Invalid play ID format")
		return "", false
	}
	return id.String(), true
}
