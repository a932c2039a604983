package handler

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/orchids/plays-registry/internal/domain"
	"github.com/orchids/plays-registry/internal/service"
	"github.com/orchids/plays-registry/pkg/logger"
	"github.com/orchids/plays-registry/pkg/validator"
	"github.com/orchids/plays-registry/web/templates"
)

const pageSize = 50

type PageHandler struct {
	plays *service.PlayService
	log   *logger.Logger
}

func NewPageHandler(plays *service.PlayService, log *logger.Logger) *PageHandler {
	return &PageHandler{
		plays: plays,
		log:   log,
	}
}

func (h *PageHandler) PlayListPage(c *gin.Context) {
	ctx := c.Request.Context()

	prefix := c.Query("title_prefix")
	page, err := h.plays.List(ctx, domain.ListQuery{
		Cursor:      validator.SanitizeString(c.Query("cursor")),
		Limit:       pageSize,
		TitlePrefix: prefix,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCursor) {
			h.render(c, http.StatusBadRequest, templates.MessagePage(http.StatusBadRequest, "This page is no longer available"))
			return
		}
		h.log.Error(ctx, "failed to list plays for page", err, nil)
		h.render(c, http.StatusInternalServerError, templates.MessagePage(http.StatusInternalServerError, "Failed to load plays"))
		return
	}

	h.render(c, http.StatusOK, templates.PlayListPage(page, prefix))
}

func (h *PageHandler) PlayPage(c *gin.Context) {
	ctx := c.Request.Context()

	// A malformed id cannot name a play, so the page is simply not found.
	playID, err := validator.ValidateUUID(c.Param("id"))
	if err != nil {
		h.render(c, http.StatusNotFound, templates.MessagePage(http.StatusNotFound, "Play not found"))
		return
	}

	play, err := h.plays.Get(ctx, playID.String())
	if err != nil {
		if errors.Is(err, domain.ErrPlayNotFound) {
			h.render(c, http.StatusNotFound, templates.MessagePage(http.StatusNotFound, "Play not found"))
			return
		}
		h.log.Error(ctx, "failed to get play for page", err, map[string]interface{}{
			"play_id": playID,
		})
		h.render(c, http.StatusInternalServerError, templates.MessagePage(http.StatusInternalServerError, "Failed to load play"))
		return
	}

	h.render(c, http.StatusOK, templates.PlayPage(play))
}

func (h *PageHandler) render(c *gin.Context, status int, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		h.log.Error(c.Request.Context(), "failed to render page", err, nil)
	}
}
