package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
	Field  string `json:"field,omitempty"`
}

// CursorPage is the list envelope. NextCursor is serialized as null once the
// listing is exhausted.
type CursorPage struct {
	Data       interface{} `json:"data"`
	NextCursor *string     `json:"nextCursor"`
}

func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func Created(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func SuccessWithCursor(c *gin.Context, data interface{}, nextCursor string) {
	page := CursorPage{Data: data}
	if nextCursor != "" {
		page.NextCursor = &nextCursor
	}
	c.JSON(http.StatusOK, page)
}

func Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{
		Detail: message,
		Code:   code,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func InvalidCursor(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "INVALID_CURSOR", message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", message)
}

func ValidationError(c *gin.Context, field, message string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorBody{
		Detail: message,
		Code:   "VALIDATION_ERROR",
		Field:  field,
	})
}
