package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/luvi2001/yfcapp/internal/apperr"
	"github.com/luvi2001/yfcapp/internal/logger"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrDuplicateSubmission), errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as {"error": ..., "field": ...}. Storage details stay in the log.
func fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Ctx(c.Request.Context()).Error("http.fail", "path", c.FullPath(), "err", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	body := gin.H{"error": err.Error()}
	var fe *apperr.FieldError
	if errors.As(err, &fe) {
		body["error"] = fe.Error()
		body["field"] = fe.Field
	}
	c.JSON(status, body)
}

// badRequest reports a binding failure, naming the first offending field.
func badRequest(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fe.Field() + ": failed " + fe.Tag() + " check",
			"field": fe.Field(),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		fail(c, apperr.Invalid(name, "must be a positive id"))
		return 0, false
	}
	return id, true
}
