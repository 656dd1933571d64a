package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luvi2001/yfcapp/internal/apperr"
	"github.com/luvi2001/yfcapp/internal/logger"
	"github.com/luvi2001/yfcapp/internal/middleware"
	"github.com/luvi2001/yfcapp/internal/model"
	"github.com/luvi2001/yfcapp/internal/service"
)

type ReviewHandler struct{ reviews *service.ReviewService }

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) Submit(c *gin.Context) {
	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, _ := middleware.IdentityFrom(c)
	r, err := h.reviews.Submit(c.Request.Context(), id, req)
	if err != nil {
		logger.Ctx(c.Request.Context()).Warn("review.submit.failed", "user", id.UserName, "err", err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.SubmitReviewResponse{
		Message:   "Review submitted",
		Points:    r.Points,
		MaxPoints: r.MaxPoints,
		Review:    r,
	})
}

func (h *ReviewHandler) Mine(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	h.list(c, id.UserName)
}

// ByUser lets leaders read only their own reviews; admins read anyone's.
func (h *ReviewHandler) ByUser(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	name := c.Param("userName")
	if !id.IsAdmin() && name != id.UserName {
		fail(c, fmt.Errorf("reviews of %s: %w", name, apperr.ErrForbidden))
		return
	}
	h.list(c, name)
}

func (h *ReviewHandler) list(c *gin.Context, userName string) {
	out, err := h.reviews.ListByUser(c.Request.Context(), userName)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReviewHandler) Users(c *gin.Context) {
	names, err := h.reviews.UsersWithReviews(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *ReviewHandler) ByMonth(c *gin.Context) {
	var q model.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.reviews.ByMonth(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
