package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luvi2001/yfcapp/internal/middleware"
	"github.com/luvi2001/yfcapp/internal/model"
	"github.com/luvi2001/yfcapp/internal/service"
)

type ProgressHandler struct{ progress *service.ProgressService }

func NewProgressHandler(progress *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

func (h *ProgressHandler) Submit(c *gin.Context) {
	var req model.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, _ := middleware.IdentityFrom(c)
	p, err := h.progress.Submit(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Progress submitted", "progress": p})
}

func (h *ProgressHandler) Mine(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	out, err := h.progress.ListByUser(c.Request.Context(), id.UserName)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
