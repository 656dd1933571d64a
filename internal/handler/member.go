package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luvi2001/yfcapp/internal/middleware"
	"github.com/luvi2001/yfcapp/internal/model"
	"github.com/luvi2001/yfcapp/internal/service"
)

type MemberHandler struct {
	members *service.MemberService
	stats   *service.StatsService
}

func NewMemberHandler(members *service.MemberService, stats *service.StatsService) *MemberHandler {
	return &MemberHandler{members: members, stats: stats}
}

func (h *MemberHandler) Add(c *gin.Context) {
	var req model.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, _ := middleware.IdentityFrom(c)
	a, err := h.members.Add(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Member added", "assignment": a})
}

func (h *MemberHandler) Mine(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	out, err := h.members.Mine(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MemberHandler) List(c *gin.Context) {
	out, err := h.members.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	m, err := h.members.Delete(c.Request.Context(), memberID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted", "member": m})
}

func (h *MemberHandler) Monthly(c *gin.Context) {
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	out, err := h.stats.MemberMonthly(c.Request.Context(), memberID, c.Query("month"), c.Query("year"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MemberHandler) Lifetime(c *gin.Context) {
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	out, err := h.stats.MemberLifetime(c.Request.Context(), memberID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MemberHandler) Assignments(c *gin.Context) {
	out, err := h.members.Assignments(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *MemberHandler) DeleteAssignment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.members.DeleteAssignment(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted"})
}

func (h *MemberHandler) RemoveFromAssignment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "memberId")
	if !ok {
		return
	}
	a, err := h.members.RemoveFromAssignment(c.Request.Context(), id, memberID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
