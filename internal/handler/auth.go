package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luvi2001/yfcapp/internal/logger"
	"github.com/luvi2001/yfcapp/internal/middleware"
	"github.com/luvi2001/yfcapp/internal/model"
	"github.com/luvi2001/yfcapp/internal/service"
)

type AuthHandler struct{ auth *service.AuthService }

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.auth.SignUp(c.Request.Context(), req, model.RoleLeader)
	if err != nil {
		fail(c, err)
		return
	}
	logger.Ctx(c.Request.Context()).Info("signup.ok", "uid", u.ID, "username", u.Username)
	c.JSON(http.StatusCreated, gin.H{"message": "User registered", "user": u})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.Identifier(), req.Password)
	if err != nil {
		logger.Ctx(c.Request.Context()).Warn("login.failed", "login", req.Identifier())
		fail(c, err)
		return
	}

	logger.Ctx(c.Request.Context()).Info("login.ok", "uid", resp.User.ID, "username", resp.User.Username)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	u, err := h.auth.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
