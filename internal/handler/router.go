package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/luvi2001/yfcapp/internal/middleware"
	"github.com/luvi2001/yfcapp/internal/model"
	"github.com/luvi2001/yfcapp/internal/service"
)

// Services are the collaborators the HTTP surface needs.
type Services struct {
	Auth     *service.AuthService
	Reviews  *service.ReviewService
	Members  *service.MemberService
	Progress *service.ProgressService
	Stats    *service.StatsService
	Export   *service.ExportService
}

type RouterConfig struct {
	AllowOrigins []string
	RenewWithin  time.Duration
}

func NewRouter(s Services, cfg RouterConfig) *gin.Engine {
	authH := NewAuthHandler(s.Auth)
	reviewH := NewReviewHandler(s.Reviews)
	memberH := NewMemberHandler(s.Members, s.Stats)
	progressH := NewProgressHandler(s.Progress)
	statsH := NewStatsHandler(s.Stats, s.Export)

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLog())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"X-New-Token", middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/api/auth/signup", authH.SignUp)
	r.POST("/api/auth/login", authH.Login)

	api := r.Group("/api", middleware.JWTAuth(s.Auth, cfg.RenewWithin))
	api.GET("/auth/profile", authH.Profile)
	api.POST("/reviews", reviewH.Submit)
	api.GET("/reviews/mine", reviewH.Mine)
	api.GET("/reviews/user/:userName", reviewH.ByUser)
	api.POST("/members", memberH.Add)
	api.GET("/members/mine", memberH.Mine)
	api.POST("/progress", progressH.Submit)
	api.GET("/progress/mine", progressH.Mine)

	admin := api.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/reviews/users", reviewH.Users)
	admin.GET("/reviews/by-month", reviewH.ByMonth)
	admin.GET("/members", memberH.List)
	admin.DELETE("/members/:memberId", memberH.Delete)
	admin.GET("/members/:memberId/monthly", memberH.Monthly)
	admin.GET("/members/:memberId/stats", memberH.Lifetime)
	admin.GET("/assignments", memberH.Assignments)
	admin.DELETE("/assignments/:id", memberH.DeleteAssignment)
	admin.DELETE("/assignments/:id/members/:memberId", memberH.RemoveFromAssignment)
	admin.POST("/stats/team", statsH.Team)
	admin.GET("/stats/team/export", statsH.TeamExport)
	admin.POST("/progress/stats", statsH.Progress)

	return r
}
