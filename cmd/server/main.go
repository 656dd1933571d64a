package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luvi2001/yfcapp/internal/config"
	"github.com/luvi2001/yfcapp/internal/handler"
	"github.com/luvi2001/yfcapp/internal/logger"
	"github.com/luvi2001/yfcapp/internal/service"
	"github.com/luvi2001/yfcapp/internal/store"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	if err := cfg.CheckSecrets(); err != nil {
		slog.Error("config check failed", "err", err)
		os.Exit(1)
	}
	closeLog := logger.Init(cfg.Log)
	defer closeLog()

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "driver", cfg.Database.Driver, "err", err)
		os.Exit(1)
	}
	st := store.New(db)
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := st.Migrate(ctx); err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	stats := service.NewStatsService(st, st, cfg.Review.RequiredReports, cfg.Review.WindowLimit)
	svc := handler.Services{
		Auth:     service.NewAuthService(st, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL()),
		Reviews:  service.NewReviewService(st),
		Members:  service.NewMemberService(st),
		Progress: service.NewProgressService(st),
		Stats:    stats,
		Export:   service.NewExportService(stats),
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handler.NewRouter(svc, handler.RouterConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		RenewWithin:  cfg.Auth.RenewWithin(),
	})

	srv := &http.Server{Addr: cfg.Addr(), Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", cfg.Addr(), "driver", cfg.Database.Driver,
		"required_reports", cfg.Review.RequiredReports)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "err", err)
	}
}
