// Command useradd creates a leader or admin account directly in the store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/luvi2001/yfcapp/internal/config"
	"github.com/luvi2001/yfcapp/internal/logger"
	"github.com/luvi2001/yfcapp/internal/model"
	"github.com/luvi2001/yfcapp/internal/service"
	"github.com/luvi2001/yfcapp/internal/store"
)

func main() {
	var (
		configFile = flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
		req        model.SignUpRequest
		admin      bool
	)
	flag.StringVar(&req.Name, "name", "", "display name")
	flag.StringVar(&req.Email, "email", "", "email address")
	flag.StringVar(&req.Username, "username", "", "login name")
	flag.StringVar(&req.Password, "password", "", "password, at least 6 characters")
	flag.StringVar(&req.Phone, "phone", "", "phone number")
	flag.StringVar(&req.Division, "division", "", "division")
	flag.BoolVar(&admin, "admin", false, "grant the admin role")
	flag.Parse()

	if err := run(*configFile, req, admin); err != nil {
		fmt.Fprintln(os.Stderr, "useradd:", err)
		os.Exit(1)
	}
}

func run(configFile string, req model.SignUpRequest, admin bool) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	closeLog := logger.Init(cfg.Log)
	defer closeLog()

	db, err := cfg.OpenGormDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	st := store.New(db)
	defer st.Close()

	ctx := context.Background()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	role := model.RoleLeader
	if admin {
		role = model.RoleAdmin
	}
	auth := service.NewAuthService(st, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL())
	u, err := auth.SignUp(ctx, req, role)
	if err != nil {
		return err
	}
	logger.Info("useradd.ok", "uid", u.ID, "username", u.Username, "role", u.Role)
	return nil
}
