package main

import (
	"warbler/internal/app"
	"warbler/pkg/config"

	_ "warbler/docs" // Swagger docs
)

// @title           Warbler API
// @version         1.0
// @description     JSON API for the Warbler social web application

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name warbler_session

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.SessionSecret == config.DefaultSessionSecret || cfg.SessionSecret == "" {
		panic("SESSION_SECRET must be set in environment variables")
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
