package main

import (
	"microposts/pkg/config"
	app "microposts/services/tumblog/internal/app"

	_ "microposts/services/tumblog/docs" // Swagger docs
)

// @title           Tumblog API
// @version         1.0
// @description     Typed posts (text, photo, gif, link) with tags and comments

// @host      localhost:5000
// @BasePath  /api

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
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
