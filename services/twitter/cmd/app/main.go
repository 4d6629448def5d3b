package main

import (
	"microposts/pkg/config"
	app "microposts/services/twitter/internal/app"

	_ "microposts/services/twitter/docs" // Swagger docs
)

// @title           Twitter Clone API
// @version         1.0
// @description     Tweets of at most 280 characters

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
