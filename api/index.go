// Package api is the serverless entry point. The app is built on the first
// request and reused while the instance stays warm.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"ecom-cart/app"
	"ecom-cart/config"
	_ "ecom-cart/docs"

	"github.com/gin-gonic/gin"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg, err := config.Load(nil)
		if err != nil {
			initErr = err
			return
		}
		config.InitLogger(cfg.LogLevel)

		application, initErr = app.New(context.Background(), cfg)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		slog.Error("failed to initialize app", "err", initErr)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}
	application.Router.ServeHTTP(w, r)
}
