package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/agendaly/salon-platform/internal/config"
	"github.com/agendaly/salon-platform/internal/db"
	"github.com/agendaly/salon-platform/internal/middleware"
	"github.com/agendaly/salon-platform/internal/routes"
)

func main() {
	cfg := config.Load()

	database := db.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, database, rdb, cfg)

	logrus.WithField("addr", cfg.Addr()).Info("servidor iniciado")
	if err := r.Run(cfg.Addr()); err != nil {
		logrus.Fatalf("erro ao subir servidor: %v", err)
	}
}
