package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := LoadConfig()

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Connect to MongoDB. A failed initial connection is fatal rather
	// than leaving the process up to serve 500s.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		e.Logger.Fatalf("mongo connect: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		e.Logger.Fatalf("mongo ping: %v", err)
	}

	st := NewMongoStore(client, cfg.DBName)

	// Provide the store and config to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("store", st)
			c.Set("config", cfg)
			return next(c)
		}
	})

	Route(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
