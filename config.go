package main

import (
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
)

// Config holds the runtime settings, read from the environment with the
// API_ prefix (API_MONGODB_URI, API_PORT, ...).
type Config struct {
	MongoURI   string
	DBName     string
	Port       string
	JWTSecret  string
	StrictRefs bool
}

// LoadConfig reads the configuration from the environment, falling back
// to development defaults.
func LoadConfig() Config {
	v := viper.New()
	v.SetEnvPrefix("API")
	v.AutomaticEnv()

	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("DB_NAME", "taskdb")
	v.SetDefault("PORT", "3000")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("STRICT_REFS", false)

	return Config{
		MongoURI:   v.GetString("MONGODB_URI"),
		DBName:     v.GetString("DB_NAME"),
		Port:       v.GetString("PORT"),
		JWTSecret:  v.GetString("JWT_SECRET"),
		StrictRefs: v.GetBool("STRICT_REFS"),
	}
}

// configFrom pulls the config out of the request context.
func configFrom(c echo.Context) Config {
	return c.Get("config").(Config)
}
