package cli

import (
	"os"
	"strconv"
)

// DefaultAdminUsername is the well-known bootstrap admin account name
const DefaultAdminUsername = "admin"

// Config holds server configuration, sourced from the environment
type Config struct {
	StorageType       string
	RedisURL          string
	AdminPassword     string
	ScoreServiceToken string
	Port              int
}

// ConfigFromEnv builds a Config from environment variables
func ConfigFromEnv() *Config {
	return &Config{
		StorageType:       os.Getenv("STORAGE_TYPE"),
		RedisURL:          os.Getenv("REDIS_URL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		ScoreServiceToken: os.Getenv("SCORE_SERVICE_TOKEN"),
		Port:              portFromEnv(8080),
	}
}

func portFromEnv(defaultPort int) int {
	val := os.Getenv("PORT")
	if val == "" {
		return defaultPort
	}
	port, err := strconv.Atoi(val)
	if err != nil || port <= 0 {
		return defaultPort
	}
	return port
}
