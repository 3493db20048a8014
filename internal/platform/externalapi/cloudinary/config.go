// Package cloudinary provides a client for the Cloudinary image upload API.
package cloudinary

import (
	"os"
	"time"
)

// Config holds configuration for the Cloudinary API client.
type Config struct {
	CloudName string        // Cloud name identifying the account
	APIKey    string        // API key for authentication
	APISecret string        // API secret used to sign upload requests
	BaseURL   string        // Base URL for the API
	Timeout   time.Duration // HTTP request timeout
}

// LoadConfig loads Cloudinary configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("CLOUDINARY_BASE_URL")
	if base == "" {
		base = "https://api.cloudinary.com/v1_1"
	}
	return Config{
		CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		BaseURL:   base,
		Timeout:   30 * time.Second,
	}
}
