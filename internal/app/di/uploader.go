package di

import (
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/externalapi/cloudinary"
	infrahttp "github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/http"
)

// NewUploader creates a fully configured Cloudinary uploader with HTTP client.
func NewUploader() *cloudinary.Uploader {
	cfg := cloudinary.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return cloudinary.NewUploader(cfg, httpClient)
}
