package files

import "time"

type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required"`
}

type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	ExpiresAt int64  `json:"expiresAt"`
}

type DownloadURLRequest struct {
	FileKey string `json:"fileKey" binding:"required"`
}

type DownloadURLResponse struct {
	DownloadURL string `json:"downloadUrl"`
	ExpiresAt   int64  `json:"expiresAt"`
}

type DeleteResponse struct {
	Message string `json:"message"`
	FileKey string `json:"fileKey"`
}

const (
	MaxFilenameLength  = 255
	DefaultUploadTTL   = 15 * time.Minute
	DefaultDownloadTTL = time.Hour
)

// AllowedContentTypes is the upload whitelist.
var AllowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
	"text/plain":      true,
	"video/mp4":       true,
	"audio/mpeg":      true,
}
