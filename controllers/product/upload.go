package productcontroller

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AndreyGichan/shop-api/config"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var errBadImageExt = errors.New("unsupported image format, allowed: jpg, jpeg, png, gif, webp")

// saveProductImage stores an uploaded image under the configured upload
// directory with a uuid filename and returns the public URL.
func saveProductImage(c *gin.Context, cfg *config.Config, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", errBadImageExt
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return "", err
	}
	filename := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(cfg.UploadDir, filename)); err != nil {
		return "", err
	}
	return "/static/images/" + filename, nil
}
