// Package uploads stores uploaded media through the configured storage
// backend and hands back the public URL recorded in content documents.
package uploads

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
)

// MaxImageSize is the upload size limit for images (10 MB).
const MaxImageSize = 10 << 20

// allowedImageTypes are the content types accepted for image uploads.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/svg+xml": true,
}

// IsAllowedImageType reports whether ct is an accepted image content type.
func IsAllowedImageType(ct string) bool {
	return allowedImageTypes[strings.ToLower(strings.TrimSpace(ct))]
}

// SaveFile writes an uploaded file under dir and returns its storage path and
// public URL. The stored name is a short random ID plus the original
// extension; the path is dir/YYYY/MM/name so backends shard by month.
func SaveFile(ctx context.Context, store storage.Store, dir string, file multipart.File, header *multipart.FileHeader) (path, url string, err error) {
	now := time.Now().UTC()
	ext := filepath.Ext(header.Filename)
	uniqueName := fmt.Sprintf("%s%s", uuid.New().String()[:8], ext)
	path = fmt.Sprintf("%s/%04d/%02d/%s", dir, now.Year(), int(now.Month()), uniqueName)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := &storage.PutOptions{
		ContentType: contentType,
	}
	if err := store.Put(ctx, path, file, opts); err != nil {
		return "", "", err
	}
	return path, store.URL(path), nil
}
