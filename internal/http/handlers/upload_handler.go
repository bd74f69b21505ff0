package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "shopline/internal/log"
	"shopline/internal/storage"
)

const maxUploadBytes = 5 << 20 // 5 MiB

type UploadHandler struct {
	Disk *storage.DiskStore
	S3   storage.Store // nil when no bucket is configured
}

// Local stores the uploaded image on disk and returns its public path.
func (h *UploadHandler) Local(c *fiber.Ctx) error {
	return h.save(c, h.Disk, "upload.local")
}

// S3Upload stores the uploaded image in the configured bucket.
func (h *UploadHandler) S3Upload(c *fiber.Ctx) error {
	if h.S3 == nil {
		return jsonError(c, fiber.StatusInternalServerError, "S3 upload not configured")
	}
	return h.save(c, h.S3, "upload.s3")
}

func (h *UploadHandler) save(c *fiber.Ctx, store storage.Store, action string) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "No file uploaded")
	}
	ct, ok := imageContentType(fh)
	if !ok {
		applog.Security(c, action+".reject", map[string]any{"content_type": ct})
		return jsonError(c, fiber.StatusUnsupportedMediaType, "Only image files are allowed")
	}
	if fh.Size > maxUploadBytes {
		return jsonError(c, fiber.StatusBadRequest, "file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return storeError(c, action, err)
	}
	defer f.Close()

	ext := filepath.Ext(fh.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("%d%s", time.Now().UnixMilli(), ext)

	loc, err := store.Save(key, ct, f)
	if err != nil {
		return storeError(c, action, err)
	}
	applog.Audit(c, action, map[string]any{"key": key, "size": fh.Size})
	return c.JSON(fiber.Map{"path": loc})
}

func imageContentType(fh *multipart.FileHeader) (string, bool) {
	ct := fh.Header.Get("Content-Type")
	return ct, strings.HasPrefix(ct, "image/")
}
