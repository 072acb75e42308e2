package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const attachmentURLTTL = 15 * time.Minute

// AttachmentHandler issues presigned upload URLs for chat files. The client
// uploads directly to the bucket and sends the returned fileUrl as the
// message's file field.
type AttachmentHandler struct {
	storage repositories.AttachmentStorage
	now     func() time.Time
}

func NewAttachmentHandler(storage repositories.AttachmentStorage) *AttachmentHandler {
	return &AttachmentHandler{storage: storage, now: time.Now}
}

func (h *AttachmentHandler) RegisterAttachmentRoutes(g *echo.Group) {
	g.POST("/attachments", h.CreateUpload)
}

func (h *AttachmentHandler) CreateUpload(c echo.Context) error {
	var req models.AttachmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	key := attachmentKey(req.ChatID, req.FileName)
	url, err := h.storage.PresignUpload(c.Request().Context(), key, req.ContentType, attachmentURLTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to prepare upload").SetInternal(err)
	}

	return c.JSON(http.StatusCreated, models.AttachmentUpload{
		Key:       key,
		UploadURL: url,
		FileURL:   h.storage.PublicURL(key),
		ExpiresAt: h.now().Add(attachmentURLTTL).UTC(),
	})
}

// attachmentKey places a file under its chat with a random prefix so names
// never collide. Path separators in either part are neutralised.
func attachmentKey(chatID, fileName string) string {
	clean := func(s string) string {
		return strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(s)
	}
	return fmt.Sprintf("chats/%s/%s-%s", clean(chatID), uuid.NewString(), clean(path.Base(fileName)))
}
