package handlers

import (
	"sweetshop/pkg/imagestore"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler hosts product images.
type UploadHandler struct {
	store imagestore.Store
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(store imagestore.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// RegisterRoutes registers the upload route behind admin.
func (h *UploadHandler) RegisterRoutes(router fiber.Router, admin ...fiber.Handler) {
	router.Post("/upload", guarded(admin, h.HandleUpload)...)
}

// HandleUpload stores the multipart "file" field and returns its URL.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No file uploaded",
			"error":   err.Error(),
		})
	}
	if err := imagestore.CheckExtension(fh.Filename); err != nil {
		return respondError(c, err, "Upload failed")
	}

	file, err := fh.Open()
	if err != nil {
		return respondError(c, err, "Upload failed")
	}
	defer file.Close()

	img, err := h.store.Upload(c.UserContext(), fh.Filename, file)
	if err != nil {
		return respondError(c, err, "Upload failed")
	}
	return c.JSON(img)
}
