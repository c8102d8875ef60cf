package handlers

import (
	"encoding/json"
	"errors"

	"github.com/faruqeclypst/FLASH-MOSA/internal/models"
	"github.com/faruqeclypst/FLASH-MOSA/internal/repositories"
	"github.com/faruqeclypst/FLASH-MOSA/internal/services"
	"github.com/faruqeclypst/FLASH-MOSA/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// GetContent serves the landing-page document. The admin editor reads the
// same payload and keeps `version` for its save.
func (h *Handler) GetContent(c *fiber.Ctx) error {
	content, err := h.contentSvc.Get()
	if err != nil {
		return utils.Error(c, "Failed to fetch content", fiber.StatusInternalServerError)
	}
	if content == nil {
		return utils.Success(c, nil, "No content published yet")
	}

	return utils.Success(c, content, "Content retrieved successfully")
}

type SaveContentRequest struct {
	Version int                  `json:"version"`
	Content *models.EventContent `json:"content"`
}

// SaveContent commits a whole draft under the version token it was loaded
// with. A stale token means another admin saved meanwhile: 409.
func (h *Handler) SaveContent(c *fiber.Ctx) error {
	var req SaveContentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if req.Content == nil {
		return utils.Error(c, "content is required", fiber.StatusBadRequest)
	}

	saved, err := h.contentSvc.Save(req.Content, req.Version)
	if err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return utils.Error(c, err.Error(), fiber.StatusConflict)
		}
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, saved, "Content updated successfully")
}

type MutateContentRequest struct {
	Version   int               `json:"version"`
	Mutations []json.RawMessage `json:"mutations"`
}

// ApplyContentMutations applies typed field-level patches to the current
// document instead of shipping the whole draft.
func (h *Handler) ApplyContentMutations(c *fiber.Ctx) error {
	var req MutateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if len(req.Mutations) == 0 {
		return utils.Error(c, "at least one mutation is required", fiber.StatusBadRequest)
	}

	muts := make([]services.Mutation, 0, len(req.Mutations))
	for _, raw := range req.Mutations {
		var envelope struct {
			Op string `json:"op"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return utils.Error(c, "Invalid mutation payload", fiber.StatusBadRequest)
		}

		m, err := services.DecodeMutation(envelope.Op, raw)
		if err != nil {
			return utils.Error(c, err.Error(), fiber.StatusBadRequest)
		}
		muts = append(muts, m)
	}

	saved, err := h.contentSvc.ApplyMutations(muts, req.Version)
	if err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return utils.Error(c, err.Error(), fiber.StatusConflict)
		}
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, saved, "Content updated successfully")
}

// UploadAsset stores one content asset (hero image or video, activity
// image, competition icon, gallery photo) and returns its public URL for
// the editor to fold into the draft.
func (h *Handler) UploadAsset(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, "File is required", fiber.StatusBadRequest)
	}

	if file.Size > h.cfg.MaxUploadSize {
		return utils.Error(c, "File too large", fiber.StatusBadRequest)
	}
	if err := utils.ValidateMediaFile(file); err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	category := c.FormValue("category", "flashEvent")
	switch category {
	case "flashEvent", "activities", "competitions", "gallery":
	default:
		return utils.Error(c, "Invalid asset category", fiber.StatusBadRequest)
	}

	url, err := h.saveBlob(file, category)
	if err != nil {
		return utils.Error(c, "Failed to store file", fiber.StatusInternalServerError)
	}

	return utils.Success(c, fiber.Map{"url": url}, "File uploaded successfully", fiber.StatusCreated)
}
