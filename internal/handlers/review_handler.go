package handlers

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/faruqeclypst/FLASH-MOSA/internal/middleware"
	"github.com/faruqeclypst/FLASH-MOSA/internal/models"
	"github.com/faruqeclypst/FLASH-MOSA/internal/repositories"
	"github.com/faruqeclypst/FLASH-MOSA/internal/services"
	"github.com/faruqeclypst/FLASH-MOSA/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func reviewFilterFromQuery(c *fiber.Ctx) services.ReviewFilter {
	return services.ReviewFilter{
		Status:      c.Query("status"),
		Competition: c.Query("competition"),
		Category:    c.Query("category"),
		Search:      c.Query("search"),
		DateFrom:    c.Query("date_from"),
		DateTo:      c.Query("date_to"),
	}
}

// ListRegistrations returns one page of the filtered, sorted admin table.
func (h *Handler) ListRegistrations(c *fiber.Ctx) error {
	filter := reviewFilterFromQuery(c)
	field := services.SortField(c.Query("sort_by"))
	dir := services.SortDirection(c.Query("sort_dir", string(services.SortNone)))
	page, _ := strconv.Atoi(c.Query("page", "1"))

	result, err := h.reviewSvc.ListRegistrations(filter, field, dir, page)
	if err != nil {
		return utils.Error(c, "Failed to fetch registrations", fiber.StatusInternalServerError)
	}

	meta := &utils.Meta{
		Page:      result.Page,
		PageSize:  result.PageSize,
		Total:     int64(result.Total),
		TotalPage: result.TotalPages,
	}

	return utils.SuccessWithMeta(c, result.Registrations, meta, "Registrations retrieved successfully")
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending rejected"`
}

// ChangeRegistrationStatus persists a direct transition to pending or
// rejected. Approvals go through the two-phase approval endpoints instead.
func (h *Handler) ChangeRegistrationStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.Error(c, "Invalid registration ID", fiber.StatusBadRequest)
	}

	var req ChangeStatusRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	reg, err := h.reviewSvc.ChangeStatus(id, models.Status(req.Status))
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, reg, "Status updated successfully")
}

// BeginApproval prepares the WhatsApp notification without persisting
// anything. The client opens the returned deep link and then confirms.
func (h *Handler) BeginApproval(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.Error(c, "Invalid registration ID", fiber.StatusBadRequest)
	}

	notice, err := h.reviewSvc.BeginApproval(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return utils.Error(c, err.Error(), fiber.StatusNotFound)
		}
		return utils.Error(c, "Failed to prepare approval", fiber.StatusInternalServerError)
	}

	return utils.Success(c, notice, "Approval notification prepared")
}

type ConfirmApprovalRequest struct {
	Confirmed *bool `json:"confirmed" validate:"required"`
}

// ConfirmApproval finalizes or cancels a pending approval. Cancelling
// leaves the registration in its prior status.
func (h *Handler) ConfirmApproval(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.Error(c, "Invalid registration ID", fiber.StatusBadRequest)
	}

	var req ConfirmApprovalRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return err
	}

	reg, err := h.reviewSvc.ConfirmApproval(id, *req.Confirmed)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	message := "Approval cancelled, status unchanged"
	if *req.Confirmed {
		message = "Registration approved"
	}
	return utils.Success(c, reg, message)
}

func (h *Handler) DeleteRegistration(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.Error(c, "Invalid registration ID", fiber.StatusBadRequest)
	}

	if err := h.reviewSvc.DeleteRegistration(id); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return utils.Error(c, err.Error(), fiber.StatusNotFound)
		}
		return utils.Error(c, "Failed to delete registration", fiber.StatusInternalServerError)
	}

	return utils.Success(c, nil, "Registration deleted successfully")
}

// BulkDeleteRegistrations removes every registration and reports per-item
// results instead of pretending to be atomic.
func (h *Handler) BulkDeleteRegistrations(c *fiber.Ctx) error {
	report, err := h.reviewSvc.BulkDelete()
	if err != nil {
		return utils.Error(c, "Failed to delete registrations", fiber.StatusInternalServerError)
	}

	return utils.Success(c, report, "Bulk delete completed")
}

// ExportRegistrations streams the currently filtered set as a CSV download
// named after the active status filter.
func (h *Handler) ExportRegistrations(c *fiber.Ctx) error {
	filter := reviewFilterFromQuery(c)
	field := services.SortField(c.Query("sort_by"))
	dir := services.SortDirection(c.Query("sort_dir", string(services.SortNone)))

	var buf bytes.Buffer
	if err := h.reviewSvc.ExportCSV(&buf, filter, field, dir); err != nil {
		return utils.Error(c, "Failed to export registrations", fiber.StatusInternalServerError)
	}

	filename := services.ExportFilename(filter)
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func (h *Handler) GetStats(c *fiber.Ctx) error {
	stats, err := h.reviewSvc.Stats()
	if err != nil {
		return utils.Error(c, "Failed to fetch stats", fiber.StatusInternalServerError)
	}

	return utils.Success(c, stats, "Stats retrieved successfully")
}
