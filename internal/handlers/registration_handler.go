package handlers

import (
	"mime/multipart"

	"github.com/faruqeclypst/FLASH-MOSA/internal/models"
	"github.com/faruqeclypst/FLASH-MOSA/internal/services"
	"github.com/faruqeclypst/FLASH-MOSA/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Register handles a public registration submission. The request is
// multipart: entry fields plus the payment proof and, for school
// categories, the student document.
func (h *Handler) Register(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return utils.Error(c, "Invalid registration form", fiber.StatusBadRequest)
	}

	req := services.SubmitRegistrationRequest{
		Competition:    c.FormValue("competition"),
		Name:           c.FormValue("name"),
		Gender:         models.Gender(c.FormValue("gender")),
		BirthDate:      c.FormValue("birthDate"),
		RegistrantName: c.FormValue("registrantName"),
		TeamName:       c.FormValue("teamName"),
		TeamMembers:    form.Value["teamMembers"],
		Email:          c.FormValue("email"),
		WhatsApp:       c.FormValue("whatsapp"),
		SchoolCategory: models.SchoolCategory(c.FormValue("schoolCategory")),
		School:         c.FormValue("school"),
		City:           c.FormValue("city"),
	}

	if req.Competition == "" || req.Email == "" || req.WhatsApp == "" {
		return utils.Error(c, "competition, email and whatsapp are required", fiber.StatusBadRequest)
	}

	paymentURL, err := h.storeDocument(c, "buktiPembayaran", "registrations/payment")
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}
	req.BuktiPembayaran = paymentURL

	if req.SchoolCategory != models.CategoryUmum {
		documentURL, err := h.storeDocument(c, "ktsSuratAktif", "registrations/documents")
		if err != nil {
			return utils.Error(c, err.Error(), fiber.StatusBadRequest)
		}
		req.KTSSuratAktif = documentURL
	}

	reg, err := h.regSvc.SubmitRegistration(req)
	if err != nil {
		return utils.Error(c, err.Error(), fiber.StatusBadRequest)
	}

	return utils.Success(c, reg, "Registration submitted successfully", fiber.StatusCreated)
}

// storeDocument validates and persists one uploaded proof file, returning
// its public URL. A missing file is an error: both proofs are required
// where their category demands them.
func (h *Handler) storeDocument(c *fiber.Ctx, field, category string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, field+" file is required")
	}

	if file.Size > h.cfg.MaxUploadSize {
		return "", fiber.NewError(fiber.StatusBadRequest, "File too large")
	}
	if err := utils.ValidateDocumentFile(file); err != nil {
		return "", err
	}

	return h.saveBlob(file, category)
}

func (h *Handler) saveBlob(file *multipart.FileHeader, category string) (string, error) {
	relPath, err := utils.SaveUploadedFile(file, h.cfg.UploadDir, category, utils.BlobFilename(file.Filename))
	if err != nil {
		return "", err
	}
	return h.cfg.BaseURL + "/files/" + relPath, nil
}

// LookupRegistration is the public status check by registration code.
func (h *Handler) LookupRegistration(c *fiber.Ctx) error {
	code := c.Params("code")

	reg, err := h.regSvc.LookupByCode(code)
	if err != nil {
		return utils.Error(c, "Registration not found", fiber.StatusNotFound)
	}

	// Public view: just enough for a registrant to check their entry.
	view := fiber.Map{
		"registrationCode": reg.RegistrationCode,
		"competition":      reg.Competition,
		"name":             reg.DisplayName(),
		"status":           reg.Status,
		"registrationDate": reg.RegistrationDate,
	}

	return utils.Success(c, view, "Registration retrieved successfully")
}
