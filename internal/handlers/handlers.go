package handlers

import (
	"github.com/faruqeclypst/FLASH-MOSA/internal/config"
	"github.com/faruqeclypst/FLASH-MOSA/internal/middleware"
	"github.com/faruqeclypst/FLASH-MOSA/internal/services"
	"github.com/faruqeclypst/FLASH-MOSA/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	authSvc    *services.AuthService
	regSvc     *services.RegistrationService
	reviewSvc  *services.ReviewService
	contentSvc *services.ContentService
	cfg        *config.Config
}

func NewHandler(
	authSvc *services.AuthService,
	regSvc *services.RegistrationService,
	reviewSvc *services.ReviewService,
	contentSvc *services.ContentService,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authSvc:    authSvc,
		regSvc:     regSvc,
		reviewSvc:  reviewSvc,
		contentSvc: contentSvc,
		cfg:        cfg,
	}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	// Public routes
	auth := router.Group("/auth")
	{
		auth.Post("/login", h.Login)
	}

	router.Get("/content", h.GetContent)
	router.Post("/register", h.Register)
	router.Get("/registrations/:code", h.LookupRegistration)

	// Admin routes (JWT required)
	admin := router.Group("/admin", middleware.JWTMiddleware(h.cfg))
	{
		admin.Get("/profile", h.GetProfile)
		admin.Get("/stats", h.GetStats)

		registrations := admin.Group("/registrations")
		{
			registrations.Get("/", h.ListRegistrations)
			registrations.Get("/export", h.ExportRegistrations)
			registrations.Delete("/", h.BulkDeleteRegistrations)
			registrations.Patch("/:id/status", h.ChangeRegistrationStatus)
			registrations.Post("/:id/approval", h.BeginApproval)
			registrations.Put("/:id/approval", h.ConfirmApproval)
			registrations.Delete("/:id", h.DeleteRegistration)
		}

		content := admin.Group("/content")
		{
			content.Put("/", h.SaveContent)
			content.Post("/mutations", h.ApplyContentMutations)
			content.Post("/uploads", h.UploadAsset)
		}
	}
}

// ErrorHandler handles global errors
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		logrus.WithError(err).Error("request failed")
	}

	return utils.Error(c, message, code)
}
