package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type confirmBody struct {
	Confirmed *bool `json:"confirmed" validate:"required"`
}

func TestValidateBodyLetsValidRequestsThrough(t *testing.T) {
	app := fiber.New()
	reached := false
	app.Post("/login", func(c *fiber.Ctx) error {
		var req loginBody
		if err := ValidateBody(c, &req); err != nil {
			return err
		}
		reached = true
		return c.SendString(req.Email)
	})

	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":"admin@flashmosa.com","password":"admin123"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if !reached {
		t.Fatalf("handler body never ran for a valid request")
	}
	if string(body) != "admin@flashmosa.com" {
		t.Errorf("parsed body not visible to the handler: %q", body)
	}
}

func TestValidateBodyStopsInvalidRequests(t *testing.T) {
	cases := []struct {
		name string
		body string
		dest func() interface{}
	}{
		{"malformed email", `{"email":"not-an-email","password":"admin123"}`, func() interface{} { return &loginBody{} }},
		{"short password", `{"email":"admin@flashmosa.com","password":"abc"}`, func() interface{} { return &loginBody{} }},
		{"missing confirmation flag", `{}`, func() interface{} { return &confirmBody{} }},
		{"not json at all", `confirmed=yes`, func() interface{} { return &confirmBody{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			reached := false
			app.Post("/submit", func(c *fiber.Ctx) error {
				if err := ValidateBody(c, tc.dest()); err != nil {
					return err
				}
				reached = true
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("POST", "/submit", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if reached {
				t.Errorf("handler ran despite the invalid body")
			}
		})
	}
}
