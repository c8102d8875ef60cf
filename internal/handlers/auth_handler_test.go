package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/faruqeclypst/FLASH-MOSA/internal/config"
	"github.com/faruqeclypst/FLASH-MOSA/internal/models"
	"github.com/faruqeclypst/FLASH-MOSA/internal/repositories"
	"github.com/faruqeclypst/FLASH-MOSA/internal/services"
	"github.com/faruqeclypst/FLASH-MOSA/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, fmt.Errorf("user not found with email: %s", email)
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(id string) (*models.User, error) {
	for _, user := range f.users {
		if user.ID.String() == id {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user not found with ID: %s", id)
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error {
	f.users[user.Email] = user
	return nil
}

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	hash, err := utils.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash seed password: %v", err)
	}
	admin := &models.User{ID: uuid.New(), Email: "admin@flashmosa.com", Password: hash}

	repo := &repositories.Repository{
		UserRepo: &fakeUserRepo{users: map[string]*models.User{admin.Email: admin}},
	}
	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewHandler(services.NewAuthService(repo, cfg), nil, nil, nil, cfg)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	handler.RegisterRoutes(app.Group("/api/v1"))
	return app
}

func postLogin(t *testing.T, app *fiber.App, body string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

func TestLoginReturnsToken(t *testing.T) {
	app := newAuthApp(t)

	status, raw := postLogin(t, app, `{"email":"admin@flashmosa.com","password":"admin123"}`)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, body = %s", status, raw)
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success || envelope.Data.Token == "" {
		t.Errorf("login did not return a token: %s", raw)
	}
}

func TestLoginRejectsBadRequests(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed email", `{"email":"not-an-email","password":"admin123"}`, fiber.StatusBadRequest},
		{"missing password", `{"email":"admin@flashmosa.com"}`, fiber.StatusBadRequest},
		{"wrong password", `{"email":"admin@flashmosa.com","password":"wrong-pass"}`, fiber.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newAuthApp(t)
			status, raw := postLogin(t, app, tc.body)
			if status != tc.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", status, tc.wantStatus, raw)
			}
		})
	}
}
