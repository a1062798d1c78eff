package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mentorlink/mentorlink-backend/internal/config"
	"github.com/mentorlink/mentorlink-backend/internal/models"
	"github.com/mentorlink/mentorlink-backend/internal/storage"
	"github.com/mentorlink/mentorlink-backend/internal/utils"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	store storage.Store
	cfg   *config.Config
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(store storage.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{store: store, cfg: cfg}
}

// Register creates a new user account and returns a token.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var reg models.UserRegistration
	if err := c.BodyParser(&reg); err != nil {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body")
	}
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		return Error(c, fiber.StatusBadRequest, "ERR_MISSING_FIELDS", "Name, email and password are required")
	}

	if _, err := h.store.GetUserByEmail(reg.Email); err == nil {
		return Error(c, fiber.StatusBadRequest, "ERR_EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := h.store.CreateUser(&models.User{
		Name:         reg.Name,
		Email:        reg.Email,
		Phone:        reg.Phone,
		PasswordHash: utils.HashPassword(reg.Password),
	})
	if err != nil {
		return RenderError(c, err)
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusCreated, fiber.Map{"token": token, "user": user})
}

// Login verifies credentials and returns a token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var login models.UserLogin
	if err := c.BodyParser(&login); err != nil {
		return Error(c, fiber.StatusBadRequest, "ERR_INVALID_BODY", "Invalid request body")
	}
	if login.Email == "" || login.Password == "" {
		return Error(c, fiber.StatusBadRequest, "ERR_MISSING_FIELDS", "Email and password are required")
	}

	user, err := h.store.GetUserByEmail(login.Email)
	if err != nil || user.PasswordHash != utils.HashPassword(login.Password) {
		return Error(c, fiber.StatusUnauthorized, "ERR_BAD_CREDENTIALS", "Email or password is incorrect")
	}

	now := time.Now()
	user.LastSeenAt = &now
	if err := h.store.UpdateUser(user); err != nil {
		return RenderError(c, err)
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		return RenderError(c, err)
	}
	return Results(c, fiber.StatusOK, fiber.Map{"token": token, "user": user})
}

func (h *AuthHandler) issueToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Duration(h.cfg.TokenTTLHours) * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
