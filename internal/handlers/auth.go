package handlers

import (
	"net/http"

	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/services"
	"github.com/AanchalGupta0502/SocialeX/pkg/firebase"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	accounts *services.Accounts
	profiles *services.Profiles
	verifier firebase.IdentityVerifier
}

// NewAuthHandler creates a new AuthHandler. verifier may be nil, in which
// case Firebase login is not offered.
func NewAuthHandler(accounts *services.Accounts, profiles *services.Profiles, verifier firebase.IdentityVerifier) *AuthHandler {
	return &AuthHandler{accounts: accounts, profiles: profiles, verifier: verifier}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/profile", h.Profile, requireAuth)
	if h.verifier != nil {
		g.POST("/firebase-login", h.FirebaseLogin)
	}
}

// Register creates an account and returns a token for it
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.accounts.Register(c.Request().Context(), req)
	if err != nil {
		return httpError(err, "User not found")
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login authenticates with email and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.accounts.Login(c.Request().Context(), req)
	if err != nil {
		return httpError(err, "User not found")
	}
	return c.JSON(http.StatusOK, resp)
}

// Profile returns the authenticated user
func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := h.profiles.FindByID(c.Request().Context(), currentUserID(c))
	if err != nil {
		return httpError(err, "User not found")
	}
	return c.JSON(http.StatusOK, user)
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// FirebaseLogin exchanges a verified Firebase ID token for a local token
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	identity, err := firebase.VerifyIdentity(ctx, h.verifier, req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	resp, err := h.accounts.FederatedLogin(ctx, identity)
	if err != nil {
		return httpError(err, "User not found")
	}
	return c.JSON(http.StatusOK, resp)
}
