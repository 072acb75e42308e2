package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/auth"
	"github.com/AanchalGupta0502/SocialeX/internal/common"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
	"github.com/AanchalGupta0502/SocialeX/pkg/firebase"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 12

// Accounts registers and authenticates users and issues access tokens.
type Accounts struct {
	users    repositories.UserRepository
	secret   []byte
	tokenTTL time.Duration
	cost     int
}

func NewAccounts(users repositories.UserRepository, secret string, tokenTTL time.Duration) *Accounts {
	return &Accounts{users: users, secret: []byte(secret), tokenTTL: tokenTTL, cost: PasswordCost}
}

// Register creates a user with a hashed password and signs them in.
func (a *Accounts) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if _, err := a.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", common.ErrorDuplicate)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	if _, err := a.users.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", common.ErrorDuplicate)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hash),
		ProfilePic: req.ProfilePic,
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return a.issue(user)
}

// Login checks credentials. Unknown email and wrong password are reported
// identically as common.ErrorInvalidCredentials.
func (a *Accounts) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := a.users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, common.ErrorInvalidCredentials
	}
	return a.issue(user)
}

// FederatedLogin signs in the user owning the identity's email, creating an
// account on first use. Federated accounts get an unusable random password.
func (a *Accounts) FederatedLogin(ctx context.Context, id *firebase.Identity) (*models.AuthResponse, error) {
	user, err := a.users.GetUserByEmail(ctx, id.Email)
	if err == nil {
		return a.issue(user)
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	username := id.Name
	if username == "" {
		username = id.UID
	}
	if _, err := a.users.GetUserByUsername(ctx, username); err == nil {
		username = username + "-" + uuid.NewString()[:8]
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), a.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user = &models.User{Username: username, Email: id.Email, Password: string(hash)}
	if err := a.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return a.issue(user)
}

// Authenticate resolves a bearer token to its user id.
func (a *Accounts) Authenticate(token string) (string, error) {
	return auth.ParseToken(token, a.secret)
}

func (a *Accounts) issue(user *models.User) (*models.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID.Hex(), a.secret, a.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}
