package firebase

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// IdentityVerifier checks a federated ID token and returns its claims.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// App holds the initialized Firebase app and auth client
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
}

// InitFirebase initializes the Firebase app from a service account file.
func InitFirebase(ctx context.Context, credentialsPath string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, fmt.Errorf("firebase credentials file %s: %w", credentialsPath, err)
	}

	firebaseApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}
	return &App{FirebaseApp: firebaseApp, AuthClient: authClient}, nil
}

// Identity is what the service needs from a verified federated token.
type Identity struct {
	UID   string
	Email string
	Name  string
}

// VerifyIdentity verifies idToken and extracts the email and display name
// claims. Tokens without an email are rejected.
func VerifyIdentity(ctx context.Context, v IdentityVerifier, idToken string) (*Identity, error) {
	token, err := v.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("firebase token for %s carries no email", token.UID)
	}
	name, _ := token.Claims["name"].(string)
	return &Identity{UID: token.UID, Email: email, Name: name}, nil
}
