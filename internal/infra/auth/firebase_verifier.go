// Package auth verifies client-issued Firebase ID tokens.
package auth

import (
	"context"

	"bodybalance/config"
	"bodybalance/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// FirebaseVerifier implements service.TokenVerifier against Firebase Auth.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier initializes the Firebase Auth client.
func NewFirebaseVerifier(ctx context.Context, cfg *config.Config) (*FirebaseVerifier, error) {
	if cfg.Firebase == nil {
		return nil, errors.New("firebase config is required")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create firebase auth client")
	}

	return &FirebaseVerifier{client: client}, nil
}

// Verify resolves an ID token to a verified identity.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (service.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return service.Identity{}, errors.Wrap(err, "failed to verify id token")
	}

	identity := service.Identity{UserID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}

	return identity, nil
}
