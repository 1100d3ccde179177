package security

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"readbooks-backend/internal/logger"
)

// idTokenVerifier is the part of the Firebase auth client used here.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type firebaseVerifier struct {
	client idTokenVerifier
}

// FirebaseOptions configures the Firebase Admin SDK app.
type FirebaseOptions struct {
	ProjectID       string
	CredentialsJSON []byte
	CredentialsFile string
}

// NewFirebaseVerifier initializes a Firebase app and verifies Firebase ID tokens with it.
func NewFirebaseVerifier(ctx context.Context, opts FirebaseOptions) (IdentityVerifier, error) {
	var clientOpts []option.ClientOption
	switch {
	case len(opts.CredentialsJSON) > 0:
		clientOpts = append(clientOpts, option.WithCredentialsJSON(opts.CredentialsJSON))
	case opts.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	var fbConfig *firebase.Config
	if opts.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: opts.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return newFirebaseVerifier(client), nil
}

func newFirebaseVerifier(client idTokenVerifier) IdentityVerifier {
	return &firebaseVerifier{client: client}
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	logger.ExternalServiceCall("firebase", "verify_id_token")
	token, err := v.client.VerifyIDToken(ctx, idToken)
	logger.ExternalServiceResult("firebase", "verify_id_token", err)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}
	name, _ := token.Claims["name"].(string)
	return &Identity{
		Subject: token.UID,
		Email:   email,
		Name:    name,
	}, nil
}
