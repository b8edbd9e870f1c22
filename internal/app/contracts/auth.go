package contracts

import (
	"context"
	"photodoc-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Login(ctx context.Context, username, password string) (*responses.Login, error)
	Logout(ctx context.Context, accessToken string) error
	CheckSession(ctx context.Context, accessToken string) (*responses.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*responses.RefreshToken, error)
}

// CredentialRepository stores one password hash per username. FindHash
// returns ("", nil) when the username has never logged in.
type CredentialRepository interface {
	FindHashByUsername(ctx context.Context, username string) (string, error)
	StoreHash(ctx context.Context, username, hash string) error
}
