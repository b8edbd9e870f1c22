package auth

import (
	"context"
	"fmt"
	"photodoc-service/internal/app/config"
	"photodoc-service/internal/app/contracts"
	"photodoc-service/internal/app/models"
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/dto/responses"
	"photodoc-service/internal/pkg/exceptions"
	"photodoc-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthUsecase authenticates clinicians against a local credential store.
// The first login for a username registers it: the presented password
// becomes the credential. Sessions live in redis behind opaque JWT access
// tokens.
type AuthUsecase struct {
	CredentialRepository contracts.CredentialRepository
	RedisRepository      contracts.RedisRepository
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
}

func NewAuthUsecase(
	credentialRepository contracts.CredentialRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	log *zap.Logger,
) contracts.AuthUsecase {
	return &AuthUsecase{
		CredentialRepository: credentialRepository,
		RedisRepository:      redisRepository,
		InternalConfig:       internalConfig,
		Log:                  log,
	}
}

func (uc *AuthUsecase) accessTokenLifetime() time.Duration {
	return time.Duration(uc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
}

func (uc *AuthUsecase) Login(ctx context.Context, username, password string) (*responses.Login, error) {
	if password == constvars.AuthSentinelPassword {
		uc.Log.Warn("authUsecase.Login sentinel password presented",
			zap.String(constvars.LoggingUsernameKey, username),
		)
		return nil, exceptions.ErrInvalidCredentials()
	}

	claimedHash := utils.HashPassword(username, password)
	storedHash, err := uc.CredentialRepository.FindHashByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if storedHash == "" {
		// First use registers the credential.
		if err := uc.CredentialRepository.StoreHash(ctx, username, claimedHash); err != nil {
			return nil, err
		}
		storedHash = claimedHash
		uc.Log.Info("authUsecase.Login registered new credential",
			zap.String(constvars.LoggingUsernameKey, username),
		)
	}

	if !utils.SecureCompare(claimedHash, storedHash) {
		uc.Log.Warn("authUsecase.Login password mismatch",
			zap.String(constvars.LoggingUsernameKey, username),
		)
		return nil, exceptions.ErrIncorrectPassword()
	}

	sessionID := uuid.New().String()
	accessToken, err := utils.GenerateJWT(sessionID, uc.InternalConfig.JWT.Secret, uc.accessTokenLifetime())
	if err != nil {
		return nil, exceptions.ErrTokenGenerate(err)
	}
	refreshToken := uuid.New().String()

	session := &models.Session{
		Username:     username,
		DisplayName:  constvars.AuthDefaultDisplayName,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	sessionKey := fmt.Sprintf(constvars.SessionKeyFormat, sessionID)
	if err := uc.RedisRepository.Set(ctx, sessionKey, session, uc.accessTokenLifetime()); err != nil {
		return nil, err
	}
	refreshKey := fmt.Sprintf(constvars.RefreshTokenKeyFormat, refreshToken)
	if err := uc.RedisRepository.Set(ctx, refreshKey, sessionID, constvars.RefreshTokenLifetimeHours*time.Hour); err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingUsernameKey, username),
	)
	return &responses.Login{
		Username:     username,
		DisplayName:  session.DisplayName,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (uc *AuthUsecase) CheckSession(ctx context.Context, accessToken string) (*responses.Session, error) {
	session, _, err := uc.loadSession(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return &responses.Session{
		Username:    session.Username,
		DisplayName: session.DisplayName,
	}, nil
}

func (uc *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*responses.RefreshToken, error) {
	refreshKey := fmt.Sprintf(constvars.RefreshTokenKeyFormat, refreshToken)
	storedValue, err := uc.RedisRepository.Get(ctx, refreshKey)
	if err != nil {
		return nil, err
	}
	if storedValue == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	var sessionID string
	if err := json.Unmarshal([]byte(storedValue), &sessionID); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	sessionKey := fmt.Sprintf(constvars.SessionKeyFormat, sessionID)
	sessionValue, err := uc.RedisRepository.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if sessionValue == "" {
		return nil, exceptions.ErrInvalidSession(nil)
	}
	var session models.Session
	if err := json.Unmarshal([]byte(sessionValue), &session); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	accessToken, err := utils.GenerateJWT(sessionID, uc.InternalConfig.JWT.Secret, uc.accessTokenLifetime())
	if err != nil {
		return nil, exceptions.ErrTokenGenerate(err)
	}
	session.AccessToken = accessToken
	if err := uc.RedisRepository.Set(ctx, sessionKey, &session, uc.accessTokenLifetime()); err != nil {
		return nil, err
	}

	return &responses.RefreshToken{AccessToken: accessToken}, nil
}

func (uc *AuthUsecase) Logout(ctx context.Context, accessToken string) error {
	session, sessionID, err := uc.loadSession(ctx, accessToken)
	if err != nil {
		return err
	}

	sessionKey := fmt.Sprintf(constvars.SessionKeyFormat, sessionID)
	if err := uc.RedisRepository.Delete(ctx, sessionKey); err != nil {
		return err
	}
	refreshKey := fmt.Sprintf(constvars.RefreshTokenKeyFormat, session.RefreshToken)
	if err := uc.RedisRepository.Delete(ctx, refreshKey); err != nil {
		return err
	}

	uc.Log.Info("authUsecase.Logout succeeded",
		zap.String(constvars.LoggingUsernameKey, session.Username),
	)
	return nil
}

func (uc *AuthUsecase) loadSession(ctx context.Context, accessToken string) (*models.Session, string, error) {
	sessionID, err := utils.ParseJWT(accessToken, uc.InternalConfig.JWT.Secret)
	if err != nil {
		return nil, "", exceptions.ErrTokenInvalidOrExpired(err)
	}

	sessionKey := fmt.Sprintf(constvars.SessionKeyFormat, sessionID)
	sessionValue, err := uc.RedisRepository.Get(ctx, sessionKey)
	if err != nil {
		return nil, "", err
	}
	if sessionValue == "" {
		return nil, "", exceptions.ErrInvalidSession(nil)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionValue), &session); err != nil {
		return nil, "", exceptions.ErrCannotParseJSON(err)
	}
	return &session, sessionID, nil
}
