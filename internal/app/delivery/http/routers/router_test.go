package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"photodoc-service/internal/app/config"
	"photodoc-service/internal/app/delivery/http/controllers"
	"photodoc-service/internal/app/delivery/http/middlewares"
	"photodoc-service/internal/pkg/dto/responses"
	"photodoc-service/internal/pkg/exceptions"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuthUsecase struct{}

func (f *fakeAuthUsecase) Login(_ context.Context, username, password string) (*responses.Login, error) {
	if password != "correct" {
		return nil, exceptions.ErrIncorrectPassword()
	}
	return &responses.Login{Username: username, AccessToken: "valid-token", RefreshToken: "refresh"}, nil
}

func (f *fakeAuthUsecase) Logout(_ context.Context, _ string) error { return nil }

func (f *fakeAuthUsecase) CheckSession(_ context.Context, accessToken string) (*responses.Session, error) {
	if accessToken != "valid-token" {
		return nil, exceptions.ErrInvalidSession(nil)
	}
	return &responses.Session{Username: "drhouse"}, nil
}

func (f *fakeAuthUsecase) RefreshToken(_ context.Context, _ string) (*responses.RefreshToken, error) {
	return &responses.RefreshToken{AccessToken: "valid-token"}, nil
}

type fakeExchangeUsecase struct{}

func (f *fakeExchangeUsecase) Export(_ context.Context, _ string) (string, error) {
	return "ZXhwb3J0ZWQ=", nil
}

func (f *fakeExchangeUsecase) Import(_ context.Context, _, _ string) error { return nil }

type fakeSyncUsecase struct{}

func (f *fakeSyncUsecase) PushEncounter(_ context.Context, encounterID string) bool {
	return encounterID == "enc1"
}

func (f *fakeSyncUsecase) FetchPatientHistory(_ context.Context, _, _ string) bool { return true }

func newTestRouter() *chi.Mux {
	log := zap.NewNop()
	internalConfig := &config.InternalConfig{}
	internalConfig.App.EndpointPrefix = "api"
	internalConfig.App.Version = "v1"
	internalConfig.App.MaxRequests = 100

	authUsecase := &fakeAuthUsecase{}
	router := chi.NewRouter()
	SetupRoutes(router, internalConfig,
		middlewares.NewMiddlewares(log, authUsecase, internalConfig),
		controllers.NewAuthController(log, authUsecase),
		controllers.NewExchangeController(log, &fakeExchangeUsecase{}),
		controllers.NewSyncController(log, &fakeSyncUsecase{}),
	)
	return router
}

func performRequest(router *chi.Mux, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRoutes(t *testing.T) {
	router := newTestRouter()

	t.Run("Login succeeds with valid credentials", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/v1/auth/login", "",
			map[string]string{"username": "drhouse", "password": "correct"})
		require.Equal(t, http.StatusOK, recorder.Code)

		var response responses.ResponseDTO
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.True(t, response.Success)
	})

	t.Run("Login rejects a wrong password with 401", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/v1/auth/login", "",
			map[string]string{"username": "drhouse", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Login validates the request body", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/v1/auth/login", "",
			map[string]string{"username": "ab"})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Export requires authentication", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/v1/exchange/export", "",
			map[string]string{"password": "pw"})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Export succeeds behind a valid token", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/v1/exchange/export", "valid-token",
			map[string]string{"password": "pw"})
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "ZXhwb3J0ZWQ=")
	})

	t.Run("Push reports a failed sync in the body, not the status", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/v1/sync/encounters/ghost/push", "valid-token", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"synced":false`)
	})

	t.Run("Push reports success for a pushable encounter", func(t *testing.T) {
		recorder := performRequest(router, http.MethodPost, "/api/v1/sync/encounters/enc1/push", "valid-token", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"synced":true`)
	})

	t.Run("Session endpoint returns the authenticated principal", func(t *testing.T) {
		recorder := performRequest(router, http.MethodGet, "/api/v1/auth/session", "valid-token", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "drhouse")
	})
}
