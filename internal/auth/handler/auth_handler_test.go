package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nandha2804/TMS/config"
	"github.com/nandha2804/TMS/internal/auth/domain"
	"github.com/nandha2804/TMS/internal/auth/dto"
	"github.com/nandha2804/TMS/internal/auth/handler"
	"github.com/nandha2804/TMS/internal/auth/service"
	autherror "github.com/nandha2804/TMS/internal/errors"
	"github.com/nandha2804/TMS/internal/mocks"
	"github.com/nandha2804/TMS/pkg/constant"
)

const testSecret = "test-secret-key-that-is-32-chars!"

func newTestApp(t *testing.T, repo domain.UserRepository) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		BcryptCost:           bcrypt.MinCost,
		LoginMaxAttempts:     5,
		LoginRateLimitWindow: time.Hour,
	}
	tokens := service.NewTokenService(testSecret, 15*time.Minute, 168*time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	userService := service.NewUserService(repo, tokens,
		service.NewLoginThrottle(cfg.LoginMaxAttempts, cfg.LoginRateLimitWindow),
		service.NewRefreshTokenLedger(), cfg, log)

	app := fiber.New()
	handler.RegisterRoutes(app, handler.NewAuthHandler(userService))

	return app
}

func jsonRequest(method, target string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func decodeBody(t *testing.T, resp io.Reader) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp).Decode(&out))

	return out
}

func hashOf(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func TestRegisterEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	app := newTestApp(t, mockRepo)

	t.Run("success", func(t *testing.T) {
		input := dto.RegisterInput{Email: "test@example.com", Password: "Abc12345", Name: "Test User"}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := app.Test(jsonRequest("POST", "/auth/register", input))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		assert.NotEmpty(t, body["access_token"])
		assert.NotEmpty(t, body["refresh_token"])

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, input.Email, user["email"])
		assert.Equal(t, constant.RoleUser, user["role"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/auth/register", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/auth/register", dto.RegisterInput{Email: "test@example.com"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("weak password", func(t *testing.T) {
		input := dto.RegisterInput{Email: "test@example.com", Password: "abc12345", Name: "Test User"}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)

		resp, err := app.Test(jsonRequest("POST", "/auth/register", input))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate email", func(t *testing.T) {
		input := dto.RegisterInput{Email: "taken@example.com", Password: "Abc12345", Name: "Test User"}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).
			Return(&domain.User{ID: "existing", Email: input.Email}, nil)

		resp, err := app.Test(jsonRequest("POST", "/auth/register", input))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("duplicate email with trailing whitespace", func(t *testing.T) {
		// The raw value "a@b.com " is normalized before the duplicate check,
		// so this is a conflict rather than a boundary validation failure.
		input := dto.RegisterInput{Email: "a@b.com ", Password: "Abc12345", Name: "Test User"}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), "a@b.com").
			Return(&domain.User{ID: "existing", Email: "a@b.com"}, nil)

		resp, err := app.Test(jsonRequest("POST", "/auth/register", input))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("conflict beats weak password", func(t *testing.T) {
		input := dto.RegisterInput{Email: "taken@example.com", Password: "weakpass", Name: "Test User"}

		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).
			Return(&domain.User{ID: "existing", Email: input.Email}, nil)

		resp, err := app.Test(jsonRequest("POST", "/auth/register", input))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})
}

func TestLoginEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	app := newTestApp(t, mockRepo)

	user := &domain.User{
		ID:           "user-123",
		Email:        "test@example.com",
		PasswordHash: hashOf(t, "Abc12345"),
		Name:         "Test User",
		Role:         constant.RoleUser,
	}

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		resp, err := app.Test(jsonRequest("POST", "/auth/login", dto.LoginInput{Email: user.Email, Password: "Abc12345"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		assert.NotEmpty(t, body["access_token"])
		assert.NotEmpty(t, body["refresh_token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		resp, err := app.Test(jsonRequest("POST", "/auth/login", dto.LoginInput{Email: user.Email, Password: "Wrong1234"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		assert.Equal(t, autherror.ErrInvalidCredentials.Error(), body["error"])
	})

	t.Run("unknown email has identical response", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

		resp, err := app.Test(jsonRequest("POST", "/auth/login", dto.LoginInput{Email: "nobody@example.com", Password: "Abc12345"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		assert.Equal(t, autherror.ErrInvalidCredentials.Error(), body["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/auth/login", dto.LoginInput{Email: user.Email}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("throttled", func(t *testing.T) {
		email := "victim@example.com"
		mockRepo.EXPECT().GetByEmail(gomock.Any(), email).Return(nil, nil).Times(5)

		for i := 0; i < 5; i++ {
			resp, err := app.Test(jsonRequest("POST", "/auth/login", dto.LoginInput{Email: email, Password: "Wrong1234"}))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		}

		resp, err := app.Test(jsonRequest("POST", "/auth/login", dto.LoginInput{Email: email, Password: "Wrong1234"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		assert.Equal(t, autherror.ErrTooManyLoginAttempts.Error(), body["error"])
	})
}

func TestRefreshEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	app := newTestApp(t, mockRepo)

	user := &domain.User{
		ID:           "user-123",
		Email:        "test@example.com",
		PasswordHash: hashOf(t, "Abc12345"),
		Role:         constant.RoleUser,
	}

	login := func(t *testing.T) map[string]any {
		t.Helper()

		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

		resp, err := app.Test(jsonRequest("POST", "/auth/login", dto.LoginInput{Email: user.Email, Password: "Abc12345"}))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		return decodeBody(t, resp.Body)
	}

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/auth/refresh", dto.RefreshInput{}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		assert.Equal(t, "refresh token is required", body["error"])
	})

	t.Run("invalid token", func(t *testing.T) {
		resp, err := app.Test(jsonRequest("POST", "/auth/refresh", dto.RefreshInput{RefreshToken: "not-a-token"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("single use", func(t *testing.T) {
		tokens := login(t)
		refreshToken, _ := tokens["refresh_token"].(string)
		require.NotEmpty(t, refreshToken)

		mockRepo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

		resp, err := app.Test(jsonRequest("POST", "/auth/refresh", dto.RefreshInput{RefreshToken: refreshToken}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		assert.NotEmpty(t, body["access_token"])
		assert.NotContains(t, body, "refresh_token")

		// Replaying the same token is rejected without a store lookup.
		resp, err = app.Test(jsonRequest("POST", "/auth/refresh", dto.RefreshInput{RefreshToken: refreshToken}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestProfileEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	app := newTestApp(t, mockRepo)

	user := &domain.User{
		ID:           "user-123",
		Email:        "test@example.com",
		PasswordHash: hashOf(t, "Abc12345"),
		Name:         "Test User",
		Role:         constant.RoleUser,
	}

	accessTokenFor := func(t *testing.T, u *domain.User) string {
		t.Helper()

		tokens := service.NewTokenService(testSecret, 15*time.Minute, 168*time.Hour)
		accessToken, err := tokens.GenerateAccess(u)
		require.NoError(t, err)

		return accessToken
	}

	t.Run("missing header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/auth/profile", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/auth/profile", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Token abc")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)

		req := httptest.NewRequest("GET", "/auth/profile", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+accessTokenFor(t, user))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp.Body)
		assert.Equal(t, user.Email, body["email"])
		assert.Equal(t, user.Name, body["name"])
		assert.NotContains(t, body, "password")
	})

	t.Run("role changed since issuance", func(t *testing.T) {
		promoted := *user
		promoted.Role = constant.RoleAdmin
		mockRepo.EXPECT().GetByID(gomock.Any(), user.ID).Return(&promoted, nil)

		// The token still carries role "user", so it no longer matches.
		req := httptest.NewRequest("GET", "/auth/profile", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+accessTokenFor(t, user))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestListUsersEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	app := newTestApp(t, mockRepo)

	tokens := service.NewTokenService(testSecret, 15*time.Minute, 168*time.Hour)

	regular := &domain.User{ID: "user-123", Email: "user@example.com", Role: constant.RoleUser}
	admin := &domain.User{ID: "admin-123", Email: "admin@example.com", Role: constant.RoleAdmin}

	t.Run("forbidden for regular users", func(t *testing.T) {
		accessToken, err := tokens.GenerateAccess(regular)
		require.NoError(t, err)

		mockRepo.EXPECT().GetByID(gomock.Any(), regular.ID).Return(regular, nil)

		req := httptest.NewRequest("GET", "/auth/users", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+accessToken)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin sees redacted records", func(t *testing.T) {
		accessToken, err := tokens.GenerateAccess(admin)
		require.NoError(t, err)

		mockRepo.EXPECT().GetByID(gomock.Any(), admin.ID).Return(admin, nil)
		mockRepo.EXPECT().ListAll(gomock.Any()).Return([]domain.User{*regular, *admin}, nil)

		req := httptest.NewRequest("GET", "/auth/users", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+accessToken)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var users []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
		require.Len(t, users, 2)
		assert.NotContains(t, users[0], "password")
		assert.NotContains(t, users[0], "passwordHash")
	})
}
