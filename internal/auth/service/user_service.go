package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nandha2804/TMS/config"
	"github.com/nandha2804/TMS/internal/auth/domain"
	"github.com/nandha2804/TMS/internal/auth/dto"
	autherror "github.com/nandha2804/TMS/internal/errors"
	"github.com/nandha2804/TMS/pkg/constant"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService orchestrates registration, login, token refresh, and bearer
// validation against the credential store.
type UserService struct {
	repo     domain.UserRepository
	tokens   TokenGenerator
	throttle *LoginThrottle
	ledger   *RefreshTokenLedger
	cfg      *config.Config
	log      *slog.Logger
}

func NewUserService(
	repo domain.UserRepository,
	tokens TokenGenerator,
	throttle *LoginThrottle,
	ledger *RefreshTokenLedger,
	cfg *config.Config,
	log *slog.Logger,
) *UserService {
	return &UserService{
		repo:     repo,
		tokens:   tokens,
		throttle: throttle,
		ledger:   ledger,
		cfg:      cfg,
		log:      log,
	}
}

// Register creates an identity record and returns a token pair for it. Role
// is always forced to "user"; the caller cannot escalate via the payload.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.TokenPairOutput, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)

	if !emailRegexp.MatchString(email) {
		return nil, autherror.NewValidation("please provide a valid email address")
	}

	// Conflict is reported before password/name policy: a taken email with a
	// weak password is a 409, not a 400.
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	if err := validateCredentials(input.Password, name); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		Role:         constant.RoleUser,
		CreatedAt:    time.Now(),
	}

	// The unique index on email is the authoritative guard against the
	// race the pre-check above cannot close.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", "email", email)

	return s.tokenPair(user)
}

// Login verifies credentials, gated by the login throttle. An unknown email
// and a wrong password produce the same failure.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenPairOutput, error) {
	email := normalizeEmail(input.Email)

	if err := s.throttle.Allow(email); err != nil {
		s.log.Warn("login blocked by throttle", "email", email)
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		s.throttle.RecordFailure(email)
		s.log.Warn("failed login attempt", "email", email)

		return nil, autherror.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		s.throttle.RecordFailure(email)
		s.log.Warn("failed login attempt", "email", email)

		return nil, autherror.ErrInvalidCredentials
	}

	s.throttle.Clear(email)

	return s.tokenPair(user)
}

// Refresh exchanges a refresh token for a new access token. Each refresh
// token is single-use: the ledger is checked before any cryptographic
// verification so revocation holds even within the token's lifetime.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.RefreshOutput, error) {
	if s.ledger.Consumed(input.RefreshToken) {
		return nil, autherror.ErrInvalidToken
	}

	claims, err := s.tokens.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Same error as a bad token; "valid token, user gone" must not leak.
		return nil, autherror.ErrInvalidToken
	}

	// Consumed before issuing: a failure past this point still burns the token.
	s.ledger.MarkConsumed(input.RefreshToken)

	accessToken, err := s.tokens.GenerateAccess(user)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshOutput{AccessToken: accessToken}, nil
}

// Authenticate validates a bearer access token and returns the current
// identity record. Claims must exactly match the stored email and role so a
// token issued before a role change cannot keep its old privileges.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrInvalidToken
	}

	if user.Email != claims.Email || user.Role != claims.Role {
		s.log.Warn("token claims mismatch", "user_id", user.ID)
		return nil, autherror.ErrInvalidToken
	}

	return user, nil
}

// ListUsers returns all identity records, redacted. Admin-only at the routes.
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserOutput, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserOutput, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserOutput(&users[i]))
	}

	return out, nil
}

func (s *UserService) tokenPair(user *domain.User) (*dto.TokenPairOutput, error) {
	accessToken, refreshToken, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserOutput(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(password, name string) error {
	if !passwordMeetsPolicy(password) {
		return autherror.NewValidation(
			"password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, and one number")
	}

	if utf8.RuneCountInString(name) < constant.MinNameLength {
		return autherror.NewValidation("name must be at least 2 characters long")
	}

	return nil
}

func passwordMeetsPolicy(password string) bool {
	if utf8.RuneCountInString(password) < constant.MinPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}
