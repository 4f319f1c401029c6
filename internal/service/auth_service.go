package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/qutha/yamdb-final/internal/config"
	"github.com/qutha/yamdb-final/internal/mail"
	"github.com/qutha/yamdb-final/internal/models"
	"github.com/qutha/yamdb-final/internal/repository"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// reservedUsername is claimed by the /users/me/ route and can never be
// registered.
const reservedUsername = "me"

// AuthService drives the Unregistered -> Pending -> Authenticated state
// machine: signup issues an emailed confirmation code, token exchanges it
// for a bearer access token, reset re-issues the code.
type AuthService interface {
	Signup(ctx context.Context, username, email string) (*models.User, error)
	IssueToken(ctx context.Context, username, confirmationCode string) (string, error)
	ResetCode(ctx context.Context, username, email string) error
	ValidateToken(tokenString string) (userID string, err error)
}

type authService struct {
	userRepo       repository.UserRepository
	codeRepo       repository.CodeRepository
	mailer         mail.Mailer
	log            *slog.Logger
	jwtSecret      string
	accessTokenTTL time.Duration
}

// NewAuthService wires the auth flow. All settings come from the explicit
// config object, there is no process-wide state.
func NewAuthService(
	userRepo repository.UserRepository,
	codeRepo repository.CodeRepository,
	mailer mail.Mailer,
	cfg *config.Config,
	log *slog.Logger,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		codeRepo:       codeRepo,
		mailer:         mailer,
		log:            log,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// Signup validates the registration payload, creates (or reuses) the user
// record and sends a confirmation code. Signing up again with the same
// username and email re-issues the code; the previous one stops working.
func (s *authService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	if username == reservedUsername {
		return nil, NewValidationError("username", fmt.Sprintf("Username %q is reserved.", reservedUsername))
	}

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		if existing.Email != email {
			return nil, NewValidationError("username", "A user with that username already exists.")
		}
		// Same (username, email) pair: pending registration, resend.
		if err := s.sendConfirmationCode(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, NewValidationError("email", "A user with that email already exists.")
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup may beat the pre-checks; the unique
		// constraints are the real enforcement point.
		if repository.IsUniqueViolation(err) {
			return nil, NewValidationError("username", "A user with that username or email already exists.")
		}
		return nil, err
	}

	if err := s.sendConfirmationCode(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// IssueToken verifies the confirmation code and mints a bearer access
// token. Codes are single use: a successful exchange invalidates the code.
func (s *authService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}

	codeHash, err := s.codeRepo.Get(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return "", NewValidationError("confirmation_code", "Invalid confirmation code.")
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(codeHash), []byte(confirmationCode)) != nil {
		// Generic message: do not reveal whether the username or the code
		// was wrong.
		return "", NewValidationError("confirmation_code", "Invalid confirmation code.")
	}

	if err := s.codeRepo.Invalidate(ctx, user.ID); err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

// ResetCode re-sends a confirmation code when username and email both
// match an existing user exactly.
func (s *authService) ResetCode(ctx context.Context, username, email string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if user.Email != email {
		// Do not confirm which of the two fields failed.
		return ErrNotFound
	}
	return s.sendConfirmationCode(ctx, user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
		"type":     "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// sendConfirmationCode generates a fresh single-use code, stores its hash
// (overwriting any pending code for the user) and emails the plaintext.
// Mail dispatch is best-effort: a failed send is logged, not returned.
func (s *authService) sendConfirmationCode(ctx context.Context, user *models.User) error {
	code := uuid.New().String()

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.codeRepo.Save(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	body := fmt.Sprintf("%s - your registration confirmation code", code)
	if err := s.mailer.Send(user.Email, "Registration confirmation code", body); err != nil {
		s.log.Warn("failed to send confirmation code", "username", user.Username, "error", err)
	}
	return nil
}

// ValidateToken parses and verifies a bearer access token and returns the
// user id it was minted for.
func (s *authService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	// Only access tokens authenticate requests.
	if kind, _ := claims["type"].(string); kind != "access" {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
