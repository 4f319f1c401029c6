package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qutha/yamdb-final/internal/config"
	"github.com/qutha/yamdb-final/internal/models"
	"github.com/qutha/yamdb-final/internal/repository"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

// MockCodeRepository mocks the CodeRepository interface
type MockCodeRepository struct {
	mock.Mock
}

func (m *MockCodeRepository) Save(ctx context.Context, userID, codeHash string) error {
	args := m.Called(ctx, userID, codeHash)
	return args.Error(0)
}

func (m *MockCodeRepository) Get(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockCodeRepository) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockMailer mocks the Mailer interface
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret-test-secret-test-secret",
		AccessTokenTTL: time.Hour,
	}
}

func testAuthService(userRepo *MockUserRepository, codeRepo *MockCodeRepository, mailer *MockMailer) AuthService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthService(userRepo, codeRepo, mailer, testConfig(), logger)
}

func TestSignup_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	codeRepo := new(MockCodeRepository)
	mailer := new(MockMailer)
	svc := testAuthService(userRepo, codeRepo, mailer)

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	codeRepo.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
	mailer.On("Send", "alice@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

	user, err := svc.Signup(context.Background(), "alice", "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	userRepo.AssertExpectations(t)
	codeRepo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestSignup_ReservedUsername(t *testing.T) {
	svc := testAuthService(new(MockUserRepository), new(MockCodeRepository), new(MockMailer))

	user, err := svc.Signup(context.Background(), "me", "me@example.com")

	assert.Nil(t, user)
	verr := AsValidationError(err)
	assert.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "username")
}

func TestSignup_UsernameTakenByAnotherEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := testAuthService(userRepo, new(MockCodeRepository), new(MockMailer))

	userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&models.User{ID: "u1", Username: "alice", Email: "other@example.com"}, nil)

	user, err := svc.Signup(context.Background(), "alice", "alice@example.com")

	assert.Nil(t, user)
	verr := AsValidationError(err)
	assert.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "username")
}

func TestSignup_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := testAuthService(userRepo, new(MockCodeRepository), new(MockMailer))

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(&models.User{ID: "u2", Username: "bob", Email: "alice@example.com"}, nil)

	user, err := svc.Signup(context.Background(), "alice", "alice@example.com")

	assert.Nil(t, user)
	verr := AsValidationError(err)
	assert.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "email")
}

func TestSignup_PendingUserGetsFreshCode(t *testing.T) {
	userRepo := new(MockUserRepository)
	codeRepo := new(MockCodeRepository)
	mailer := new(MockMailer)
	svc := testAuthService(userRepo, codeRepo, mailer)

	existing := &models.User{ID: "u1", Username: "alice", Email: "alice@example.com", Role: models.RoleUser}
	userRepo.On("FindByUsername", mock.Anything, "alice").Return(existing, nil)
	codeRepo.On("Save", mock.Anything, "u1", mock.AnythingOfType("string")).Return(nil)
	mailer.On("Send", "alice@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

	user, err := svc.Signup(context.Background(), "alice", "alice@example.com")

	assert.NoError(t, err)
	assert.Equal(t, existing, user)
	// no Create call: the record is reused, only the code is re-issued
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	codeRepo.AssertExpectations(t)
}

func TestSignup_MailFailureIsBestEffort(t *testing.T) {
	userRepo := new(MockUserRepository)
	codeRepo := new(MockCodeRepository)
	mailer := new(MockMailer)
	svc := testAuthService(userRepo, codeRepo, mailer)

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	codeRepo.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.Signup(context.Background(), "alice", "alice@example.com")

	assert.NoError(t, err, "a failed send must not fail the signup")
}

func TestIssueToken_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	codeRepo := new(MockCodeRepository)
	svc := testAuthService(userRepo, codeRepo, new(MockMailer))

	user := &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-code"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	codeRepo.On("Get", mock.Anything, "u1").Return(string(hash), nil)
	codeRepo.On("Invalidate", mock.Anything, "u1").Return(nil)

	token, err := svc.IssueToken(context.Background(), "alice", "secret-code")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", userID)

	// the code is single use
	codeRepo.AssertCalled(t, "Invalidate", mock.Anything, "u1")
}

func TestIssueToken_WrongCode(t *testing.T) {
	userRepo := new(MockUserRepository)
	codeRepo := new(MockCodeRepository)
	svc := testAuthService(userRepo, codeRepo, new(MockMailer))

	user := &models.User{ID: "u1", Username: "alice"}
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-code"), bcrypt.DefaultCost)

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	codeRepo.On("Get", mock.Anything, "u1").Return(string(hash), nil)

	token, err := svc.IssueToken(context.Background(), "alice", "wrong-code")

	assert.Empty(t, token, "no token may be issued for a wrong code")
	verr := AsValidationError(err)
	assert.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "confirmation_code")
	codeRepo.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestIssueToken_NoPendingCode(t *testing.T) {
	userRepo := new(MockUserRepository)
	codeRepo := new(MockCodeRepository)
	svc := testAuthService(userRepo, codeRepo, new(MockMailer))

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(&models.User{ID: "u1"}, nil)
	codeRepo.On("Get", mock.Anything, "u1").Return("", repository.ErrCodeNotFound)

	token, err := svc.IssueToken(context.Background(), "alice", "anything")

	assert.Empty(t, token)
	assert.NotNil(t, AsValidationError(err))
}

func TestIssueToken_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := testAuthService(userRepo, new(MockCodeRepository), new(MockMailer))

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	token, err := svc.IssueToken(context.Background(), "ghost", "anything")

	assert.Empty(t, token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetCode_EmailMismatch(t *testing.T) {
	userRepo := new(MockUserRepository)
	codeRepo := new(MockCodeRepository)
	svc := testAuthService(userRepo, codeRepo, new(MockMailer))

	userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}, nil)

	err := svc.ResetCode(context.Background(), "alice", "wrong@example.com")

	// generic not-found: the response must not say which field failed
	assert.ErrorIs(t, err, ErrNotFound)
	codeRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetCode_Match(t *testing.T) {
	userRepo := new(MockUserRepository)
	codeRepo := new(MockCodeRepository)
	mailer := new(MockMailer)
	svc := testAuthService(userRepo, codeRepo, mailer)

	userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}, nil)
	codeRepo.On("Save", mock.Anything, "u1", mock.AnythingOfType("string")).Return(nil)
	mailer.On("Send", "alice@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)

	err := svc.ResetCode(context.Background(), "alice", "alice@example.com")

	assert.NoError(t, err)
	codeRepo.AssertExpectations(t)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := testAuthService(new(MockUserRepository), new(MockCodeRepository), new(MockMailer))

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsNonAccessTokens(t *testing.T) {
	svc := testAuthService(new(MockUserRepository), new(MockCodeRepository), new(MockMailer))

	// A correctly signed token of any other kind must not authenticate.
	claims := jwt.MapClaims{
		"user_id":  "u1",
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
		"type":     "refresh",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testConfig().JWTSecret))
	assert.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
