package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"public-vision-be/internal/config"
	"public-vision-be/internal/domain"
	"public-vision-be/internal/mocks"
	"public-vision-be/internal/service/auth"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: 24 * time.Hour,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults To Citizen", func(t *testing.T) {
		mockRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockRepo, testConfig())

		mockRepo.On("ExistsByEmail", ctx, "a@example.com").Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleCitizen && u.Email == "a@example.com"
		})).Return(nil).Once()

		token, err := svc.Register(ctx, domain.RegisterInput{
			Name: "Ana", Email: "a@example.com", Password: "supersecret",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, token.AccessToken)
		assert.Equal(t, domain.RoleCitizen, token.User.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid Role Rejected", func(t *testing.T) {
		svc := auth.NewService(new(mocks.UserRepository), testConfig())

		_, err := svc.Register(ctx, domain.RegisterInput{
			Name: "Ana", Email: "a@example.com", Password: "supersecret", Role: "ROOT",
		})

		assert.Error(t, err)
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		mockRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockRepo, testConfig())

		mockRepo.On("ExistsByEmail", ctx, "a@example.com").Return(true, nil).Once()

		_, err := svc.Register(ctx, domain.RegisterInput{
			Name: "Ana", Email: "a@example.com", Password: "supersecret",
		})

		assert.ErrorIs(t, err, auth.ErrEmailExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	stored := &domain.User{Email: "a@example.com", PasswordHash: string(hash), Role: domain.RoleCitizen}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockRepo, testConfig())

		mockRepo.On("GetByEmail", ctx, "a@example.com").Return(stored, nil).Once()

		token, err := svc.Login(ctx, domain.LoginInput{Email: "a@example.com", Password: "supersecret"})

		assert.NoError(t, err)
		assert.NotEmpty(t, token.AccessToken)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockRepo, testConfig())

		mockRepo.On("GetByEmail", ctx, "a@example.com").Return(stored, nil).Once()

		_, err := svc.Login(ctx, domain.LoginInput{Email: "a@example.com", Password: "wrong"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		mockRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockRepo, testConfig())

		mockRepo.On("GetByEmail", ctx, "missing@example.com").Return(nil, nil).Once()

		_, err := svc.Login(ctx, domain.LoginInput{Email: "missing@example.com", Password: "supersecret"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestValidateAccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Round Trip", func(t *testing.T) {
		mockRepo := new(mocks.UserRepository)
		svc := auth.NewService(mockRepo, testConfig())

		mockRepo.On("ExistsByEmail", ctx, mock.Anything).Return(false, nil).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		token, err := svc.Register(ctx, domain.RegisterInput{
			Name: "Ana", Email: "a@example.com", Password: "supersecret", Role: "STAFF",
		})
		assert.NoError(t, err)

		claims, err := svc.ValidateAccessToken(token.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleStaff, claims.Role)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		svc := auth.NewService(new(mocks.UserRepository), testConfig())

		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
