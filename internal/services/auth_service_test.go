// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/bookswap/bookswap-api/internal/config"
	"github.com/bookswap/bookswap-api/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = openTestDB(suite.T())

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	suite.service = NewAuthService(suite.db, cfg)
}

func (suite *AuthServiceTestSuite) register(email string) *AuthResponse {
	resp, err := suite.service.Register(&RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
	})
	assert.NoError(suite.T(), err)
	return resp
}

func (suite *AuthServiceTestSuite) TestRegister() {
	resp := suite.register("new@example.com")

	assert.NotEmpty(suite.T(), resp.AccessToken)
	assert.NotEmpty(suite.T(), resp.RefreshToken)
	assert.Equal(suite.T(), "Bearer", resp.TokenType)
	assert.Equal(suite.T(), 3600, resp.ExpiresIn)
	assert.Equal(suite.T(), "new@example.com", resp.User.Email)
	assert.Empty(suite.T(), resp.User.LastLoginAt)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), resp.User.ID.String(), claims.UserID)
}

func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	suite.register("dup@example.com")

	_, err := suite.service.Register(&RegisterRequest{
		Name:     "Impostor",
		Email:    "dup@example.com",
		Password: "password456",
	})
	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
}

func (suite *AuthServiceTestSuite) TestRegisterShortPassword() {
	_, err := suite.service.Register(&RegisterRequest{
		Name:     "Test User",
		Email:    "short@example.com",
		Password: "short",
	})
	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	suite.register("login@example.com")

	resp, err := suite.service.Login(&LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), resp.AccessToken)
	assert.NotNil(suite.T(), resp.User.LastLoginAt)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	suite.register("wrongpass@example.com")

	_, err := suite.service.Login(&LoginRequest{
		Email:    "wrongpass@example.com",
		Password: "not-the-password",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	_, err := suite.service.Login(&LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestRefresh() {
	registered := suite.register("refresh@example.com")

	resp, err := suite.service.Refresh(registered.RefreshToken)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), registered.User.ID, resp.User.ID)
	assert.NotEmpty(suite.T(), resp.AccessToken)
}

func (suite *AuthServiceTestSuite) TestRefreshWithGarbageToken() {
	_, err := suite.service.Refresh("not-a-token")
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestChangePassword() {
	registered := suite.register("change@example.com")

	err := suite.service.ChangePassword(registered.User.ID, &ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "password456",
	})
	assert.NoError(suite.T(), err)

	// Old password no longer valid, new one is.
	_, err = suite.service.Login(&LoginRequest{
		Email:    "change@example.com",
		Password: "password123",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "change@example.com",
		Password: "password456",
	})
	assert.NoError(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestChangePasswordWrongCurrent() {
	registered := suite.register("stubborn@example.com")

	err := suite.service.ChangePassword(registered.User.ID, &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "password456",
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
