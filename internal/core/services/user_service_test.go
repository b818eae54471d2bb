package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrax/ledger-api/internal/apperrors"
	"github.com/fintrax/ledger-api/internal/core/domain"
	portssvc "github.com/fintrax/ledger-api/internal/core/ports/services"
	"github.com/fintrax/ledger-api/internal/core/services"
	"github.com/fintrax/ledger-api/internal/dto"
	"github.com/fintrax/ledger-api/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:         "Ada Lovelace",
		Email:        "Ada@Example.com",
		Password:     "correct-horse-battery",
		CurrencyCode: "eur",
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ada@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUserWithAccount", ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("domain.Account")).Return(nil).Once()

	user, account, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("ada@example.com", user.Email)
	suite.Equal(domain.RoleUser, user.Role)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))
	suite.Equal(user.UserID, account.UserID)
	suite.Equal("EUR", account.CurrencyCode)
	suite.True(account.Balance.Equal(decimal.Zero))
	suite.Equal(domain.KindUser, account.Kind)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DefaultsCurrency() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "correct-horse-battery"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ada@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUserWithAccount", ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("domain.Account")).Return(nil).Once()

	_, account, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("USD", account.CurrencyCode)
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: "u1", Email: "ada@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ada@example.com").Return(existing, nil).Once()

	user, account, err := suite.service.Register(ctx, dto.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "correct-horse-battery",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
	suite.Nil(account)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUserWithAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse-battery")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: "u1", Email: "ada@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ada@example.com").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "Ada@Example.com", "correct-horse-battery")

	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse-battery")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: "u1", Email: "ada@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ada@example.com").Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, "ada@example.com", "wrong")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmailSameError() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.Authenticate(ctx, "ghost@example.com", "anything")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.Nil(user)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
