package models

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type UserTestSuite struct {
	suite.Suite
}

func TestUserTestSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}

func (s *UserTestSuite) TestValidate() {
	user := &User{Email: "ana@example.com", PasswordHash: "hashed"}
	s.NoError(user.Validate())

	user.Email = "not-an-email"
	s.ErrorIs(user.Validate(), ErrInvalidEmail)

	user.Email = "ana@example.com"
	user.PasswordHash = ""
	s.ErrorIs(user.Validate(), ErrMissingHash)
}

func (s *UserTestSuite) TestFullName() {
	user := &User{Email: "ana@example.com", PasswordHash: "hashed"}
	s.Equal("ana@example.com", user.FullName())

	user.FirstName = "Ana"
	s.Equal("Ana", user.FullName())

	user.LastName = "Reyes"
	s.Equal("Ana Reyes", user.FullName())
}
