package auth_test

import (
	"fmt"
	"testing"

	"github.com/amirasaad/fintech-ledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	testutils.E2ETestSuite
	username string
}

func (s *AuthTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	s.username = s.CreateTestUser()
}

func (s *AuthTestSuite) TestRegister_Duplicate() {
	body := fmt.Sprintf(`{"username":"%s","password":"password123"}`, s.username)
	resp := s.MakeRequest(s.AccountsApp, fiber.MethodPost, "/auth/register", body, "")
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	pd := testutils.DecodeProblem(s.T(), resp)
	s.Equal("Username already taken", pd["title"])
}

func (s *AuthTestSuite) TestRegister_Validation() {
	tests := []struct {
		name string
		body string
	}{
		{"short password", `{"username":"erin","password":"short"}`},
		{"missing username", `{"password":"password123"}`},
		{"unknown field", `{"username":"erin","password":"password123","admin":true}`},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp := s.MakeRequest(s.AccountsApp, fiber.MethodPost, "/auth/register", tt.body, "")
			s.Equal(fiber.StatusBadRequest, resp.StatusCode)
			_ = resp.Body.Close()
		})
	}
}

func (s *AuthTestSuite) TestLoginRoute_BadRequest() {
	resp := s.MakeRequest(s.AccountsApp, fiber.MethodPost, "/auth/login", `{"username":123}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AuthTestSuite) TestLoginRoute_Unauthorized() {
	resp := s.MakeRequest(s.AccountsApp, fiber.MethodPost, "/auth/login", `{"username":"nobody","password":"password123"}`, "")
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	pd := testutils.DecodeProblem(s.T(), resp)
	s.Equal("Invalid username or password", pd["title"])
}

func (s *AuthTestSuite) TestLoginRoute_InvalidPassword() {
	body := fmt.Sprintf(`{"username":"%s","password":"wrongpassword"}`, s.username)
	resp := s.MakeRequest(s.AccountsApp, fiber.MethodPost, "/auth/login", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthTestSuite) TestLoginRoute_Success() {
	token := s.LoginUser(s.username)
	s.NotEmpty(token)
}

func (s *AuthTestSuite) TestLogin_SharedAcrossServices() {
	body := fmt.Sprintf(`{"username":"%s","password":"password123"}`, s.username)
	resp := s.MakeRequest(s.TransactionsApp, fiber.MethodPost, "/auth/login", body, "")
	s.Equal(fiber.StatusOK, resp.StatusCode)
	data := testutils.DecodeData[map[string]string](s.T(), resp)
	s.NotEmpty(data["token"])
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
