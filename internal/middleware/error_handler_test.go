package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"snapspend-api/internal/errors"
	"snapspend-api/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// ErrorHandlerTestSuite defines the test suite for the custom HTTP error handler
type ErrorHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.HTTPErrorHandler = CustomHTTPErrorHandler
}

func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) handleError(err error) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/receipts/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	CustomHTTPErrorHandler(err, c)
	return rec
}

func (s *ErrorHandlerTestSuite) decode(rec *httptest.ResponseRecorder) errors.ErrorResponse {
	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *ErrorHandlerTestSuite) TestHandlesEchoNotFound() {
	rec := s.handleError(echo.NewHTTPError(http.StatusNotFound, "Not Found"))

	s.Equal(http.StatusNotFound, rec.Code)
	resp := s.decode(rec)
	s.Equal("RECEIPT_001", resp.Error.Code)
}

func (s *ErrorHandlerTestSuite) TestHandlesEchoUnauthorized() {
	rec := s.handleError(echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized"))

	s.Equal(http.StatusUnauthorized, rec.Code)
	resp := s.decode(rec)
	s.Equal("AUTH_002", resp.Error.Code)
}

func (s *ErrorHandlerTestSuite) TestHandlesValidationErrors() {
	type payload struct {
		Currency string `json:"currency" validate:"required,currency_code"`
	}
	err := validation.GetValidator().GetValidate().Struct(payload{Currency: "XYZ"})
	s.Require().Error(err)

	rec := s.handleError(err)

	s.Equal(http.StatusBadRequest, rec.Code)
	resp := s.decode(rec)
	s.Equal(string(errors.ValidationGeneral), resp.Error.Code)
	s.NotEmpty(resp.Error.Details)
}

func (s *ErrorHandlerTestSuite) TestWrapsUnknownErrors() {
	rec := s.handleError(fmt.Errorf("database exploded"))

	s.Equal(http.StatusInternalServerError, rec.Code)
	resp := s.decode(rec)
	s.Equal("SYSTEM_001", resp.Error.Code)
	s.NotContains(rec.Body.String(), "database exploded")
}
