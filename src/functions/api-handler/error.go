package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/agendaun/user-setup/src/setup"
	"github.com/gin-gonic/gin"
	"github.com/maddiesch/serverless"
)

const (
	errCodeInternalServerError = "internal_server_error"
	errCodeBadRequest          = "bad_request"
)

func respondWithError(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if validationErr := serverless.GetValidator().Struct(apiErr); validationErr != nil {
			panic(validationErr)
		}
		c.AbortWithStatusJSON(apiErr.Status, apiErr)
	} else {
		respondWithError(c, &Error{
			Status: http.StatusInternalServerError,
			Title:  "Internal Server Error",
			Detail: "An unknown error occurred.",
			Code:   errCodeInternalServerError,
			Meta: map[string]interface{}{
				"SubError": fmt.Sprintf("%v", err),
			},
			SubError: err,
		})
	}
}

// Error is an API response error code
type Error struct {
	Status   int                    `validate:"required,min=200,max=599"`
	Title    string                 `json:",omitempty" validate:"max=128"`
	Detail   string                 `json:",omitempty"`
	Code     string                 `json:",omitempty"`
	Meta     map[string]interface{} `json:",omitempty"`
	SubError error                  `json:"-"`
}

func (e *Error) Error() string {
	data, _ := json.Marshal(e)
	return string(data)
}

// statusFor maps a failed setup response to an HTTP status.
func statusFor(response setup.Response) int {
	switch {
	case response.Success:
		return http.StatusCreated
	case response.Error == setup.MissingUserIDMessage:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}
