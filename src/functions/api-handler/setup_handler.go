package main

import (
	"io/ioutil"
	"net/http"

	"github.com/agendaun/user-setup/src/setup"
	"github.com/gin-gonic/gin"
)

// postSetupHandler seeds the user named by the webhook body.
func postSetupHandler(c *gin.Context) {
	body, err := ioutil.ReadAll(c.Request.Body)
	if err != nil {
		setup.ReportError(err)
		respondWithError(c, &Error{
			Status: http.StatusBadRequest,
			Title:  "Bad Request",
			Detail: "Failed to read the request body",
			Code:   errCodeBadRequest,
		})
		return
	}

	response := getAPIStack().service.Handle(c.Request.Context(), body)
	c.JSON(statusFor(response), response)
}

// postSetupSelfHandler seeds the user the token was issued for.
func postSetupSelfHandler(c *gin.Context) {
	response := getAPIStack().service.HandleInput(c.Request.Context(), setup.Input{
		UserID: c.GetString(contextSubjectKey),
	})
	c.JSON(statusFor(response), response)
}
