package main

import (
	"context"
	"os"
	"testing"

	"github.com/agendaun/user-setup/src/setup"
	"github.com/agendaun/user-setup/src/setup/setuptest"
	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Exit(setuptest.SetupAndRunTestSuite(m))
}

func confirmationEvent(trigger string) events.CognitoEventUserPoolsPostConfirmation {
	event := events.CognitoEventUserPoolsPostConfirmation{}
	event.TriggerSource = trigger
	event.UserName = setuptest.TestingUserID
	event.UserPoolID = "us-east-1_pool"
	event.Request.UserAttributes = map[string]string{
		"sub":   setuptest.TestingUserID,
		"email": "test@email.test",
	}
	return event
}

func TestHandleConfirmation(t *testing.T) {
	newService := func(t *testing.T, stub *setuptest.AWSStub) *setup.Service {
		service, err := setup.NewWithSession(context.Background(), setup.Config{
			Tables:      setup.DefaultTables("agenda"),
			UserPoolID:  "us-east-1_pool",
			OffsetHours: setup.DefaultOffsetHours,
		}, stub.Session())
		require.NoError(t, err)
		return service
	}

	t.Run("golden path", func(t *testing.T) {
		stub := setuptest.NewAWSStub()

		response := handleConfirmation(context.Background(), newService(t, stub), confirmationEvent(triggerConfirmSignUp))

		require.NotNil(t, response)
		assert.True(t, response.Success, response.Error)
		assert.Equal(t, 0, stub.Calls(setuptest.TargetAdminGetUser))

		requests := stub.Requests(setuptest.TargetPutItem)
		require.Len(t, requests, 8)
		profile := requests[0]["Item"].(map[string]interface{})
		assert.Equal(t, map[string]interface{}{"S": "test@email.test"}, profile["email"])
		assert.Equal(t, map[string]interface{}{"S": setuptest.TestingUserID}, profile["user_id"])
	})

	t.Run("forgot password is ignored", func(t *testing.T) {
		stub := setuptest.NewAWSStub()

		response := handleConfirmation(context.Background(), newService(t, stub), confirmationEvent("PostConfirmation_ConfirmForgotPassword"))

		assert.Nil(t, response)
		assert.Equal(t, 0, stub.Calls(setuptest.TargetPutItem))
	})

	t.Run("missing user name", func(t *testing.T) {
		stub := setuptest.NewAWSStub()
		event := confirmationEvent(triggerConfirmSignUp)
		event.UserName = ""

		response := handleConfirmation(context.Background(), newService(t, stub), event)

		require.NotNil(t, response)
		assert.Equal(t, setup.MissingUserIDMessage, response.Error)
		assert.Equal(t, 0, stub.Calls(setuptest.TargetPutItem))
	})
}
