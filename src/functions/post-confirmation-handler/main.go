package main

import (
	"context"

	"github.com/agendaun/user-setup/src/setup"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/maddiesch/serverless"
)

const triggerConfirmSignUp = "PostConfirmation_ConfirmSignUp"

func main() {
	cfg := setup.LoadConfig()
	service, err := setup.New(context.Background(), cfg)
	if err != nil {
		setup.ReportError(err)
		service = setup.Failed(cfg, err)
	}

	lambda.Start(func(ctx context.Context, event events.CognitoEventUserPoolsPostConfirmation) (events.CognitoEventUserPoolsPostConfirmation, error) {
		handleConfirmation(ctx, service, event)
		return event, nil
	})
}

// handleConfirmation seeds a user that just confirmed their sign up. Cognito
// expects the event back unchanged; failing the trigger would not undo the
// sign up so failures are only logged.
func handleConfirmation(ctx context.Context, service *setup.Service, event events.CognitoEventUserPoolsPostConfirmation) *setup.Response {
	if event.TriggerSource != triggerConfirmSignUp {
		serverless.Log("Ignoring trigger ", event.TriggerSource)
		return nil
	}

	response := service.HandleInput(ctx, setup.Input{
		UserID: event.UserName,
		Email:  event.Request.UserAttributes["email"],
	})
	if response.Success {
		serverless.Log("Seeded user ", event.UserName, " in pool ", event.UserPoolID)
	}

	return &response
}
