package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/agendaun/user-setup/src/setup"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/maddiesch/serverless"
)

func main() {
	service := newService(context.Background())

	lambda.Start(func(ctx context.Context, request events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
		return handleRequest(ctx, service, request), nil
	})
}

func newService(ctx context.Context) *setup.Service {
	cfg := setup.LoadConfig()
	service, err := setup.New(ctx, cfg)
	if err != nil {
		setup.ReportError(err)
		return setup.Failed(cfg, err)
	}
	return service
}

func handleRequest(ctx context.Context, service *setup.Service, request events.LambdaFunctionURLRequest) events.LambdaFunctionURLResponse {
	serverless.Log("Received setup request ", request.RequestContext.RequestID)

	body := []byte(request.Body)
	if request.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(request.Body)
		if err != nil {
			return respond(setup.FailureResponse(err, service.Config().IsDevelopment()))
		}
		body = decoded
	}

	return respond(service.Handle(ctx, body))
}

func respond(response setup.Response) events.LambdaFunctionURLResponse {
	data, err := json.Marshal(response)
	if err != nil {
		setup.ReportError(err)
		return events.LambdaFunctionURLResponse{StatusCode: http.StatusInternalServerError}
	}

	return events.LambdaFunctionURLResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}
