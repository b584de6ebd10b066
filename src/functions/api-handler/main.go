package main

import (
	"github.com/agendaun/user-setup/src/setup"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/gin-gonic/gin"
	"github.com/maddiesch/serverless"
	"github.com/maddiesch/serverless/sam"
)

func main() {
	lambda.Start(serverless.LambdaHandler(func() {
		if !sam.IsLocal() && !setup.IsTest() {
			gin.SetMode(gin.ReleaseMode)
		}

		serverless.SharedApp().ConfigureGin(func(e *gin.Engine) {
			installRoutes(e)
		})
	}))
}
