package main

import (
	"context"
	"sync"

	"github.com/agendaun/user-setup/src/setup"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/maddiesch/serverless/amazon"
)

type apiStack struct {
	service    *setup.Service
	signingKey []byte
}

var (
	apiStackInstance      *apiStack
	apiStackInstanceSetup sync.Once
)

func getAPIStack() *apiStack {
	apiStackInstanceSetup.Do(func() {
		ctx := context.Background()
		cfg := setup.LoadConfig()

		service, err := setup.New(ctx, cfg)
		if err != nil {
			setup.ReportError(err)
			service = setup.Failed(cfg, err)
		}

		apiStackInstance = &apiStack{service: service}

		secrets, err := setup.FetchSecrets(ctx, ssm.New(amazon.BaseSession()), setup.SecretNamesFromEnv())
		if err != nil {
			setup.ReportError(err)
			return
		}
		if secrets.HookSecret != "" {
			apiStackInstance.signingKey = []byte(secrets.HookSecret)
		}
	})
	return apiStackInstance
}

func presetNames() []string {
	return setup.PresetNames()
}
