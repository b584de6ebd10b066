package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/maddiesch/serverless/amazon"
)

// Service handles setup invocations for a single configuration.
type Service struct {
	config      Config
	provisioner *Provisioner
	err         error
}

// New builds the service and its AWS clients from the configuration.
func New(ctx context.Context, cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewWithSession(ctx, cfg, amazon.BaseSession())
}

// NewWithSession builds the service using the passed AWS session.
func NewWithSession(ctx context.Context, cfg Config, sess client.ConfigProvider) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	preset, err := LoadPreset(cfg.Preset)
	if err != nil {
		return nil, configurationError(err)
	}

	writer, err := NewWriter(cfg.WriteStrategy, cfg.WriteConcurrency)
	if err != nil {
		return nil, configurationError(err)
	}

	provisioner := &Provisioner{
		Writer:    writer,
		Preset:    preset,
		Scheduler: NewScheduler(cfg.OffsetHours),
		Now:       time.Now,
	}

	if cfg.DryRun {
		provisioner.Store = NewMemoryStore()
	} else {
		storeConfig := aws.NewConfig()
		if cfg.Endpoint != "" {
			storeConfig = storeConfig.WithEndpoint(cfg.Endpoint)
		}

		apiKey := cfg.APIKey
		if apiKey == "" && cfg.APIKeyParameterName != "" {
			secrets, err := FetchSecrets(ctx, ssm.New(sess), SecretNames{APIKey: cfg.APIKeyParameterName})
			if err != nil {
				return nil, configurationError(err)
			}
			apiKey = secrets.APIKey
		}
		if apiKey != "" {
			creds, err := staticCredentials(apiKey)
			if err != nil {
				return nil, configurationError(err)
			}
			storeConfig = storeConfig.WithCredentials(creds)
		}

		provisioner.Store = NewDynamoStore(dynamodb.New(sess, storeConfig), cfg.Tables, cfg.ProjectID)
	}

	if cfg.UserPoolID != "" {
		provisioner.Directory = NewCognitoDirectory(cognitoidentityprovider.New(sess), cfg.UserPoolID)
	}

	return NewWithProvisioner(cfg, provisioner), nil
}

// NewWithProvisioner returns a service running the passed provisioner.
func NewWithProvisioner(cfg Config, provisioner *Provisioner) *Service {
	return &Service{config: cfg, provisioner: provisioner}
}

// Failed returns a service that reports err for every invocation.
func Failed(cfg Config, err error) *Service {
	return &Service{config: cfg, err: err}
}

// Handle runs a setup for the raw trigger payload. It always returns a
// response; failures are logged and reported in the response body.
func (s *Service) Handle(ctx context.Context, body []byte) Response {
	if err := s.ready(); err != nil {
		return s.fail(err)
	}

	input, err := ExtractInput(body)
	if err != nil {
		return s.fail(err)
	}

	return s.HandleInput(ctx, input)
}

// HandleInput runs a setup for an already decoded trigger.
func (s *Service) HandleInput(ctx context.Context, input Input) Response {
	if err := s.ready(); err != nil {
		return s.fail(err)
	}

	summary, err := s.provisioner.Run(ctx, input)
	if err != nil {
		return s.fail(err)
	}

	return SuccessResponse(summary)
}

// Config returns the configuration the service was built with.
func (s *Service) Config() Config {
	return s.config
}

func (s *Service) ready() error {
	if s.err != nil {
		return s.err
	}
	return s.config.Validate()
}

func (s *Service) fail(err error) Response {
	reportError(err)
	return FailureResponse(err, s.config.IsDevelopment())
}

func configurationError(err error) *Failure {
	return &Failure{
		Reason: "invalid configuration",
		Code:   CodeConfigurationMissing,
		Err:    err,
	}
}

func staticCredentials(apiKey string) (*credentials.Credentials, error) {
	parts := strings.SplitN(apiKey, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("api key must have the form <access key id>:<secret access key>")
	}
	return credentials.NewStaticCredentials(parts[0], parts[1], ""), nil
}
