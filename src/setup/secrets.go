package setup

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
)

// Secret contains the function secrets
type Secret struct {
	APIKey     string
	HookSecret string
}

// SecretNames holds the SSM parameter names secrets are read from.
type SecretNames struct {
	APIKey     string
	HookSecret string
}

// SecretNamesFromEnv returns the parameter names configured in the environment.
func SecretNamesFromEnv() SecretNames {
	return SecretNames{
		APIKey:     os.Getenv("SETUP_API_KEY_PARAMETER_NAME"),
		HookSecret: os.Getenv("SETUP_HOOK_SECRET_PARAMETER_NAME"),
	}
}

// FakeSecrets returns the secrets used when RETURN_FAKE_SECRETS is set.
func FakeSecrets() Secret {
	return Secret{
		APIKey:     "fake-access-key:fake-secret-key",
		HookSecret: "super-sekret",
	}
}

// FetchSecrets reads the named parameters from SSM. Empty names are skipped.
func FetchSecrets(ctx context.Context, client ssmiface.SSMAPI, names SecretNames) (Secret, error) {
	if os.Getenv("RETURN_FAKE_SECRETS") == "true" {
		return FakeSecrets(), nil
	}

	requested := []string{}
	for _, name := range []string{names.APIKey, names.HookSecret} {
		if name != "" {
			requested = append(requested, name)
		}
	}
	if len(requested) == 0 {
		return Secret{}, nil
	}

	output, err := client.GetParametersWithContext(ctx, &ssm.GetParametersInput{
		Names:          aws.StringSlice(requested),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return Secret{}, err
	}
	if len(output.InvalidParameters) > 0 {
		return Secret{}, fmt.Errorf("missing parameters: %v", aws.StringValueSlice(output.InvalidParameters))
	}

	secrets := Secret{}

	for _, param := range output.Parameters {
		switch aws.StringValue(param.Name) {
		case names.APIKey:
			secrets.APIKey = aws.StringValue(param.Value)
		case names.HookSecret:
			secrets.HookSecret = aws.StringValue(param.Value)
		default:
		}
	}

	return secrets, nil
}
