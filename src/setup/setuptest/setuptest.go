// Package setuptest holds shared test helpers for the setup functions.
package setuptest

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/jarcoal/httpmock"
	"github.com/joho/godotenv"
	"github.com/maddiesch/serverless"
)

const (
	// StubEndpoint is the endpoint every stubbed AWS client talks to.
	StubEndpoint = "http://aws.stub.local"

	TargetPutItem       = "DynamoDB_20120810.PutItem"
	TargetAdminGetUser  = "AWSCognitoIdentityProviderService.AdminGetUser"
	TargetGetParameters = "AmazonSSM.GetParameters"

	TestingUserID = "6512bd43d9caa6e02c990b0a"

	TestingResponseUser = `{"Username":"6512bd43d9caa6e02c990b0a","UserAttributes":[{"Name":"sub","Value":"6512bd43d9caa6e02c990b0a"},{"Name":"email","Value":"test@email.test"}],"Enabled":true,"UserStatus":"CONFIRMED"}`
)

// FixedNow is a Wednesday, 2024-03-13 15:04:05 UTC.
var FixedNow = time.Date(2024, time.March, 13, 15, 4, 5, 0, time.UTC)

// SetupAndRunTestSuite handles all the preperation
func SetupAndRunTestSuite(m *testing.M) int {
	serverless.GetLogger().SetOutput(ioutil.Discard)

	err := SetupTestingEnvironment()
	if err != nil {
		panic(err)
	}

	return m.Run()
}

// SetupTestingEnvironment performs shared test setup
func SetupTestingEnvironment() error {
	if file := os.Getenv("TESTING_ENV_FILE"); file != "" {
		if err := godotenv.Load(file); err != nil {
			return err
		}
	}

	{ // Setup environment overrides. MUST happen after the env file
		os.Setenv("RETURN_FAKE_SECRETS", "true")
		os.Setenv("SETUP_TEST", "true")
		os.Setenv("AWS_REGION", "us-east-1")
	}

	return nil
}

// StubResponder returns the status and JSON body for a stubbed AWS call.
type StubResponder func(body map[string]interface{}) (int, string)

// AWSStub answers AWS JSON protocol requests for a stubbed session.
type AWSStub struct {
	mu        sync.Mutex
	transport *httpmock.MockTransport
	handlers  map[string]StubResponder
	requests  map[string][]map[string]interface{}
}

// NewAWSStub returns a stub where every target answers with an empty object.
func NewAWSStub() *AWSStub {
	stub := &AWSStub{
		transport: httpmock.NewMockTransport(),
		handlers:  map[string]StubResponder{},
		requests:  map[string][]map[string]interface{}{},
	}
	stub.transport.RegisterResponder("POST", StubEndpoint+"/", stub.respond)
	return stub
}

// Handle installs a responder for an X-Amz-Target.
func (s *AWSStub) Handle(target string, fn StubResponder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[target] = fn
}

// Respond answers every call to target with a fixed status and body.
func (s *AWSStub) Respond(target string, status int, body string) {
	s.Handle(target, func(map[string]interface{}) (int, string) {
		return status, body
	})
}

// Fail answers every call to target with an AWS error of the passed type.
func (s *AWSStub) Fail(target, errorType, message string) {
	body, _ := json.Marshal(map[string]string{
		"__type":  errorType,
		"message": message,
	})
	s.Respond(target, http.StatusBadRequest, string(body))
}

// Requests returns the decoded request bodies received for target.
func (s *AWSStub) Requests(target string) []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]interface{}{}, s.requests[target]...)
}

// Calls returns the number of requests received for target.
func (s *AWSStub) Calls(target string) int {
	return len(s.Requests(target))
}

// Session returns an AWS session whose clients all talk to the stub.
func (s *AWSStub) Session() *session.Session {
	return session.Must(session.NewSession(&aws.Config{
		Region:      aws.String("us-east-1"),
		Endpoint:    aws.String(StubEndpoint),
		Credentials: credentials.NewStaticCredentials("fake-access-key", "fake-secret-key", ""),
		HTTPClient:  &http.Client{Transport: s.transport},
		MaxRetries:  aws.Int(0),
	}))
}

func (s *AWSStub) respond(r *http.Request) (*http.Response, error) {
	target := r.Header.Get("X-Amz-Target")

	body := map[string]interface{}{}
	if r.Body != nil {
		data, err := ioutil.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &body); err != nil {
				return nil, err
			}
		}
	}

	s.mu.Lock()
	s.requests[target] = append(s.requests[target], body)
	handler, ok := s.handlers[target]
	s.mu.Unlock()

	status, payload := http.StatusOK, "{}"
	if ok {
		status, payload = handler(body)
	}

	response := httpmock.NewStringResponse(status, payload)
	if response.Header == nil {
		response.Header = http.Header{}
	}
	response.Header.Set("Content-Type", "application/x-amz-json-1.0")
	return response, nil
}
