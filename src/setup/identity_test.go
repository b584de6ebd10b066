package setup

import (
	"context"
	"net/http"
	"testing"

	"github.com/agendaun/user-setup/src/setup/setuptest"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCognitoDirectoryLookupUser(t *testing.T) {
	t.Run("golden path", func(t *testing.T) {
		stub := setuptest.NewAWSStub()
		stub.Respond(setuptest.TargetAdminGetUser, http.StatusOK, setuptest.TestingResponseUser)
		directory := NewCognitoDirectory(cognitoidentityprovider.New(stub.Session()), "us-east-1_pool")

		contact, err := directory.LookupUser(context.Background(), setuptest.TestingUserID)

		require.NoError(t, err)
		assert.Equal(t, setuptest.TestingUserID, contact.UserID)
		assert.Equal(t, "test@email.test", contact.Email)

		requests := stub.Requests(setuptest.TargetAdminGetUser)
		require.Len(t, requests, 1)
		assert.Equal(t, "us-east-1_pool", requests[0]["UserPoolId"])
		assert.Equal(t, setuptest.TestingUserID, requests[0]["Username"])
	})

	t.Run("unknown user", func(t *testing.T) {
		stub := setuptest.NewAWSStub()
		stub.Fail(setuptest.TargetAdminGetUser, "UserNotFoundException", "User does not exist.")
		directory := NewCognitoDirectory(cognitoidentityprovider.New(stub.Session()), "us-east-1_pool")

		_, err := directory.LookupUser(context.Background(), "nobody")

		assert.Equal(t, ErrRecordNotFound, err)
	})

	t.Run("other errors are returned", func(t *testing.T) {
		stub := setuptest.NewAWSStub()
		stub.Fail(setuptest.TargetAdminGetUser, "NotAuthorizedException", "Access denied")
		directory := NewCognitoDirectory(cognitoidentityprovider.New(stub.Session()), "us-east-1_pool")

		_, err := directory.LookupUser(context.Background(), setuptest.TestingUserID)

		require.Error(t, err)
		assert.NotEqual(t, ErrRecordNotFound, err)
		assert.Contains(t, err.Error(), "Access denied")
	})
}
