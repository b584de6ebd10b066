package setup

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider/cognitoidentityprovideriface"
	"github.com/maddiesch/serverless/amazon"
)

// Contact is the contact information of a user.
type Contact struct {
	UserID string
	Email  string
}

// Directory resolves user ids to contact information.
type Directory interface {
	LookupUser(ctx context.Context, userID string) (*Contact, error)
}

// CognitoDirectory looks users up in a Cognito user pool.
type CognitoDirectory struct {
	client     cognitoidentityprovideriface.CognitoIdentityProviderAPI
	userPoolID string
}

// NewCognitoDirectory returns a directory for the passed pool.
func NewCognitoDirectory(client cognitoidentityprovideriface.CognitoIdentityProviderAPI, userPoolID string) *CognitoDirectory {
	return &CognitoDirectory{client: client, userPoolID: userPoolID}
}

// LookupUser returns the contact for the user, or ErrRecordNotFound.
func (d *CognitoDirectory) LookupUser(ctx context.Context, userID string) (*Contact, error) {
	output, err := d.client.AdminGetUserWithContext(ctx, &cognitoidentityprovider.AdminGetUserInput{
		UserPoolId: aws.String(d.userPoolID),
		Username:   aws.String(userID),
	})
	if err != nil && amazon.IsErrorCode(err, cognitoidentityprovider.ErrCodeUserNotFoundException) {
		return nil, ErrRecordNotFound
	} else if err != nil {
		return nil, err
	}

	contact := &Contact{UserID: aws.StringValue(output.Username)}
	for _, attr := range output.UserAttributes {
		if aws.StringValue(attr.Name) == "email" {
			contact.Email = aws.StringValue(attr.Value)
		}
	}

	return contact, nil
}
