package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider/cognitoidentityprovideriface"

	"movie-reviews-backend/internal/config"
	"movie-reviews-backend/internal/types"
)

// IdentityProvider is the managed identity collaborator behind the auth API.
// SignIn returns the session token the review API's authorizer later verifies.
type IdentityProvider interface {
	SignUp(ctx context.Context, username, password, email string) error
	ConfirmSignUp(ctx context.Context, username, code string) error
	SignIn(ctx context.Context, username, password string) (string, error)
}

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type ConfirmSignupRequest struct {
	Username string `json:"username" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CognitoProvider fronts a Cognito user pool using the USER_PASSWORD_AUTH flow.
type CognitoProvider struct {
	client   cognitoidentityprovideriface.CognitoIdentityProviderAPI
	clientID string
}

func NewCognitoProvider(cfg *config.Config) *CognitoProvider {
	sess := session.Must(session.NewSessionWithOptions(session.Options{
		Config:            aws.Config{Region: aws.String(cfg.AWSRegion)},
		SharedConfigState: session.SharedConfigEnable,
	}))

	return &CognitoProvider{
		client:   cognitoidentityprovider.New(sess),
		clientID: cfg.UserPoolClientID,
	}
}

func (p *CognitoProvider) SignUp(ctx context.Context, username, password, email string) error {
	_, err := p.client.SignUpWithContext(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(username),
		Password: aws.String(password),
		UserAttributes: []*cognitoidentityprovider.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	return p.translate(err)
}

func (p *CognitoProvider) ConfirmSignUp(ctx context.Context, username, code string) error {
	_, err := p.client.ConfirmSignUpWithContext(ctx, &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
	})
	return p.translate(err)
}

// SignIn authenticates the user and returns the pool's ID token, which becomes
// the session cookie value.
func (p *CognitoProvider) SignIn(ctx context.Context, username, password string) (string, error) {
	out, err := p.client.InitiateAuthWithContext(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: aws.String(cognitoidentityprovider.AuthFlowTypeUserPasswordAuth),
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]*string{
			"USERNAME": aws.String(username),
			"PASSWORD": aws.String(password),
		},
	})
	if err != nil {
		return "", p.translate(err)
	}

	if out.AuthenticationResult == nil || out.AuthenticationResult.IdToken == nil {
		return "", errors.New("no token in authentication result")
	}

	return *out.AuthenticationResult.IdToken, nil
}

// translate maps the user-caused Cognito failures onto the shared taxonomy so
// the formatter produces a 4xx instead of leaking a 500.
func (p *CognitoProvider) translate(err error) error {
	if err == nil {
		return nil
	}

	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case cognitoidentityprovider.ErrCodeUsernameExistsException,
			cognitoidentityprovider.ErrCodeInvalidPasswordException,
			cognitoidentityprovider.ErrCodeCodeMismatchException,
			cognitoidentityprovider.ErrCodeExpiredCodeException:
			return types.NewValidationError("%s", aerr.Message())
		case cognitoidentityprovider.ErrCodeNotAuthorizedException,
			cognitoidentityprovider.ErrCodeUserNotFoundException,
			cognitoidentityprovider.ErrCodeUserNotConfirmedException:
			return &types.AuthorizationError{Message: aerr.Message()}
		}
	}

	return fmt.Errorf("identity provider: %w", err)
}
