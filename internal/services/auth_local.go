package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"movie-reviews-backend/internal/config"
	"movie-reviews-backend/internal/types"
	"movie-reviews-backend/internal/utils"
	"movie-reviews-backend/pkg/logger"
)

// LocalProvider is an in-memory identity provider for development and tests.
// It mirrors the managed pool's lifecycle (signup, emailed confirmation code,
// signin) without any AWS access, issuing HS256 session tokens instead.
type LocalProvider struct {
	mu           sync.Mutex
	users        map[string]*localUser
	jwtSecret    string
	emailService *EmailService
}

type localUser struct {
	Email        string
	PasswordHash []byte
	Code         string
	Confirmed    bool
}

func NewLocalProvider(cfg *config.Config, emailService *EmailService) *LocalProvider {
	return &LocalProvider{
		users:        make(map[string]*localUser),
		jwtSecret:    cfg.JWTSecret,
		emailService: emailService,
	}
}

func (p *LocalProvider) SignUp(ctx context.Context, username, password, email string) error {
	if !utils.IsValidEmail(email) {
		return types.NewValidationError("invalid email format")
	}
	if !utils.IsValidPassword(password) {
		return types.NewValidationError("password must be at least 8 characters")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.users[username]; exists {
		return types.NewValidationError("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateConfirmationCode()
	if err != nil {
		return fmt.Errorf("failed to generate confirmation code: %w", err)
	}

	p.users[username] = &localUser{
		Email:        utils.SanitizeString(email),
		PasswordHash: hash,
		Code:         code,
	}

	if p.emailService != nil {
		if err := p.emailService.SendConfirmationCode(email, username, code); err != nil {
			// Keep the signup; the code is still retrievable from the logs locally.
			logger.Warn("failed to send confirmation code: ", err)
			logger.Debug("confirmation code for ", username, ": ", code)
		}
	} else {
		logger.Debug("confirmation code for ", username, ": ", code)
	}

	return nil
}

func (p *LocalProvider) ConfirmSignUp(ctx context.Context, username, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	user, exists := p.users[username]
	if !exists {
		return types.NewValidationError("user not found")
	}
	if user.Code != code {
		return types.NewValidationError("invalid confirmation code")
	}

	user.Confirmed = true
	return nil
}

func (p *LocalProvider) SignIn(ctx context.Context, username, password string) (string, error) {
	// Copy the fields out under the lock; ConfirmSignUp writes Confirmed on
	// the same record, and the bcrypt compare is too slow to hold the lock for.
	p.mu.Lock()
	user, exists := p.users[username]
	var confirmed bool
	var passwordHash []byte
	if exists {
		confirmed = user.Confirmed
		passwordHash = append([]byte(nil), user.PasswordHash...)
	}
	p.mu.Unlock()

	if !exists {
		return "", &types.AuthorizationError{Message: "incorrect username or password"}
	}
	if !confirmed {
		return "", &types.AuthorizationError{Message: "user is not confirmed"}
	}
	if err := bcrypt.CompareHashAndPassword(passwordHash, []byte(password)); err != nil {
		return "", &types.AuthorizationError{Message: "incorrect username or password"}
	}

	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(p.jwtSecret))
}

func generateConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
