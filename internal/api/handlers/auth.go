package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movie-reviews-backend/internal/services"
	"movie-reviews-backend/internal/utils"
)

const sessionCookieMaxAge = 24 * 60 * 60

type AuthHandler struct {
	provider   services.IdentityProvider
	cookieName string
}

func NewAuthHandler(provider services.IdentityProvider, cookieName string) *AuthHandler {
	return &AuthHandler{provider: provider, cookieName: cookieName}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "signup requires username, password and email")
		return
	}

	if err := h.provider.SignUp(c.Request.Context(), req.Username, req.Password, req.Email); err != nil {
		utils.SendError(c, err)
		return
	}

	utils.SendMessage(c, http.StatusOK, "Signup successful. Check your email for a confirmation code.")
}

func (h *AuthHandler) ConfirmSignup(c *gin.Context) {
	var req services.ConfirmSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "confirmation requires username and code")
		return
	}

	if err := h.provider.ConfirmSignUp(c.Request.Context(), req.Username, req.Code); err != nil {
		utils.SendError(c, err)
		return
	}

	utils.SendMessage(c, http.StatusOK, "Account confirmed. You can now sign in.")
}

// Signin authenticates against the identity provider and plants the session
// cookie the review API's authorizer consumes.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req services.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "signin requires username and password")
		return
	}

	token, err := h.provider.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.SendError(c, err)
		return
	}

	c.SetCookie(h.cookieName, token, sessionCookieMaxAge, "/", "", false, true)
	utils.SendMessage(c, http.StatusOK, "Signed in.")
}

func (h *AuthHandler) Signout(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	utils.SendMessage(c, http.StatusOK, "Signed out.")
}
