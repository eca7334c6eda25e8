package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	errSignUpFailed       = "Failed to sign up user"
	errSignInFailed       = "Failed to sign in user"
	errInvalidCredentials = "Invalid username or password"
	msgSignOut            = "Sign out successful"
)

// Single, shared credentials payload for both signup and signin.
// Shape rules mirror the service-level checks so malformed input never
// reaches storage.
type authCredentials struct {
	Username string `json:"username" binding:"required,min=4,max=20"`
	Password string `json:"password" binding:"required,min=8"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a
// 400 with structured field errors on failure. Returns false if the request
// was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	if h.log != nil {
		h.log.Infow("bad_request_body", "err", err)
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		out := make([]fieldError, 0, len(vErrs))
		for _, fe := range vErrs {
			out = append(out, fieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": out})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	return false
}

// validationMessage renders a stable, human-readable message per failed rule.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters long"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters long"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   authCredentials  true  "Credentials"
// @Success      201   {object}  map[string]string  "token"
// @Failure      400   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.SignUp(input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_up_failed", "username", input.Username, "err", err)
		}
		// A duplicate username gets the same generic body as a validation
		// failure; the response must not reveal which constraint failed.
		if errors.Is(err, repository.ErrUsernameTaken) ||
			errors.Is(err, service.ErrUsernameLength) ||
			errors.Is(err, service.ErrPasswordTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errSignUpFailed})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errSignUpFailed})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string  "token"
// @Failure      400   {object}  map[string]string
// @Router       /auth/signin [post]
func (h *Handler) signIn(c *gin.Context) {
	var input authCredentials
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(input.Username, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_in_failed", "username", input.Username, "err", err)
		}
		// Unknown user and wrong password must be indistinguishable.
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrInvalidPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCredentials})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errSignInFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Sign out
// @Description  Tokens are stateless and cannot be revoked; this is a client-facing acknowledgement only.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string  "message"
// @Router       /auth/signout [post]
func (h *Handler) signOut(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": msgSignOut})
}
