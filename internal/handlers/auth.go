package handlers

import (
	"errors"
	"net/http"

	"task_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Wire messages follow the public contract: every error body is
// {"msg": "..."} so clients parse one shape everywhere.
const (
	msgRegistered     = "user added successfully."
	msgMissingFields  = "you must provide a username, email and password."
	msgMissingLogin   = "you must provide a username and password."
	msgBadCredentials = "invalid username or password"
	msgInternal       = "internal server error"
	msgUsernameTaken  = "username already taken"
	msgEmailTaken     = "this email is already linked to an account"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "Credentials"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": msgMissingFields})
		return
	}

	_, err := h.services.SignUp(input.Username, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"msg": msgUsernameTaken})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"msg": msgEmailTaken})
		case errors.Is(err, service.ErrValidation):
			// Surface the field detail the service wrapped in.
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			if h.log != nil {
				h.log.Errorw("register_failed", "username", input.Username, "err", err)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"msg": msgInternal})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": msgRegistered})
}

// @Summary      Log in and receive an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      200  {object}  map[string]string  "access_token"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": msgMissingLogin})
		return
	}

	token, err := h.services.GenerateToken(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Uniform message: never reveal whether the username or the
			// password was wrong.
			c.JSON(http.StatusUnauthorized, gin.H{"msg": msgBadCredentials})
			return
		}
		if h.log != nil {
			h.log.Errorw("login_failed", "username", input.Username, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": msgInternal})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}
