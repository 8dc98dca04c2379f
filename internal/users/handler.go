package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devboard-backend/internal/shared/server/middleware"
	"devboard-backend/internal/shared/server/respond"
)

// Handler exposes account endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the auth and profile routes. Routes under /auth are exempt
// from the auth middleware.
func (h *Handler) Register(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)

	api.GET("/users/me", h.me)
}

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid register request", nil)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			respond.Error(c, http.StatusConflict, "email_taken", "email already registered", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}
	respond.JSON(c, http.StatusCreated, resp)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid login request", nil)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid email or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "login failed", nil)
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) me(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "guests have no profile", nil)
		return
	}
	user, err := h.service.ByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "profile lookup failed", nil)
		return
	}
	respond.OK(c, user)
}
