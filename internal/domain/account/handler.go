package account

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/lifevault/lifevault/internal/platform/auth"
)

type Handler struct {
	svc    *Service
	signer *auth.Signer
}

func NewHandler(svc *Service, signer *auth.Signer) *Handler {
	return &Handler{svc: svc, signer: signer}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/signup", h.SignUp)
	api.POST("/auth/signin", h.SignIn)
	api.GET("/auth/me", h.Me)

	api.GET("/profile", h.GetProfile)
	api.PUT("/profile", h.UpdateProfile)
	api.POST("/profile/change-password", h.ChangePassword)
	api.DELETE("/profile", h.DeleteAccount)
}

type credentialsResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Token string    `json:"token"`
}

func (h *Handler) SignUp(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide all required fields")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide all required fields")
	}

	u, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, ErrEmailTaken) {
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	token, err := h.signer.Issue(u.ID.String(), u.Email, u.Name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusCreated, credentialsResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Token: token,
	})
}

func (h *Handler) SignIn(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide email and password")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide email and password")
	}

	u, err := h.svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	token, err := h.signer.Issue(u.ID.String(), u.Email, u.Name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, credentialsResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Token: token,
	})
}

func (h *Handler) Me(c echo.Context) error {
	u, err := h.currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) GetProfile(c echo.Context) error {
	u, err := h.currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := h.svc.UpdateProfile(c.Request().Context(), userID, req.Name, req.Email)
	switch {
	case errors.Is(err, ErrEmailTaken):
		return echo.NewHTTPError(http.StatusBadRequest, "Email is already in use")
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update profile")
	}

	return c.JSON(http.StatusOK, u)
}

func (h *Handler) ChangePassword(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Current password and new password are required")
	}

	err = h.svc.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, ErrPasswordMismatch):
		return echo.NewHTTPError(http.StatusBadRequest, "Current password is incorrect")
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to change password")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

func (h *Handler) DeleteAccount(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete account")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

func (h *Handler) currentUser(c echo.Context) (*User, error) {
	userID, err := sessionUserID(c)
	if err != nil {
		return nil, err
	}

	u, err := h.svc.Get(c.Request().Context(), userID)
	if errors.Is(err, ErrNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return u, nil
}

func sessionUserID(c echo.Context) (uuid.UUID, error) {
	sess := auth.SessionFromContext(c.Request().Context())
	if sess == nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(sess.UserID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}
