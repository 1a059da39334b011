package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nkarpov/bloghub/internal/events"
	"github.com/nkarpov/bloghub/internal/logging"
	"github.com/nkarpov/bloghub/internal/service"
	"github.com/nkarpov/bloghub/internal/transport"
	"github.com/nkarpov/bloghub/internal/validate"
)

// CookieMaxAge intentionally outlives both token expiries; the refresh
// endpoint exists to renew the pair while the cookies are still there.
const CookieMaxAge = 24 * time.Hour

type AuthHandler struct {
	Auth     *service.AuthService
	Producer *events.Producer
}

func CreateCookie(name, value, path string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func setSessionCookies(c echo.Context, s *service.Session) {
	c.SetCookie(CreateCookie("accessToken", s.AccessToken, "/", CookieMaxAge))
	c.SetCookie(CreateCookie("refreshToken", s.RefreshToken, "/", CookieMaxAge))
}

func clearSessionCookies(c echo.Context) {
	c.SetCookie(CreateCookie("accessToken", "", "/", -1*time.Hour))
	c.SetCookie(CreateCookie("refreshToken", "", "/", -1*time.Hour))
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req validate.RegisterInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Register(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	session, err := h.Auth.Register(ctx, req.Name, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return err
		}
	}

	h.publish(c, "user_registered", session.User.ID, session.User.Username)

	setSessionCookies(c, session)
	return c.JSON(http.StatusCreated, transport.AuthResponse{
		User: transport.NewUserDTO(session.User),
		Auth: true,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req validate.LoginInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Login(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.Auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return err
	}

	h.publish(c, "user_logged_in", session.User.ID, session.User.Username)

	setSessionCookies(c, session)
	return c.JSON(http.StatusOK, transport.AuthResponse{
		User: transport.NewUserDTO(session.User),
		Auth: true,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie("refreshToken"); err == nil {
		if err := h.Auth.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	clearSessionCookies(c)
	return c.JSON(http.StatusOK, transport.AuthResponse{User: nil, Auth: false})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie("refreshToken")
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	session, err := h.Auth.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}
		return err
	}

	setSessionCookies(c, session)
	return c.JSON(http.StatusOK, transport.AuthResponse{
		User: transport.NewUserDTO(session.User),
		Auth: true,
	})
}

func (h *AuthHandler) publish(c echo.Context, event string, userID uint, username string) {
	ctx := c.Request().Context()
	payload := map[string]any{"type": event, "user_id": userID, "username": username}
	if err := h.Producer.PublishEvent(ctx, username, payload); err != nil {
		logging.FromContext(ctx).Warn("event not published", "type", event, "error", err)
	}
}
