package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nkarpov/bloghub/internal/repo"
	"github.com/nkarpov/bloghub/internal/tokens"
	"github.com/nkarpov/bloghub/internal/transport"
)

// Gate guards protected routes. Both cookies must be present and the
// access token must verify; an expired access token is rejected, never
// silently refreshed. The resolved user projection lands in the echo
// context for downstream handlers.
type Gate struct {
	Codec *tokens.Codec
	Users *repo.UserRepo
}

func (g *Gate) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessCookie, err := c.Cookie("accessToken")
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}
		if _, err := c.Cookie("refreshToken"); err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}

		userID, err := g.Codec.VerifyAccessToken(accessCookie.Value)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}

		user, err := g.Users.ByID(userID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			return err
		}

		c.Set("user", transport.NewUserDTO(user))
		c.Set("userID", user.ID)
		return next(c)
	}
}

// UserFrom pulls the projection the gate attached, nil when absent.
func UserFrom(c echo.Context) *transport.UserDTO {
	if u, ok := c.Get("user").(*transport.UserDTO); ok {
		return u
	}
	return nil
}
