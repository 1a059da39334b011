package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler renders every error as {"message": ...}. Anything that is
// not an echo.HTTPError stays a plain 500 so internals never leak.
func Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal Server Error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
		case error:
			message = m.Error()
		default:
			if he.Message != nil {
				message = fmt.Sprint(he.Message)
			}
		}
	}

	_ = c.JSON(status, map[string]string{"message": message})
}
