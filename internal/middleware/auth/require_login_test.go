package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nkarpov/bloghub/internal/models"
	"github.com/nkarpov/bloghub/internal/repo"
	"github.com/nkarpov/bloghub/internal/tokens"
)

func newTestGate(t *testing.T) (*Gate, *models.User) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}))

	user := models.User{Name: "John", Username: "johndoe", Email: "john@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	gate := &Gate{
		Codec: tokens.NewCodec([]byte("access-secret"), []byte("refresh-secret")),
		Users: &repo.UserRepo{DB: db},
	}
	return gate, &user
}

func invoke(t *testing.T, gate *Gate, cookies ...*http.Cookie) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/blog/all", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handler := gate.RequireLogin(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return c, handler(c)
}

func requireUnauthorized(t *testing.T, err error) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestGateRequiresBothCookies(t *testing.T) {
	gate, user := newTestGate(t)

	access, err := gate.Codec.SignAccessToken(user.ID)
	require.NoError(t, err)
	refresh, err := gate.Codec.SignRefreshToken(user.ID)
	require.NoError(t, err)

	_, err = invoke(t, gate)
	requireUnauthorized(t, err)

	_, err = invoke(t, gate, &http.Cookie{Name: "accessToken", Value: access})
	requireUnauthorized(t, err)

	_, err = invoke(t, gate, &http.Cookie{Name: "refreshToken", Value: refresh})
	requireUnauthorized(t, err)
}

func TestGateAttachesUser(t *testing.T) {
	gate, user := newTestGate(t)

	access, err := gate.Codec.SignAccessToken(user.ID)
	require.NoError(t, err)
	refresh, err := gate.Codec.SignRefreshToken(user.ID)
	require.NoError(t, err)

	c, err := invoke(t, gate,
		&http.Cookie{Name: "accessToken", Value: access},
		&http.Cookie{Name: "refreshToken", Value: refresh},
	)
	require.NoError(t, err)

	dto := UserFrom(c)
	require.NotNil(t, dto)
	require.Equal(t, user.ID, dto.ID)
	require.Equal(t, "johndoe", dto.Username)
	require.Equal(t, user.ID, c.Get("userID"))
}

// An expired access token is rejected outright, even alongside a fresh
// refresh token: the gate never refreshes on the caller's behalf.
func TestGateRejectsExpiredAccessToken(t *testing.T) {
	gate, user := newTestGate(t)

	claims := jwt.RegisteredClaims{
		Subject:   "1",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(gate.Codec.AccessSecret)
	require.NoError(t, err)

	refresh, err := gate.Codec.SignRefreshToken(user.ID)
	require.NoError(t, err)

	_, err = invoke(t, gate,
		&http.Cookie{Name: "accessToken", Value: expired},
		&http.Cookie{Name: "refreshToken", Value: refresh},
	)
	requireUnauthorized(t, err)
}

func TestGateRejectsRefreshSignedAccessCookie(t *testing.T) {
	gate, user := newTestGate(t)

	refresh, err := gate.Codec.SignRefreshToken(user.ID)
	require.NoError(t, err)

	_, err = invoke(t, gate,
		&http.Cookie{Name: "accessToken", Value: refresh},
		&http.Cookie{Name: "refreshToken", Value: refresh},
	)
	requireUnauthorized(t, err)
}

func TestGateRejectsUnknownUser(t *testing.T) {
	gate, _ := newTestGate(t)

	access, err := gate.Codec.SignAccessToken(999)
	require.NoError(t, err)
	refresh, err := gate.Codec.SignRefreshToken(999)
	require.NoError(t, err)

	_, err = invoke(t, gate,
		&http.Cookie{Name: "accessToken", Value: access},
		&http.Cookie{Name: "refreshToken", Value: refresh},
	)
	requireUnauthorized(t, err)
}
