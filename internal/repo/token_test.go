package repo

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nkarpov/bloghub/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}, &models.Blog{}, &models.Comment{}))
	return db
}

func TestTokenPutUpsertsByUser(t *testing.T) {
	repo := &TokenRepo{DB: initTestDB(t)}

	require.NoError(t, repo.Put(1, "token-one"))
	require.NoError(t, repo.Put(1, "token-two"))

	var count int64
	require.NoError(t, repo.DB.Model(&models.RefreshToken{}).Where("user_id = ?", 1).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// the superseded token no longer matches
	_, err := repo.FindByUserAndToken(1, "token-one")
	require.ErrorIs(t, err, ErrNotFound)

	record, err := repo.FindByUserAndToken(1, "token-two")
	require.NoError(t, err)
	require.Equal(t, "token-two", record.Token)
}

func TestTokenFindRequiresBothUserAndToken(t *testing.T) {
	repo := &TokenRepo{DB: initTestDB(t)}

	require.NoError(t, repo.Put(1, "token-one"))

	_, err := repo.FindByUserAndToken(2, "token-one")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTokenDeleteByTokenIsIdempotent(t *testing.T) {
	repo := &TokenRepo{DB: initTestDB(t)}

	require.NoError(t, repo.Put(1, "token-one"))
	require.NoError(t, repo.DeleteByToken("token-one"))

	_, err := repo.FindByUserAndToken(1, "token-one")
	require.ErrorIs(t, err, ErrNotFound)

	// deleting an unknown token is a no-op
	require.NoError(t, repo.DeleteByToken("token-one"))
	require.NoError(t, repo.DeleteByToken("never-stored"))
}

func TestUserCreateTranslatesDuplicateKey(t *testing.T) {
	users := &UserRepo{DB: initTestDB(t)}

	require.NoError(t, users.Create(&models.User{
		Name: "John", Username: "johndoe", Email: "john@example.com", PasswordHash: "x",
	}))

	err := users.Create(&models.User{
		Name: "Jane", Username: "johndoe", Email: "jane@example.com", PasswordHash: "x",
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	err = users.Create(&models.User{
		Name: "Jane", Username: "janedoe", Email: "john@example.com", PasswordHash: "x",
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserUniquenessChecks(t *testing.T) {
	users := &UserRepo{DB: initTestDB(t)}

	require.NoError(t, users.Create(&models.User{
		Name: "John", Username: "johndoe", Email: "john@example.com", PasswordHash: "x",
	}))

	taken, err := users.EmailTaken("john@example.com")
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = users.UsernameTaken("johndoe")
	require.NoError(t, err)
	require.True(t, taken)

	taken, err = users.EmailTaken("other@example.com")
	require.NoError(t, err)
	require.False(t, taken)
}
