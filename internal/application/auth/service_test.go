package auth

import (
	"context"
	"testing"

	"axiso-backend/internal/domain"
	roles "axiso-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return db
}

func TestCreateUserAndLogin(t *testing.T) {
	db := setupAuthDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, CreateUserInput{Email: " Staff@AxisoGreen.in ", Password: "sunshine42"})
	require.NoError(t, err)
	assert.Equal(t, "staff@axisogreen.in", u.Email)
	assert.Equal(t, roles.User, u.Role)
	assert.NotEqual(t, "sunshine42", u.PasswordHash)

	got, err := LoginUser(ctx, db, LoginInput{Email: "staff@axisogreen.in", Password: "sunshine42"})
	require.NoError(t, err)
	assert.Equal(t, u.UserID, got.UserID)

	_, err = LoginUser(ctx, db, LoginInput{Email: "staff@axisogreen.in", Password: "wrong-pass1"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, err = LoginUser(ctx, db, LoginInput{Email: "nobody@axisogreen.in", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = LoginUser(ctx, db, LoginInput{})
	assert.ErrorIs(t, err, ErrEmailPasswordRequired)
}

func TestCreateUser_Rules(t *testing.T) {
	db := setupAuthDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, CreateUserInput{Email: "dhanush@axisogreen.in", Password: "ledger2024"})
	require.NoError(t, err)
	assert.Equal(t, roles.Finance, u.Role)

	_, err = CreateUser(ctx, db, CreateUserInput{Email: "dhanush@axisogreen.in", Password: "ledger2024"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = CreateUser(ctx, db, CreateUserInput{Email: "a@b.in", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = CreateUser(ctx, db, CreateUserInput{Email: "a@b.in", Password: "longenough1", Role: "root"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestVerifyUser(t *testing.T) {
	_, err := VerifyUser(nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	s, err := VerifyUser(map[string]interface{}{"user_id": "u1", "email": "a@b.in", "role": "admin"})
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
}
