package auth

import (
	"context"
	"errors"
	"strings"

	"axiso-backend/internal/application/access"
	"axiso-backend/internal/constants"
	"axiso-backend/internal/domain"
	roles "axiso-backend/internal/pkg/constants"
	"axiso-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginInput for login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserFinder abstracts user lookup by email+password (for production GORM or test doubles).
type UserFinder interface {
	FindByEmailAndPassword(ctx context.Context, email, password string) (*domain.User, error)
}

// GormUserFinder implements UserFinder using GORM and bcrypt.
type GormUserFinder struct{ DB *gorm.DB }

func (g *GormUserFinder) FindByEmailAndPassword(ctx context.Context, email, password string) (*domain.User, error) {
	return LoginUser(ctx, g.DB, LoginInput{Email: email, Password: password})
}

// LoginUser finds user by email and verifies password.
func LoginUser(ctx context.Context, db *gorm.DB, input LoginInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var u domain.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidEmail
		}
		return nil, domain.StoreFailure("find user", err)
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return &u, nil
}

// CreateUserInput is used by the migrate command to provision staff accounts.
type CreateUserInput struct {
	Email    string
	Password string
	Fullname string
	Role     string
}

// CreateUser stores a new account with a bcrypt hash. An empty role resolves
// through DefaultRole.
func CreateUser(ctx context.Context, db *gorm.DB, in CreateUserInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}
	role := in.Role
	if role == "" {
		role = DefaultRole(email)
	}
	if !roles.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, domain.StoreFailure("check email", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	u := &domain.User{Email: email, Fullname: in.Fullname, PasswordHash: string(hash), Role: role}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, domain.StoreFailure("create user", err)
	}
	return u, nil
}

// DefaultRole is the role given to a new account: the finance mailbox gets
// finance, everyone else user.
func DefaultRole(email string) string {
	if normalizeEmail(email) == constants.FinanceEmail {
		return roles.Finance
	}
	return roles.User
}

// VerifyUser validates the session user and returns it for /me.
func VerifyUser(sessionUser interface{}) (access.Session, error) {
	s, ok := access.FromMap(sessionUser)
	if !ok {
		return access.Session{}, ErrNotAuthenticated
	}
	return s, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
