// Package user holds the account entity used for authentication and project
// ownership.
package user

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
)

const bcryptCost = 10

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^\w+$`)
)

type User struct {
	id           string
	email        string
	username     string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
}

type Record struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Register validates the input and hashes the password.
func Register(email, username, password string) (*User, error) {
	email = NormalizeEmail(email)
	username = strings.TrimSpace(username)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, "user.register", "hash password", err)
	}
	now := time.Now().UTC()
	return &User{
		id:           uuid.NewString(),
		email:        email,
		username:     username,
		passwordHash: string(hash),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func Restore(r Record) *User {
	return &User{
		id:           r.ID,
		email:        r.Email,
		username:     r.Username,
		passwordHash: r.PasswordHash,
		createdAt:    r.CreatedAt,
		updatedAt:    r.UpdatedAt,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if email == "" {
		return domainagg.Validation("email", "email cannot be empty")
	}
	if utf8.RuneCountInString(email) > 255 {
		return domainagg.Validation("email", "email cannot exceed 255 characters")
	}
	if !emailPattern.MatchString(email) {
		return domainagg.Validation("email", "email format is invalid")
	}
	return nil
}

func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < 2 || n > 50 {
		return domainagg.Validation("username", "username must be between 2 and 50 characters")
	}
	if !usernamePattern.MatchString(username) {
		return domainagg.Validation("username", "username may only contain letters, digits and underscores")
	}
	return nil
}

func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < 6 || n > 100 {
		return domainagg.Validation("password", "password must be between 6 and 100 characters")
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return domainagg.Validation("password", "password must contain both letters and digits")
	}
	return nil
}

func (u *User) ID() string           { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) Username() string     { return u.username }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

func (u *User) Record() Record {
	return Record{
		ID:           u.id,
		Email:        u.email,
		Username:     u.username,
		PasswordHash: u.passwordHash,
		CreatedAt:    u.createdAt,
		UpdatedAt:    u.updatedAt,
	}
}
