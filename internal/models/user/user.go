package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mnuddindev/routinely/pkg/utils"
	"gorm.io/gorm"
)

var validate = utils.NewValidator()

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Username  string `gorm:"size:150;not null;uniqueIndex:idx_user_username" json:"username"`
	Email     string `gorm:"size:254;not null" json:"-"`
	Password  string `gorm:"size:255;not null" json:"-"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
}

// RegisterInput is the sign up form.
type RegisterInput struct {
	FirstName string `json:"first_name" validate:"person_name"`
	LastName  string `json:"last_name" validate:"person_name"`
	Username  string `json:"username" validate:"username"`
	Email     string `json:"email" validate:"email_shape"`
	Password  string `json:"password" validate:"password"`
}

// Account is the signed in user's own view of their record. Email is
// only rendered here, never on embedded or listed users.
type Account struct {
	User
	Email string `json:"email"`
}

// Account returns the private view of u for its owner.
func (u *User) Account() Account {
	return Account{User: *u, Email: u.Email}
}

// UserOption configures a User.
type UserOption func(*User)

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// NewUser creates a User with an already hashed password.
func NewUser(ctx context.Context, db *gorm.DB, username, email, hashedPassword string, opts ...UserOption) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "user creation canceled")
	}

	u := &User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}
	for _, opt := range opts {
		opt(u)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to check username")
		}
		if count > 0 {
			return utils.NewError(utils.ErrConflict.Code, "Username already exists")
		}
		if err := tx.Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.NewError(utils.ErrConflict.Code, "Username already exists")
			}
			return utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to create user in database")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Register validates the sign up form, hashes the password and stores the user.
func Register(ctx context.Context, db *gorm.DB, in RegisterInput) (*User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if verr := validate.Validate(in); verr != nil {
		return nil, utils.NewValidationError(verr)
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to process password")
	}

	return NewUser(ctx, db, in.Username, in.Email, hashed, WithName(in.FirstName, in.LastName))
}

// Authenticate returns the user whose username and password match.
func Authenticate(ctx context.Context, db *gorm.DB, username, password string) (*User, error) {
	u, err := GetUserBy(ctx, db, "username = ?", []interface{}{username})
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.NewError(utils.ErrUnauthorized.Code, "Username and password did not match")
		}
		return nil, err
	}
	if !u.CheckPassword(password) {
		return nil, utils.NewError(utils.ErrUnauthorized.Code, "Username and password did not match")
	}
	return u, nil
}

// GetUserBy retrieves a user by condition, with optional preloading of relationships.
func GetUserBy(ctx context.Context, db *gorm.DB, condition string, args []interface{}, preload ...string) (*User, error) {
	var u User
	query := db.WithContext(ctx).Where(condition, args...)
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewError(utils.ErrNotFound.Code, "User not found")
		}
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get user")
	}
	return &u, nil
}

// ListUsers returns users ordered by username.
func ListUsers(ctx context.Context, db *gorm.DB, offset, limit int) ([]User, error) {
	var users []User
	if err := db.WithContext(ctx).Order("username asc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, utils.WrapError(err, utils.ErrInternalServerError.Code, "Failed to get users")
	}
	return users, nil
}
