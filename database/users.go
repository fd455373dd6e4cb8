package database

import (
	"errors"
	"time"

	"github.com/anjiri1684/english_assistant/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already exists")
	ErrUsernameTaken = errors.New("username already taken")
)

func FindUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByIdentifier accepts either an email address or a username.
func FindUserByIdentifier(identifier string) (*models.User, error) {
	var user models.User
	err := DB.Where("email = ? OR username = ?", identifier, identifier).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user. Email and username are checked separately so
// the caller can report which field collided. When makeAdminIfFirst is set the
// admin flag is granted to the very first user ever created; the existence
// check and the insert share one transaction to close the cold-start window.
func CreateUser(user *models.User, makeAdminIfFirst bool) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		if makeAdminIfFirst {
			if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
				return err
			}
			user.IsAdmin = count == 0
		}

		return tx.Create(user).Error
	})
}

func SaveUser(user *models.User) error {
	return DB.Save(user).Error
}

func DeleteUser(user *models.User) error {
	return DB.Delete(user).Error
}

// ListUsers returns all users, newest first.
func ListUsers() ([]models.User, error) {
	var users []models.User
	if err := DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindUserByResetToken matches a stored reset token that has not yet expired.
func FindUserByResetToken(token string, now time.Time) (*models.User, error) {
	var user models.User
	err := DB.Where("reset_password_token = ? AND reset_password_token_expires_at > ?", token, now).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ConsumeResetToken updates the password hash and clears the reset token pair
// in a single conditioned UPDATE, so an expired or already-consumed token
// mutates nothing.
func ConsumeResetToken(token string, now time.Time, hashedPassword string) error {
	res := DB.Model(&models.User{}).
		Where("reset_password_token = ? AND reset_password_token_expires_at > ?", token, now).
		Updates(map[string]interface{}{
			"password":                        hashedPassword,
			"reset_password_token":            nil,
			"reset_password_token_expires_at": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
