package database

import (
	"errors"

	"github.com/anjiri1684/english_assistant/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func CreateConversation(conversation *models.Conversation) error {
	return DB.Create(conversation).Error
}

// ListConversations returns the caller's conversations, most recently
// updated first.
func ListConversations(userID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := DB.Where("user_id = ?", userID).Order("updated_at DESC").Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// FindConversation looks up a conversation by id and owner in one query. A
// record owned by someone else is reported as ErrNotFound, same as a record
// that does not exist.
func FindConversation(id, userID uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := DB.Where("id = ? AND user_id = ?", id, userID).First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// UpdateConversation replaces the title and/or message sequence of a
// conversation the caller owns. The ownership check and the write are one
// conditioned UPDATE.
func UpdateConversation(id, userID uuid.UUID, title *string, messages []models.Message) (*models.Conversation, error) {
	updates := map[string]interface{}{}
	if title != nil {
		updates["title"] = *title
	}
	if messages != nil {
		updates["messages"] = datatypes.JSONSlice[models.Message](messages)
	}
	if len(updates) == 0 {
		return FindConversation(id, userID)
	}

	res := DB.Model(&models.Conversation{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return FindConversation(id, userID)
}

// DeleteConversation removes a conversation the caller owns.
func DeleteConversation(id, userID uuid.UUID) error {
	res := DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Conversation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
