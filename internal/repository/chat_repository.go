package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skillsphere_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const chatHistoryTTL = 5 * time.Minute

type ChatRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewChatRepository(db *gorm.DB, rdb *redis.Client) *ChatRepository {
	return &ChatRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

func (r *ChatRepository) Save(msg *model.ChatMessage) error {
	if err := r.DB.Create(msg).Error; err != nil {
		return err
	}
	// Drop any cached windows for this user; next read repopulates.
	if r.Redis != nil {
		iter := r.Redis.Scan(r.ctx, 0, fmt.Sprintf("chat:history:%s:*", msg.UserID), 0).Iterator()
		for iter.Next(r.ctx) {
			r.Redis.Del(r.ctx, iter.Val())
		}
	}
	return nil
}

// History returns the last `limit` messages in chronological order. Recent
// windows are cached in Redis with a short TTL.
func (r *ChatRepository) History(userID string, limit int) ([]model.ChatMessage, error) {
	cacheKey := fmt.Sprintf("chat:history:%s:%d", userID, limit)

	if r.Redis != nil {
		if val, err := r.Redis.Get(r.ctx, cacheKey).Result(); err == nil {
			var cached []model.ChatMessage
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	var messages []model.ChatMessage
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Query is newest-first for the LIMIT; callers want chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	if r.Redis != nil {
		if data, err := json.Marshal(messages); err == nil {
			r.Redis.Set(r.ctx, cacheKey, data, chatHistoryTTL)
		}
	}

	return messages, nil
}
