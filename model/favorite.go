package model

import "time"

// Favorite 收藏表
// 复合主键保证同一 (user, article) 对至多一条记录。
type Favorite struct {
	UserID    uint64    `gorm:"primaryKey" json:"user_id"`
	ArticleID uint64    `gorm:"primaryKey;index" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}
