package model

import "time"

// Comment 评论模型，随文章级联删除
type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	AuthorID  uint64    `gorm:"not null;index" json:"author_id"`
	ArticleID uint64    `gorm:"not null;index" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
