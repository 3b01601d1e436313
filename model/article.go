package model

import "time"

// Article 文章模型
type Article struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Slug        string    `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description string    `gorm:"size:500" json:"description"`
	Body        string    `gorm:"type:text" json:"body"`
	IsDraft     bool      `gorm:"not null;index" json:"is_draft"`
	AuthorID    uint64    `gorm:"not null;index" json:"author_id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author      User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags        []Tag     `gorm:"many2many:article_tags" json:"tags,omitempty"`
	FavoritedBy []User    `gorm:"many2many:favorites;joinForeignKey:ArticleID;joinReferences:UserID" json:"-"`
	Comments    []Comment `gorm:"foreignKey:ArticleID" json:"comments,omitempty"`
}
