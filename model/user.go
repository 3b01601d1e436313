package model

import "time"

// User 用户模型
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Username     string    `gorm:"uniqueIndex;not null;size:50" json:"username"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"` // 忽略JSON序列化
	Bio          string    `gorm:"type:text" json:"bio"`
	Image        string    `gorm:"size:255" json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Followers holds the users that follow this user. The join rows live
	// in the follows table keyed (follower_id, following_id).
	Followers  []User `gorm:"many2many:follows;joinForeignKey:FollowingID;joinReferences:FollowerID" json:"-"`
	Followings []User `gorm:"many2many:follows;joinForeignKey:FollowerID;joinReferences:FollowingID" json:"-"`
}
