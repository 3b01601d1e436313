package model

import "time"

// Follow 关注关系表
// 复合主键保证同一有序 (follower, following) 对至多一条记录，
// 并发重复写入由该约束兜底。
type Follow struct {
	FollowerID  uint64    `gorm:"primaryKey" json:"follower_id"`
	FollowingID uint64    `gorm:"primaryKey;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
