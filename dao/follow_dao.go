package dao

import (
	"inkwell/model"

	"gorm.io/gorm"
)

type FollowDAO struct {
	db *gorm.DB
}

func NewFollowDAO(db *gorm.DB) *FollowDAO {
	return &FollowDAO{db: db}
}

// Exists reports whether follower already follows following.
func (dao *FollowDAO) Exists(followerID, followingID uint64) (bool, error) {
	var count int64
	err := dao.db.Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the follow edge. A racing duplicate insert surfaces as a
// duplicate-key error from the composite primary key; the service layer
// re-classifies it.
func (dao *FollowDAO) Create(followerID, followingID uint64) error {
	return dao.db.Create(&model.Follow{FollowerID: followerID, FollowingID: followingID}).Error
}

// Delete removes the follow edge if present.
func (dao *FollowDAO) Delete(followerID, followingID uint64) error {
	return dao.db.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{}).Error
}

// FollowingIDs returns the ids of every user the given user follows.
func (dao *FollowDAO) FollowingIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := dao.db.Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	return ids, err
}
