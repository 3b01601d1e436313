package model

import "gorm.io/gorm"

// InitTables registers the explicit join-table models and migrates the schema.
// SetupJoinTable must run before AutoMigrate so the follows/favorites tables
// are created from Follow/Favorite (composite primary keys) instead of the
// anonymous many2many defaults.
func InitTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&User{}, "Followers", &Follow{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&User{}, "Followings", &Follow{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&Article{}, "FavoritedBy", &Favorite{}); err != nil {
		return err
	}
	return db.AutoMigrate(&User{}, &Tag{}, &Article{}, &Comment{})
}
