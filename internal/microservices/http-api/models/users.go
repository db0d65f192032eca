package models

// User is the read-only profile projection joined into comment views.
// The users table is owned by the account service.
type User struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	FullName  string `gorm:"column:full_name" json:"fullName"`
	AvatarURL string `gorm:"column:avatar_url" json:"avatarUrl"`
}

func (User) TableName() string {
	return "users"
}
