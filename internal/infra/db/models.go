package db

import "time"

type UserModel struct {
	ID           uint        `gorm:"primaryKey"`
	Username     string      `gorm:"uniqueIndex;not null"`
	PasswordHash string      `gorm:"not null"`
	CreatedAt    time.Time   `gorm:"not null"`
	Roles        []RoleModel `gorm:"many2many:user_roles"`
}

func (UserModel) TableName() string { return "users" }

type RoleModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Permissions []string  `gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (RoleModel) TableName() string { return "roles" }

type ArticleModel struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	Body      string `gorm:"type:text"`
	AuthorID  uint   `gorm:"index;not null"`
	Author    *UserModel
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ArticleModel) TableName() string { return "articles" }
