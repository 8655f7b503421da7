package domain

import "time"

type User struct {
	ID           uint
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	Roles        []Role
}

type Role struct {
	ID          uint
	Name        string
	Permissions []string
	CreatedAt   time.Time
}

type Article struct {
	ID        uint
	Title     string
	Body      string
	AuthorID  uint
	Author    *User
	CreatedAt time.Time
	UpdatedAt time.Time
}
