package users

import "time"

type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Telegram — профиль из апдейта/авторизации Web App.
type Telegram struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Phone     string
}
