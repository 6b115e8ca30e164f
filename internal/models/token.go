package models

import "time"

// Principal — личность, подтверждённая проверкой токена.
// Живёт в контексте одного запроса и нигде не сохраняется.
type Principal struct {
	UserID    string
	Email     string
	JTI       string
	ExpiresAt time.Time
}

// IssuedToken — результат выпуска токена.
type IssuedToken struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// Session — ответ на успешный вход.
type Session struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}
