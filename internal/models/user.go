// Package models содержит доменные сущности pokedex-api.
package models

import "time"

// User — учётная запись (MongoDB, коллекция users).
//   - ID — hex ObjectID;
//   - PasswordHash — bcrypt-хэш, пароль в открытом виде не хранится;
//   - RefreshToken — непрозрачная строка, обновляется при каждом входе.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
