// Package storage описывает контракты хранилища пользователей и их коллекций.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/pokedex-api/internal/models"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создаёт пользователя и возвращает его с заполненным ID.
	// Занятый email — ErrAlreadyExists.
	SaveUser(ctx context.Context, user *models.User) (*models.User, error)
	// UserByEmail находит пользователя по email. Нет такого — ErrNotFound.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateRefreshToken записывает пользователю новый refresh-токен.
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string) error
}

// InventoryStorage выполняет операции над коллекциями пользователей.
type InventoryStorage interface {
	// AddPokemon добавляет покемона в коллекцию (add-to-set).
	// Повторное добавление не меняет capturedAt исходной записи.
	AddPokemon(ctx context.Context, userID string, pokemonID int, capturedAt time.Time) error
	// ListPokemon возвращает коллекцию пользователя в порядке добавления.
	// Пустая коллекция — пустой срез, не ошибка.
	ListPokemon(ctx context.Context, userID string) ([]models.InventoryEntry, error)
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	UserStorage
	InventoryStorage
	Close(ctx context.Context) error
}
