package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/pokedex-api/internal/config"
	"github.com/pribylovaa/pokedex-api/internal/models"
	"github.com/pribylovaa/pokedex-api/internal/storage"
)

// testTimeout — общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

// TestMain запускает MongoDB в контейнере один раз на весь пакет тестов.
// Без GO_TEST_INTEGRATION интеграционные тесты пропускаются.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7.0",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("DATABASE_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

func integration(t *testing.T) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("set GO_TEST_INTEGRATION=1 to run MongoDB tests")
	}
}

// mustNewMongo подключается к отдельной тестовой БД и удаляет её по завершении теста.
func mustNewMongo(t *testing.T) *Mongo {
	t.Helper()
	integration(t)

	cfg := &config.Config{DB: config.DBConfig{
		URL: os.Getenv("DATABASE_URL") + "/pokedex_test_" + uuid.NewString(),
	}}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, cfg)
	require.NoError(t, err, "DATABASE_URL=%s", cfg.DB.URL)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})

	return m
}

func TestDatabaseFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/pokedex_dev", "pokedex_dev"},
		{"mongodb://localhost:27017/", defaultDBName},
		{"mongodb://localhost:27017", defaultDBName},
		{"mongodb://user:pass@h1,h2/db?replicaSet=rs0", "db"},
		{"::bad::", defaultDBName},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, databaseFromURI(tt.uri), tt.uri)
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(context.Background(), nil)
	require.Error(t, err)

	_, err = New(context.Background(), &config.Config{})
	require.Error(t, err)
}

func TestUsers_SaveAndFind(t *testing.T) {
	m := mustNewMongo(t)
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	saved, err := m.SaveUser(ctx, &models.User{Email: "a@b.com", PasswordHash: "hash"})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.False(t, saved.CreatedAt.IsZero())

	got, err := m.UserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Equal(t, saved.ID, got.ID)
	require.Equal(t, "hash", got.PasswordHash)

	_, err = m.SaveUser(ctx, &models.User{Email: "a@b.com", PasswordHash: "other"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = m.UserByEmail(ctx, "missing@b.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUsers_UpdateRefreshToken(t *testing.T) {
	m := mustNewMongo(t)
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	saved, err := m.SaveUser(ctx, &models.User{Email: "rt@b.com", PasswordHash: "hash"})
	require.NoError(t, err)

	require.NoError(t, m.UpdateRefreshToken(ctx, saved.ID, "rt-1"))
	got, err := m.UserByEmail(ctx, "rt@b.com")
	require.NoError(t, err)
	require.Equal(t, "rt-1", got.RefreshToken)

	require.ErrorIs(t, m.UpdateRefreshToken(ctx, "not-hex", "x"), storage.ErrNotFound)
	require.ErrorIs(t, m.UpdateRefreshToken(ctx, "65f000000000000000000000", "x"), storage.ErrNotFound)
}

func TestInventory_AddIsIdempotentAndOrdered(t *testing.T) {
	m := mustNewMongo(t)
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, m.AddPokemon(ctx, "u1", 25, t0))
	require.NoError(t, m.AddPokemon(ctx, "u1", 1, t0.Add(time.Minute)))
	require.NoError(t, m.AddPokemon(ctx, "u1", 25, t0.Add(time.Hour)))
	require.NoError(t, m.AddPokemon(ctx, "u2", 7, t0))

	got, err := m.ListPokemon(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 25, got[0].PokemonID)
	require.True(t, got[0].CapturedAt.Equal(t0), "capture time must not change on re-add")
	require.Equal(t, 1, got[1].PokemonID)

	empty, err := m.ListPokemon(ctx, "nobody")
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}
