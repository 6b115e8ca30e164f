package cache

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

	"github.com/pribylovaa/pokedex-api/internal/models"
)

// TestMain поднимает Redis в контейнере, если задан GO_TEST_INTEGRATION.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis testcontainer: %v\n", err)
		os.Exit(1)
	}

	endpoint, err := redisC.Endpoint(ctx, "")
	if err != nil {
		_ = redisC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get redis endpoint: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("REDIS_URL", "redis://"+endpoint+"/0")

	code := m.Run()

	_ = redisC.Terminate(context.Background())
	os.Exit(code)
}

func mustNewCache(t *testing.T) PokemonCache {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("set GO_TEST_INTEGRATION=1 to run Redis tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Уникальный префикс изолирует тесты друг от друга.
	c, err := NewRedisCache(ctx, os.Getenv("REDIS_URL"), "test:"+uuid.NewString()+":")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-url", "")
	require.Error(t, err)
}

func TestRedisCache_SetGet(t *testing.T) {
	c := mustNewCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "25")
	require.NoError(t, err)
	require.False(t, ok)

	in := &models.Pokemon{
		ID: 25, Name: "pikachu", Height: 4, Weight: 60,
		Types: []models.PokemonType{{Slot: 1, Name: "electric"}},
	}
	require.NoError(t, c.Set(ctx, "25", in, time.Minute))

	got, ok, err := c.Get(ctx, "25")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, got)
	require.NoError(t, c.Ping(ctx))
}

func TestRedisCache_TTL(t *testing.T) {
	c := mustNewCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "1", &models.Pokemon{ID: 1}, 50*time.Millisecond))
	require.Eventually(t, func() bool {
		_, ok, err := c.Get(ctx, "1")
		return err == nil && !ok
	}, 2*time.Second, 20*time.Millisecond)
}
