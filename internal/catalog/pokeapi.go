// Package catalog — клиент внешнего каталога покемонов (PokeAPI).
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/pokedex-api/internal/models"
	"github.com/pribylovaa/pokedex-api/internal/pkg/log"
)

// DefaultBaseURL — публичный PokeAPI.
const DefaultBaseURL = "https://pokeapi.co/api/v2/"

// ErrNotFound — каталог ответил 404.
var ErrNotFound = errors.New("pokemon not found")

// Client читает записи покемонов по id или имени.
// HTTP-клиент настраивается извне (таймауты, прокси и т.д.).
type Client struct {
	client  *http.Client
	baseURL *url.URL
}

// New создаёт клиент. Пустой baseURL означает DefaultBaseURL.
func New(client *http.Client, baseURL string) (*Client, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse base url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog: unsupported scheme %q", u.Scheme)
	}

	return &Client{client: client, baseURL: u}, nil
}

// PokemonByID возвращает покемона по числовому id.
func (c *Client) PokemonByID(ctx context.Context, id int) (*models.Pokemon, error) {
	return c.fetch(ctx, strconv.Itoa(id))
}

// PokemonByName возвращает покемона по имени. Имя приводится к нижнему регистру:
// PokeAPI регистрозависим и знает только lower-case имена.
func (c *Client) PokemonByName(ctx context.Context, name string) (*models.Pokemon, error) {
	return c.fetch(ctx, strings.ToLower(strings.TrimSpace(name)))
}

func (c *Client) fetch(ctx context.Context, key string) (*models.Pokemon, error) {
	const op = "catalog.pokeapi.fetch"

	lg := log.From(ctx)
	target := c.baseURL.String() + "pokemon/" + url.PathEscape(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		lg.Warn("catalog_http_error",
			slog.String("op", op),
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	var wire pokemonResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	return wire.toModel(), nil
}
