// Package secrets pulls deployment secrets from a Vault KV engine into the
// process environment before configuration is read.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zatekoja/HotelReservationSystem/backend/pkg/retry"
)

// VaultSource describes where the secrets live
type VaultSource struct {
	Enabled   bool
	Addr      string
	Token     string
	Namespace string
	Mount     string
	Path      string
	KVVersion int
	Timeout   time.Duration
	// Overwrite replaces variables that are already set
	Overwrite bool
	Retry     retry.Config
}

// Summary reports how many variables a load exported
type Summary struct {
	Loaded  int
	Skipped int
}

// SourceFromEnv reads VAULT_* variables. Vault is disabled unless
// VAULT_ENABLED=true.
func SourceFromEnv() VaultSource {
	src := VaultSource{
		Enabled:   strings.EqualFold(os.Getenv("VAULT_ENABLED"), "true"),
		Addr:      os.Getenv("VAULT_ADDR"),
		Token:     os.Getenv("VAULT_TOKEN"),
		Namespace: os.Getenv("VAULT_NAMESPACE"),
		Mount:     envOr("VAULT_MOUNT", "secret"),
		Path:      envOr("VAULT_PATH", "hotel-reservation"),
		KVVersion: 2,
		Timeout:   5 * time.Second,
		Overwrite: strings.EqualFold(os.Getenv("VAULT_OVERWRITE"), "true"),
		Retry:     retry.DeliveryConfig(),
	}
	if v, err := strconv.Atoi(os.Getenv("VAULT_KV_VERSION")); err == nil && (v == 1 || v == 2) {
		src.KVVersion = v
	}
	if ms, err := strconv.Atoi(os.Getenv("VAULT_TIMEOUT_MS")); err == nil && ms > 0 {
		src.Timeout = time.Duration(ms) * time.Millisecond
	}
	return src
}

// Load fetches the secret at src.Path and exports each key as an environment
// variable. A disabled source is a no-op.
func Load(ctx context.Context, src VaultSource) (Summary, error) {
	if !src.Enabled {
		return Summary{}, nil
	}
	if src.Addr == "" || src.Token == "" {
		return Summary{}, errors.New("vault enabled but VAULT_ADDR or VAULT_TOKEN is empty")
	}

	var data map[string]any
	err := retry.Do(ctx, src.Retry, "Vault", func(ctx context.Context) error {
		var err error
		data, err = fetch(ctx, src)
		return err
	})
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for key, value := range data {
		if !src.Overwrite && os.Getenv(key) != "" {
			summary.Skipped++
			continue
		}
		if err := os.Setenv(key, stringify(value)); err != nil {
			return summary, fmt.Errorf("failed to export %s: %w", key, err)
		}
		summary.Loaded++
	}
	return summary, nil
}

func fetch(ctx context.Context, src VaultSource) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, src.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, secretURL(src), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Vault-Token", src.Token)
	if src.Namespace != "" {
		req.Header.Set("X-Vault-Namespace", src.Namespace)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vault returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("invalid vault response: %w", err)
	}
	if payload.Data == nil {
		return nil, errors.New("vault response has no data")
	}
	if src.KVVersion == 1 {
		return payload.Data, nil
	}
	// KV v2 nests the secret under data.data
	inner, ok := payload.Data["data"].(map[string]any)
	if !ok {
		return nil, errors.New("vault response has no KV v2 data")
	}
	return inner, nil
}

func secretURL(src VaultSource) string {
	addr := strings.TrimRight(src.Addr, "/")
	mount := strings.Trim(src.Mount, "/")
	path := strings.Trim(src.Path, "/")
	if src.KVVersion == 1 {
		return fmt.Sprintf("%s/v1/%s/%s", addr, mount, path)
	}
	return fmt.Sprintf("%s/v1/%s/data/%s", addr, mount, path)
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
