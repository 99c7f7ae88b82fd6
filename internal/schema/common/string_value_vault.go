package common

import (
	"context"
	"fmt"
	"net/http"
	"os"

	vault "github.com/hashicorp/vault/api"
)

// StringValueVault retrieves a string from HashiCorp Vault. Both KV v1 and KV v2 layouts are supported.
type StringValueVault struct {
	VaultAddress string `json:"vault_address" yaml:"vault_address"`
	VaultToken   string `json:"vault_token,omitempty" yaml:"vault_token,omitempty"`
	VaultPath    string `json:"vault_path" yaml:"vault_path"`
	VaultKey     string `json:"vault_key,omitempty" yaml:"vault_key,omitempty"`
	CacheTTL     string `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"`

	httpClient *http.Client
	cache      cachedValueFetcher
}

func (sv *StringValueVault) HasValue(ctx context.Context) bool {
	return sv.VaultAddress != "" && sv.VaultPath != ""
}

func (sv *StringValueVault) GetValue(ctx context.Context) (string, error) {
	return sv.cache.get(sv.CacheTTL, func() (string, error) {
		return sv.fetchFromVault(ctx)
	})
}

func (sv *StringValueVault) resolveToken() string {
	token := sv.VaultToken
	if token == "" {
		token = os.Getenv("VAULT_TOKEN")
	}
	return token
}

func (sv *StringValueVault) fetchFromVault(ctx context.Context) (string, error) {
	config := vault.DefaultConfig()
	config.Address = sv.VaultAddress
	if sv.httpClient != nil {
		config.HttpClient = sv.httpClient
	}

	client, err := vault.NewClient(config)
	if err != nil {
		return "", fmt.Errorf("failed to create vault client: %w", err)
	}

	token := sv.resolveToken()
	if token != "" {
		client.SetToken(token)
	}

	secret, err := client.Logical().ReadWithContext(ctx, sv.VaultPath)
	if err != nil {
		return "", fmt.Errorf("failed to read vault path %s: %w", sv.VaultPath, err)
	}

	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("no data at vault path %s", sv.VaultPath)
	}

	// KV v2 stores data under a "data" sub-key
	data := secret.Data
	if d, ok := data["data"].(map[string]interface{}); ok {
		data = d
	}

	key := sv.VaultKey
	if key == "" {
		key = "value"
	}

	val, ok := data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found at vault path %s", key, sv.VaultPath)
	}

	strVal, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("vault key %q at path %s is not a string", key, sv.VaultPath)
	}

	return strVal, nil
}

func (sv *StringValueVault) Clone() StringValueType {
	if sv == nil {
		return nil
	}

	return &StringValueVault{
		VaultAddress: sv.VaultAddress,
		VaultToken:   sv.VaultToken,
		VaultPath:    sv.VaultPath,
		VaultKey:     sv.VaultKey,
		CacheTTL:     sv.CacheTTL,
		httpClient:   sv.httpClient,
	}
}

var _ StringValueType = (*StringValueVault)(nil)
