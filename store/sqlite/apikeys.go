/*
apikeys.go - API key generation, validation, and usage metering

Keys are "ai_" plus 32 url-safe random bytes. Only the SHA-256 hash and an
8-character prefix are stored; the raw key is returned exactly once at
creation. Validation requires both org_id and key to match an active row,
and bumps last_used_at and total_calls as a crude usage meter.
*/
package sqlite

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// APIKey is an API key record without the secret.
type APIKey struct {
	ID         int64
	OrgID      string
	OrgName    string
	KeyPrefix  string
	IsActive   bool
	CreatedAt  time.Time
	LastUsedAt *time.Time
	TotalCalls int64
}

func hashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// GenerateAPIKey returns a new raw key.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return "ai_" + base64.RawURLEncoding.EncodeToString(buf), nil
}

// CreateAPIKey creates a key for an org and returns the record plus the raw
// key. The raw key is not recoverable afterwards.
func (s *Store) CreateAPIKey(ctx context.Context, orgID, orgName string) (*APIKey, string, error) {
	raw, err := GenerateAPIKey()
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	prefix := raw[:8]
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO api_keys (org_id, org_name, key_hash, key_prefix, is_active, created_at, total_calls)
		VALUES (?, ?, ?, ?, 1, ?, 0)`,
		strings.TrimSpace(orgID), strings.TrimSpace(orgName), hashKey(raw), prefix, now.Format(time.RFC3339))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create api key: %w", err)
	}
	id, _ := res.LastInsertId()

	return &APIKey{
		ID:        id,
		OrgID:     strings.TrimSpace(orgID),
		OrgName:   strings.TrimSpace(orgName),
		KeyPrefix: prefix,
		IsActive:  true,
		CreatedAt: now,
	}, raw, nil
}

// ValidateAPIKey checks an org_id + raw key pair against active keys and
// meters the call. Returns ErrNotFound when the pair doesn't match.
func (s *Store) ValidateAPIKey(ctx context.Context, orgID, rawKey string) (*APIKey, error) {
	if strings.TrimSpace(orgID) == "" || strings.TrimSpace(rawKey) == "" {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var k APIKey
	var created string
	var lastUsed *string
	var active int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, org_id, org_name, key_prefix, is_active, created_at, last_used_at, total_calls
		FROM api_keys WHERE org_id = ? AND key_hash = ? AND is_active = 1`,
		strings.TrimSpace(orgID), hashKey(rawKey)).
		Scan(&k.ID, &k.OrgID, &k.OrgName, &k.KeyPrefix, &active, &created, &lastUsed, &k.TotalCalls)
	if err != nil {
		return nil, ErrNotFound
	}
	k.IsActive = active == 1
	k.CreatedAt, _ = time.Parse(time.RFC3339, created)
	if lastUsed != nil {
		t, _ := time.Parse(time.RFC3339, *lastUsed)
		k.LastUsedAt = &t
	}

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, `
		UPDATE api_keys SET last_used_at = ?, total_calls = total_calls + 1 WHERE id = ?`,
		now.Format(time.RFC3339), k.ID); err != nil {
		return nil, fmt.Errorf("failed to meter api key: %w", err)
	}
	k.TotalCalls++
	k.LastUsedAt = &now
	return &k, nil
}

// ListAPIKeys returns all keys, newest first.
func (s *Store) ListAPIKeys(ctx context.Context) ([]APIKey, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, org_id, org_name, key_prefix, is_active, created_at, last_used_at, total_calls
		FROM api_keys ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []APIKey
	for rows.Next() {
		var k APIKey
		var created string
		var lastUsed *string
		var active int
		if err := rows.Scan(&k.ID, &k.OrgID, &k.OrgName, &k.KeyPrefix, &active,
			&created, &lastUsed, &k.TotalCalls); err != nil {
			return nil, err
		}
		k.IsActive = active == 1
		k.CreatedAt, _ = time.Parse(time.RFC3339, created)
		if lastUsed != nil {
			t, _ := time.Parse(time.RFC3339, *lastUsed)
			k.LastUsedAt = &t
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// RevokeAPIKey deactivates a key by ID.
func (s *Store) RevokeAPIKey(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE api_keys SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// HasAPIKeys reports whether any active key exists. When none do, the API
// runs open (dev mode) and the auth middleware lets requests through.
func (s *Store) HasAPIKeys(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM api_keys WHERE is_active = 1`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
