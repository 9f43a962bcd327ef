package db

import "database/sql"

// SaveToken stores the serialized OAuth token for a provider
func SaveToken(provider, tokenJSON string) error {
	_, err := GetDB().Exec(`
		INSERT INTO oauth_tokens (provider, token_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(provider) DO UPDATE SET
			token_json = excluded.token_json,
			updated_at = excluded.updated_at
	`, provider, tokenJSON, NowMs())
	return err
}

// LoadToken returns the serialized OAuth token for a provider, or ""
// when no session is cached.
func LoadToken(provider string) (string, error) {
	var tokenJSON string
	err := GetDB().QueryRow(
		"SELECT token_json FROM oauth_tokens WHERE provider = ?", provider,
	).Scan(&tokenJSON)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return tokenJSON, nil
}

// DeleteToken removes a provider's cached session
func DeleteToken(provider string) error {
	_, err := GetDB().Exec("DELETE FROM oauth_tokens WHERE provider = ?", provider)
	return err
}
