package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

// KeyringTarget selects the PostgreSQL connection string stored in the OS keyring.
const KeyringTarget = "keyring"

var (
	_ Provider = (*JSONStore)(nil)
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)

	getConnectionString = keyring.GetConnectionString
)

// New picks a backend for target: "keyring", a PostgreSQL URL or DSN, a
// .json file, or otherwise a SQLite database path.
func New(target string) (Provider, error) {
	switch {
	case target == KeyringTarget:
		connStr, err := getConnectionString()
		if err != nil {
			return nil, err
		}
		// Stored connection strings may carry a password
		if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil

	case postgres.IsConnString(target):
		if err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store it with '%s keyring set' or use .pgpass", err, constants.AppName)
			}
			return nil, err
		}
		return postgres.New(target), nil
	}

	path, err := ExpandPath(target)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
