package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rentd-dev/rentd/internal/auth"
	"github.com/rentd-dev/rentd/internal/cli/config"
	"github.com/rentd-dev/rentd/internal/cli/serverselect"
	"github.com/rentd-dev/rentd/internal/session"
)

// getSelectedServer loads the config and returns the selected server.
// This is common logic used by most commands. The RENTD_SERVER
// environment variable bypasses the config file entirely.
func getSelectedServer(serverAlias string) (*config.Server, error) {
	if addr := os.Getenv("RENTD_SERVER"); addr != "" {
		return &config.Server{Address: addr, Alias: "env"}, nil
	}

	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'rentd init' to create a configuration file", err)
	}

	server, err := serverselect.ResolveServer(cfg, serverAlias)
	if err != nil {
		return nil, err
	}

	if server.Address == "" {
		return nil, fmt.Errorf("server address is empty. Please edit %s and add a valid address", config.ConfigFileName)
	}

	return server, nil
}

// restoreSession rebuilds the session for a server from the persisted
// credential. Always succeeds; a missing or invalid credential just
// yields a logged-out session.
func restoreSession(server *config.Server) *session.Store {
	store := session.New(server.Address, auth.Default)
	store.Restore()
	return store
}

// requireAdmin refuses an admin-only command early, before any
// network I/O, based on the restored session. The server enforces the
// same rule; this only produces a friendlier failure.
func requireAdmin(store *session.Store) error {
	if !store.LoggedIn() {
		return fmt.Errorf("not authenticated. Please run 'rentd login' first")
	}
	if !store.IsAdmin() {
		return fmt.Errorf("this command requires the administrator role")
	}
	return nil
}

// formatMillis renders a unix-millisecond timestamp for table output
func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}
