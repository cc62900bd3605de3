package commands

import (
	"strings"

	"github.com/goliatone/go-nb2hugo/internal/logging"
	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

// CommandLogger returns a logger for the handlers of one command module,
// tagged so entries can be told apart from the converter's own.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
