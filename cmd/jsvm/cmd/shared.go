package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-jsvm/internal/version"
)

// readSource resolves the script source from an inline -e expression, a
// file argument, or stdin, and a display filename for error stacks.
func readSource(inline string, args []string) (source, filename string, err error) {
	switch {
	case inline != "":
		return inline, "<eval>", nil
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
}

// langVersion resolves the dialect to run against: an explicit --lang
// flag wins, otherwise the config loaded from .jsvmrc.yaml (and any --set
// overrides) in PersistentPreRunE, otherwise V5.
func langVersion(cmd *cobra.Command) version.Version {
	if cmd.Flags().Changed("lang") {
		s, _ := cmd.Flags().GetString("lang")
		if v, ok := version.Parse(s); ok {
			return v
		}
	}
	return cfg.Version()
}
