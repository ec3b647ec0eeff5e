package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-jsvm/internal/config"
	"github.com/cwbudde/go-jsvm/internal/jsvmlog"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cfg holds the resolved configuration: .jsvmrc.yaml defaults overridden
// by --set key=value patches, themselves overridden by the dedicated
// --lang/--verbose flags when a user passes them explicitly.
var cfg config.Config

var (
	configPath string
	configSets []string
)

var rootCmd = &cobra.Command{
	Use:   "jsvm",
	Short: "jsvm is a tree-walking interpreter for an early-generation scripting language",
	Long: `jsvm implements the core of a tree-walking interpreter for an
early-generation dynamic scripting language across three historical
dialects (v1, v3, v5): lexer, parser, evaluator, a prototype-based
object model, and a mark-and-sweep garbage-collected heap.

Select the dialect with --lang (v1, v3, v5), or set it once in a
.jsvmrc.yaml project file; it gates parser acceptance, built-in
presence, and a handful of runtime corner cases.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		loaded, err = config.ApplySets(loaded, configSets)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("lang") {
			loaded.Lang, _ = cmd.Flags().GetString("lang")
		}
		if cmd.Flags().Changed("verbose") {
			loaded.Verbose, _ = cmd.Flags().GetBool("verbose")
		}
		cfg = loaded
		jsvmlog.SetVerbose(cfg.Verbose)
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("lang", "v5", "tested language dialect: v1, v3, or v5")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".jsvmrc.yaml", "path to the project config file")
	rootCmd.PersistentFlags().StringArrayVar(&configSets, "set", nil, "override a config value as key=value (repeatable)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
