package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/WSDOT/PGSuper-sub013/internal/config"
	"github.com/WSDOT/PGSuper-sub013/internal/logger"
	"github.com/WSDOT/PGSuper-sub013/internal/version"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "pgdesign",
	Short: "Prestressed girder strand and stirrup design",
	Long: `pgdesign - Prestressed Girder Designer

A CLI tool for the automated design of pretensioned concrete girders
to the AASHTO LRFD Bridge Design Specifications.

For a girder described in a YAML or JSON file it:
  - Iterates the strand count until flexural design converges
  - Lays out stirrup zones from the Av/s demand envelope
  - Details horizontal interface, splitting and confinement bars
  - Checks longitudinal reinforcement for shear and restarts the
    flexural design with more rebar, strands or concrete strength

Logging is configured with LOG_LEVEL and LOG_FORMAT (console or json).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   pgdesign v%-46s║\n", version.Version)
		fmt.Println("  ║   Prestressed Girder Designer                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Strand count convergence with oscillation control")
		fmt.Println("    • Stirrup zone layout from scratch or by amending a layout")
		fmt.Println("    • Interface shear, splitting and confinement detailing")
		fmt.Println("    • Longitudinal reinforcement for shear with design restarts")
		fmt.Println("    • Run history as JSON")
		fmt.Println()
		fmt.Println("  Use 'pgdesign --help' to see available commands.")
		fmt.Println()
	},
}

// initLogger sets up the process logger. Flags win over PGDESIGN_LOG_LEVEL,
// which wins over LOG_LEVEL.
func initLogger() {
	opt := logger.FromEnv()
	if lvl := config.DesignFromEnv().LogLevel; lvl != "" {
		opt.Level = lvl
	}
	if logLevel != "" {
		opt.Level = logLevel
	}
	if logFormat != "" {
		opt.Format = logFormat
	}
	logger.Init(opt)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, off)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (console, json)")
}
