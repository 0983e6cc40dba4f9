package main

import (
	"fmt"
	"os"

	"github.com/bryanCE/certplan/internal/cli"

	"github.com/spf13/cobra"
)

var version = "dev" // Will be set by ldflags during build

func main() {
	rootCmd := &cobra.Command{
		Use:   "certplan",
		Short: "Certificate strategy planner for provisioned servers",
		Long: `certplan inspects a domain's DNS, decides whether a CDN fronts it, and
plans the right certificate path: direct Let's Encrypt issuance, a manual
CDN origin certificate, or proxied issuance with a warning. It can then
carry the plan out and verify what the server ends up serving.`,
		Version: version,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.NewPlanCommand())
	rootCmd.AddCommand(cli.NewBulkCommand())
	rootCmd.AddCommand(cli.NewIssueCommand())
	rootCmd.AddCommand(cli.NewVerifyCommand())
	rootCmd.AddCommand(cli.NewTgProxyCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
