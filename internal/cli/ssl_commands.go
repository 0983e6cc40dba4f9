// =============================================================================
// internal/cli/ssl_commands.go - SSL verification CLI commands
// =============================================================================
package cli

import (
	"fmt"
	"os"

	"github.com/bryanCE/certplan/internal/output"
	"github.com/bryanCE/certplan/internal/ssl"
	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the verify subcommand
func NewVerifyCommand() *cobra.Command {
	var (
		portFlag   string
		formatFlag string
	)

	cmd := &cobra.Command{
		Use:   "verify [domain]",
		Short: "Verify the certificate a domain is serving",
		Long: `Dial the domain over TLS and report the served certificate: issuer, name
coverage, validity window and days to expiry. Useful after 'issue' to
confirm the right certificate is actually being served.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain := args[0]

			info, err := ssl.Check(domain, portFlag)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}

			if !info.Covers(domain) {
				fmt.Fprintf(os.Stderr, "⚠️  Served certificate does not cover %s\n", domain)
			}

			formatter := output.NewFormatter(output.ParseFormat(formatFlag))
			return formatter.FormatCertInfo(info, os.Stdout)
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&portFlag, "port", "p", "443", "Port to connect to (default: 443)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format (table, json)")

	return cmd
}
