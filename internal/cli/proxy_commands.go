// =============================================================================
// internal/cli/proxy_commands.go - Telegram proxy link CLI commands
// =============================================================================
package cli

import (
	"fmt"
	"os"

	"github.com/bryanCE/certplan/internal/tgproxy"
	"github.com/spf13/cobra"
)

// NewTgProxyCommand creates the tgproxy subcommand
func NewTgProxyCommand() *cobra.Command {
	var (
		portFlag   int
		secretFlag string
		qrFlag     string
		sizeFlag   int
	)

	cmd := &cobra.Command{
		Use:   "tgproxy [host]",
		Short: "Build a Telegram MTProto proxy join link",
		Long: `Build the tg://proxy join link for an MTProto proxy running on a host,
optionally rendering it as a PNG QR code for mobile clients.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := args[0]

			link, err := tgproxy.Link(host, portFlag, secretFlag)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}

			fmt.Println(link)

			if qrFlag != "" {
				png, err := tgproxy.QR(link, sizeFlag)
				if err != nil {
					return err
				}
				if err := os.WriteFile(qrFlag, png, 0o644); err != nil {
					return fmt.Errorf("write QR code: %w", err)
				}
				fmt.Fprintf(os.Stderr, "📱 QR code written to %s\n", qrFlag)
			}

			return nil
		},
	}

	// Add flags
	cmd.Flags().IntVarP(&portFlag, "port", "p", 443, "Proxy port")
	cmd.Flags().StringVarP(&secretFlag, "secret", "s", "", "Proxy secret (hex, optionally dd/ee-prefixed)")
	cmd.Flags().StringVarP(&qrFlag, "qr", "q", "", "Write a PNG QR code of the link to this file")
	cmd.Flags().IntVar(&sizeFlag, "qr-size", 256, "QR code size in pixels")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}
