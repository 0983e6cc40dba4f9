// =============================================================================
// internal/cli/cert_commands.go - Certificate issuance CLI commands
// =============================================================================
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bryanCE/certplan/internal/cert"
	"github.com/bryanCE/certplan/internal/config"
	"github.com/bryanCE/certplan/internal/strategy"
	"github.com/spf13/cobra"
)

// NewIssueCommand creates the issue subcommand
func NewIssueCommand() *cobra.Command {
	var (
		strategyFlag string
		emailFlag    string
		certDirFlag  string
		certFileFlag string
		keyFileFlag  string
		http01Flag   string
	)

	cmd := &cobra.Command{
		Use:   "issue [domain]",
		Short: "Execute a certificate strategy for a domain",
		Long: `Carry out the strategy chosen by 'plan':

  direct-letsencrypt   ACME HTTP-01 issuance against the domain
  proxied-letsencrypt  ACME issuance behind a CDN (prints a warning first)
  manual-origin        install an operator-supplied origin cert/key pair

For manual-origin, pass --cert-file and --key-file with the PEM material
downloaded from the CDN dashboard.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain := args[0]

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			certDir := cfg.CertDir
			if certDirFlag != "" {
				certDir = certDirFlag
			}

			var result *cert.Result

			switch strategy.CertificateStrategy(strategyFlag) {
			case strategy.ManualOriginCertificate:
				result, err = importOriginPair(certDir, domain, certFileFlag, keyFileFlag)

			case strategy.ProxiedLetsEncryptWithWarning:
				fmt.Fprintf(os.Stderr, "⚠️  %s is behind a CDN: the HTTP-01 challenge may be answered by the edge, and the certificate will only cover edge-to-origin traffic if the proxy is bypassed\n", domain)
				result, err = issueACME(cfg, domain, certDir, emailFlag, http01Flag)

			case strategy.DirectLetsEncrypt:
				result, err = issueACME(cfg, domain, certDir, emailFlag, http01Flag)

			default:
				return fmt.Errorf("unknown strategy %q (want direct-letsencrypt, proxied-letsencrypt, or manual-origin)", strategyFlag)
			}

			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}

			fmt.Printf("✅ Certificate installed for %s\n", domain)
			fmt.Printf("📄 Certificate: %s\n", result.CertificatePath)
			fmt.Printf("🔑 Private key: %s\n", result.PrivateKeyPath)
			if result.IssuerCertificatePath != "" {
				fmt.Printf("📄 Issuer chain: %s\n", result.IssuerCertificatePath)
			}

			return nil
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&strategyFlag, "strategy", "s", string(strategy.DirectLetsEncrypt), "Strategy from 'plan' (direct-letsencrypt, proxied-letsencrypt, manual-origin)")
	cmd.Flags().StringVarP(&emailFlag, "email", "e", "", "ACME account email (overrides CERTPLAN_ACME_EMAIL)")
	cmd.Flags().StringVarP(&certDirFlag, "cert-dir", "d", "", "Output directory for certificates (overrides CERTPLAN_CERT_DIR)")
	cmd.Flags().StringVar(&certFileFlag, "cert-file", "", "PEM certificate file (manual-origin)")
	cmd.Flags().StringVar(&keyFileFlag, "key-file", "", "PEM private key file (manual-origin)")
	cmd.Flags().StringVar(&http01Flag, "http01-address", "", "Bind address for the HTTP-01 challenge listener (default :80)")

	return cmd
}

func issueACME(cfg *config.Config, domain, certDir, emailFlag, http01Addr string) (*cert.Result, error) {
	email := cfg.AcmeEmail
	if emailFlag != "" {
		email = emailFlag
	}

	issuer, err := cert.NewIssuer(cert.IssuerConfig{
		Email:          email,
		OutputDir:      certDir,
		CADirectoryURL: cfg.AcmeDirectoryURL,
		HTTP01Address:  http01Addr,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	fmt.Fprintf(os.Stderr, "🔐 Requesting certificate for %s (this can take up to a minute)...\n", domain)
	return issuer.Issue(ctx, domain)
}

func importOriginPair(certDir, domain, certFile, keyFile string) (*cert.Result, error) {
	if certFile == "" || keyFile == "" {
		return nil, fmt.Errorf("manual-origin requires --cert-file and --key-file")
	}

	certPEM, err := os.ReadFile(certFile)
	if err != nil {
		return nil, fmt.Errorf("read certificate file: %w", err)
	}
	keyPEM, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	return cert.WriteOriginPair(certDir, domain, certPEM, keyPEM)
}
