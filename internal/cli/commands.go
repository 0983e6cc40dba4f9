// =============================================================================
// internal/cli/commands.go - Strategy planning CLI commands
// =============================================================================
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bryanCE/certplan/internal/config"
	"github.com/bryanCE/certplan/internal/dns"
	"github.com/bryanCE/certplan/internal/output"
	"github.com/bryanCE/certplan/internal/publicip"
	"github.com/bryanCE/certplan/internal/strategy"
	"github.com/bryanCE/certplan/pkg/cdn"
	"github.com/spf13/cobra"
)

// NewPlanCommand creates the plan subcommand
func NewPlanCommand() *cobra.Command {
	var (
		serverIPFlag   string
		nameserverFlag string
		rangesFlag     string
		formatFlag     string
		proxiedFlag    string
		forceFlag      bool
	)

	cmd := &cobra.Command{
		Use:   "plan [domain]",
		Short: "Resolve the certificate strategy for a domain",
		Long: `Inspect a domain's DNS, decide whether a known CDN fronts it, and pick
the certificate strategy: direct Let's Encrypt issuance, a manual origin
certificate, or proxied issuance with a warning.

A domain that neither points at this server nor sits behind a known CDN is
a misconfiguration; the plan fails with the expected and actual addresses
so DNS can be fixed. Pass --force to proceed with direct issuance anyway.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domain := args[0]

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			resolver, err := buildResolver(cfg, nameserverFlag, rangesFlag)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			serverIP, err := resolveServerIP(ctx, cfg, serverIPFlag)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}

			res, err := resolver.Resolve(ctx, domain, serverIP)
			if err != nil {
				var unreachable *strategy.UnreachableDomainError
				if errors.As(err, &unreachable) && res != nil {
					return handleUnreachable(cmd, res, unreachable, forceFlag, formatFlag)
				}
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}

			// Proxied domains need the operator to pick between the two
			// proxied strategies; the resolver never decides this.
			if res.Decision.ChoiceRequired {
				choice, err := proxiedChoice(cmd, proxiedFlag)
				if err != nil {
					return err
				}
				res.Decision = strategy.Decision{Strategy: strategy.SelectProxied(choice)}
			}

			formatter := output.NewFormatter(output.ParseFormat(formatFlag))
			return formatter.FormatResolution(res, os.Stdout)
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&serverIPFlag, "server-ip", "s", "", "Public IP of this server (skips discovery)")
	cmd.Flags().StringVarP(&nameserverFlag, "nameserver", "n", "", "Nameserver to query (IP address)")
	cmd.Flags().StringVarP(&rangesFlag, "cdn-ranges", "r", "", "File with CDN edge CIDR ranges, one per line")
	cmd.Flags().StringVarP(&proxiedFlag, "proxied-strategy", "p", "", "Strategy for proxied domains (manual, letsencrypt); prompts if unset")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Proceed with direct issuance even when DNS does not point here")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format (table, json, csv)")

	return cmd
}

// NewBulkCommand creates the bulk subcommand
func NewBulkCommand() *cobra.Command {
	var (
		serverIPFlag    string
		nameserverFlag  string
		rangesFlag      string
		formatFlag      string
		concurrencyFlag int
	)

	cmd := &cobra.Command{
		Use:   "bulk [file]",
		Short: "Plan certificate strategies for multiple domains",
		Long: `Resolve certificate strategies for every domain in a file (one per line,
# comments allowed) against the same server IP. Proxied domains are
reported as needing an operator choice; nothing is issued.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domains, err := strategy.ReadDomainsFromFile(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			resolver, err := buildResolver(cfg, nameserverFlag, rangesFlag)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			serverIP, err := resolveServerIP(ctx, cfg, serverIPFlag)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return err
			}

			planner := strategy.NewPlanner(resolver, concurrencyFlag)
			planner.SetProgressCallback(func(current, total int, domain string, success bool) {
				marker := "✅"
				if !success {
					marker = "❌"
				}
				fmt.Fprintf(os.Stderr, "[%d/%d] %s %s\n", current, total, marker, domain)
			})

			summary, err := planner.PlanAll(ctx, domains, serverIP)
			if err != nil {
				return err
			}

			formatter := output.NewFormatter(output.ParseFormat(formatFlag))
			return formatter.FormatPlanSummary(summary, os.Stdout)
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&serverIPFlag, "server-ip", "s", "", "Public IP of this server (skips discovery)")
	cmd.Flags().StringVarP(&nameserverFlag, "nameserver", "n", "", "Nameserver to query (IP address)")
	cmd.Flags().StringVarP(&rangesFlag, "cdn-ranges", "r", "", "File with CDN edge CIDR ranges, one per line")
	cmd.Flags().IntVarP(&concurrencyFlag, "concurrency", "c", 5, "Number of concurrent resolutions")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "Output format (table, json, csv)")

	return cmd
}

// buildResolver assembles the inspector, CDN allow-list and strategy
// resolver from config plus flag overrides.
func buildResolver(cfg *config.Config, nameserverFlag, rangesFlag string) (*strategy.Resolver, error) {
	nameserver := cfg.Nameserver
	if nameserverFlag != "" {
		nameserver = nameserverFlag
	}

	inspector := dns.NewInspectorWithOptions(dns.QueryOptions{
		Nameserver: nameserver,
		Timeout:    cfg.QueryTimeout,
	})

	cdnCfg := cdn.DefaultConfig()
	rangesFile := cfg.CdnRangesFile
	if rangesFlag != "" {
		rangesFile = rangesFlag
	}
	if rangesFile != "" {
		var err error
		cdnCfg, err = cdnCfg.WithRangesFromFile("cloudflare", rangesFile)
		if err != nil {
			return nil, err
		}
	}

	return strategy.NewResolver(inspector, cdnCfg)
}

// resolveServerIP returns the flag value when set, otherwise asks the
// configured IP echo service.
func resolveServerIP(ctx context.Context, cfg *config.Config, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	client := publicip.NewClient(cfg.IPServiceURL)
	ip, err := client.Discover(ctx)
	if err != nil {
		return "", err
	}

	fmt.Fprintf(os.Stderr, "📡 Discovered public IP: %s\n", ip)
	return ip, nil
}

// handleUnreachable reports the mismatch and, with --force or operator
// confirmation, downgrades it to a warning and plans direct issuance.
// The downgrade lives here in the CLI on purpose: the resolver itself
// never softens an unreachable domain.
func handleUnreachable(cmd *cobra.Command, res *strategy.Resolution, unreachable *strategy.UnreachableDomainError, force bool, formatFlag string) error {
	fmt.Fprintf(os.Stderr, "⚠️  %v\n", unreachable)

	if !force {
		ok, err := promptYesNo(cmd, "DNS does not point at this server. Proceed with direct issuance anyway?")
		if err != nil || !ok {
			return unreachable
		}
	}

	fmt.Fprintf(os.Stderr, "⚠️  Proceeding despite DNS mismatch; issuance will fail unless DNS propagates first\n")
	res.Decision = strategy.Decision{Strategy: strategy.DirectLetsEncrypt}

	formatter := output.NewFormatter(output.ParseFormat(formatFlag))
	return formatter.FormatResolution(res, os.Stdout)
}

// proxiedChoice returns the operator's pick for a proxied domain, from
// the flag when given, otherwise interactively.
func proxiedChoice(cmd *cobra.Command, flag string) (strategy.ProxiedChoice, error) {
	switch strings.ToLower(flag) {
	case "manual":
		return strategy.ChooseManualOrigin, nil
	case "letsencrypt":
		return strategy.ChooseProxiedLetsEncrypt, nil
	case "":
	default:
		return "", fmt.Errorf("invalid proxied strategy %q (want manual or letsencrypt)", flag)
	}

	fmt.Fprintln(os.Stderr, "Domain is behind a known CDN. Choose a certificate path:")
	fmt.Fprintln(os.Stderr, "  1) manual       - install a CDN origin certificate (recommended)")
	fmt.Fprintln(os.Stderr, "  2) letsencrypt  - attempt ACME issuance behind the proxy")

	answer, err := promptLine(cmd, "Choice [1/2]: ")
	if err != nil {
		return "", err
	}

	if answer == "2" || strings.EqualFold(answer, "letsencrypt") {
		return strategy.ChooseProxiedLetsEncrypt, nil
	}
	return strategy.ChooseManualOrigin, nil
}

func promptYesNo(cmd *cobra.Command, question string) (bool, error) {
	answer, err := promptLine(cmd, question+" [y/N]: ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes"), nil
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
