// =============================================================================
// internal/output/formatter.go - Output formatting for different formats
// =============================================================================
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bryanCE/certplan/internal/ssl"
	"github.com/bryanCE/certplan/internal/strategy"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatCSV   OutputFormat = "csv"
)

// ParseFormat maps a user-supplied format flag to an OutputFormat,
// defaulting to table.
func ParseFormat(flag string) OutputFormat {
	switch strings.ToLower(flag) {
	case "json":
		return FormatJSON
	case "csv":
		return FormatCSV
	default:
		return FormatTable
	}
}

// Formatter handles output formatting for different formats
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a new formatter with the specified format
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// FormatResolution formats a single strategy resolution with its diagnostics.
func (f *Formatter) FormatResolution(res *strategy.Resolution, writer io.Writer) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(res)
	case FormatCSV:
		return f.formatResolutionCSV(res, writer)
	default:
		return f.formatResolutionTable(res, writer)
	}
}

// FormatPlanSummary formats a bulk planning run.
func (f *Formatter) FormatPlanSummary(summary *strategy.PlanSummary, writer io.Writer) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	case FormatCSV:
		return f.formatPlanSummaryCSV(summary, writer)
	default:
		return f.formatPlanSummaryTable(summary, writer)
	}
}

// FormatCertInfo formats a served-certificate report.
func (f *Formatter) FormatCertInfo(info *ssl.CertInfo, writer io.Writer) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	default:
		return f.formatCertInfoTable(info, writer)
	}
}

func (f *Formatter) formatResolutionTable(res *strategy.Resolution, writer io.Writer) error {
	fmt.Fprintf(writer, "🔍 Certificate strategy for %s\n", res.Domain)
	fmt.Fprintf(writer, "📡 Server IP: %s\n", res.Diagnostics.ServerIP)
	fmt.Fprintf(writer, "🕐 Snapshot taken: %s\n\n", res.Diagnostics.Snapshot.TakenAt.Format("2006-01-02 15:04:05"))

	table := NewTable([]string{"Field", "Value"})
	table.AddRow([]string{"Verdict", string(res.Verdict)})

	if res.Verdict == strategy.DirectNotProxied {
		table.AddRow([]string{"Reachable", fmt.Sprintf("%t", res.Reachable)})
	}
	if m := res.Diagnostics.CdnMatch; m != nil {
		table.AddRow([]string{"CDN provider", m.Provider})
		table.AddRow([]string{"Matched by", fmt.Sprintf("%s (%s)", m.Rule, m.Value)})
	}
	if res.Decision.ChoiceRequired {
		table.AddRow([]string{"Strategy", "operator choice: manual-origin or proxied-letsencrypt"})
	} else if res.Decision.Strategy != "" {
		table.AddRow([]string{"Strategy", string(res.Decision.Strategy)})
	}

	table.AddRow([]string{"Nameservers", joinOrDash(res.Diagnostics.Snapshot.Nameservers)})
	table.AddRow([]string{"A records", joinOrDash(res.Diagnostics.Snapshot.ARecords)})

	return table.Render(writer)
}

func (f *Formatter) formatResolutionCSV(res *strategy.Resolution, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	header := []string{"Domain", "Verdict", "Reachable", "Strategy", "ChoiceRequired", "Nameservers", "ARecords", "ServerIP"}
	if err := csvWriter.Write(header); err != nil {
		return err
	}

	row := []string{
		res.Domain,
		string(res.Verdict),
		fmt.Sprintf("%t", res.Reachable),
		string(res.Decision.Strategy),
		fmt.Sprintf("%t", res.Decision.ChoiceRequired),
		strings.Join(res.Diagnostics.Snapshot.Nameservers, ";"),
		strings.Join(res.Diagnostics.Snapshot.ARecords, ";"),
		res.Diagnostics.ServerIP,
	}
	return csvWriter.Write(row)
}

func (f *Formatter) formatPlanSummaryTable(summary *strategy.PlanSummary, writer io.Writer) error {
	fmt.Fprintf(writer, "📋 Bulk Strategy Plan\n")
	fmt.Fprintf(writer, "📊 Total: %d | ✅ Planned: %d | ❌ Failed: %d\n",
		summary.TotalDomains, summary.Successful, summary.Failed)
	fmt.Fprintf(writer, "⏱️  Duration: %v\n\n", summary.Duration)

	table := NewTable([]string{"Domain", "Verdict", "Strategy", "Status"})

	for _, result := range summary.Results {
		verdict := "-"
		strategyCol := "-"
		status := "✅ OK"

		if result.Resolution != nil {
			verdict = string(result.Resolution.Verdict)
			if result.Resolution.Decision.ChoiceRequired {
				strategyCol = "operator choice"
			} else if result.Resolution.Decision.Strategy != "" {
				strategyCol = string(result.Resolution.Decision.Strategy)
			}
		}
		if result.Error != nil {
			status = "❌ " + truncateString(result.Error.Error(), 60)
		}

		table.AddRow([]string{result.Domain, verdict, strategyCol, status})
	}

	return table.Render(writer)
}

func (f *Formatter) formatPlanSummaryCSV(summary *strategy.PlanSummary, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	header := []string{"Domain", "Verdict", "Strategy", "ChoiceRequired", "Error"}
	if err := csvWriter.Write(header); err != nil {
		return err
	}

	for _, result := range summary.Results {
		verdict := ""
		strategyCol := ""
		choice := "false"
		errMsg := ""

		if result.Resolution != nil {
			verdict = string(result.Resolution.Verdict)
			strategyCol = string(result.Resolution.Decision.Strategy)
			choice = fmt.Sprintf("%t", result.Resolution.Decision.ChoiceRequired)
		}
		if result.Error != nil {
			errMsg = result.Error.Error()
		}

		if err := csvWriter.Write([]string{result.Domain, verdict, strategyCol, choice, errMsg}); err != nil {
			return err
		}
	}

	return nil
}

func (f *Formatter) formatCertInfoTable(info *ssl.CertInfo, writer io.Writer) error {
	fmt.Fprintf(writer, "🔐 Certificate served by %s\n\n", info.Domain)

	table := NewTable([]string{"Field", "Value"})
	table.AddRow([]string{"Issuer", truncateString(info.Issuer, 60)})
	table.AddRow([]string{"Common name", info.CommonName})
	table.AddRow([]string{"SANs", joinOrDash(info.DNSNames)})
	table.AddRow([]string{"Valid", fmt.Sprintf("%t", info.IsValid)})
	table.AddRow([]string{"Let's Encrypt", fmt.Sprintf("%t", info.LetsEncrypt)})
	table.AddRow([]string{"Not before", info.NotBefore.Format("2006-01-02")})
	table.AddRow([]string{"Not after", info.NotAfter.Format("2006-01-02")})
	table.AddRow([]string{"Expires in", fmt.Sprintf("%d days", info.ExpiresIn)})

	return table.Render(writer)
}

// Utility functions
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
