// =============================================================================
// internal/strategy/planner.go - Bulk strategy planning
// =============================================================================
package strategy

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bryanCE/certplan/internal/dns"
)

// PlanResult is the outcome of planning a single domain.
type PlanResult struct {
	Domain     string
	Success    bool
	Error      error
	Resolution *Resolution
	StartTime  time.Time
	EndTime    time.Time
}

// PlanSummary aggregates a bulk planning run.
type PlanSummary struct {
	TotalDomains int
	Successful   int
	Failed       int
	Duration     time.Duration
	Results      []PlanResult
}

// Planner resolves strategies for many domains with a bounded worker pool.
// Servers hosting dozens of sites get one plan per domain in a single run.
type Planner struct {
	resolver         *Resolver
	concurrency      int
	progressCallback func(current, total int, domain string, success bool)
}

// NewPlanner creates a planner over a resolver with the given concurrency.
func NewPlanner(resolver *Resolver, concurrency int) *Planner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Planner{
		resolver:    resolver,
		concurrency: concurrency,
	}
}

// SetProgressCallback sets a callback for progress updates
func (p *Planner) SetProgressCallback(callback func(current, total int, domain string, success bool)) {
	p.progressCallback = callback
}

// ReadDomainsFromFile reads domains from a file (one per line).
// Empty lines and # comments are skipped; every domain is validated
// before any planning starts, so a bad file fails whole, not halfway.
func ReadDomainsFromFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var domains []string
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		domain := strings.TrimSpace(scanner.Text())

		if domain == "" || strings.HasPrefix(domain, "#") {
			continue
		}

		if err := dns.ValidateDomain(domain); err != nil {
			return nil, fmt.Errorf("invalid domain on line %d: %w", lineNum, err)
		}

		domains = append(domains, domain)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	if len(domains) == 0 {
		return nil, fmt.Errorf("no valid domains found in file")
	}

	return domains, nil
}

// PlanAll resolves a certificate strategy for every domain against the
// same server IP.
func (p *Planner) PlanAll(ctx context.Context, domains []string, serverIP string) (*PlanSummary, error) {
	startTime := time.Now()
	results := make([]PlanResult, 0, len(domains))

	domainChan := make(chan string, len(domains))
	for _, domain := range domains {
		domainChan <- domain
	}
	close(domainChan)

	resultChan := make(chan PlanResult, len(domains))

	var wg sync.WaitGroup
	for i := 0; i < p.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for domain := range domainChan {
				resultChan <- p.planSingle(ctx, domain, serverIP)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	processed := 0
	successful := 0
	for result := range resultChan {
		processed++
		results = append(results, result)

		if result.Success {
			successful++
		}

		if p.progressCallback != nil {
			p.progressCallback(processed, len(domains), result.Domain, result.Success)
		}
	}

	return &PlanSummary{
		TotalDomains: len(domains),
		Successful:   successful,
		Failed:       len(domains) - successful,
		Duration:     time.Since(startTime),
		Results:      results,
	}, nil
}

func (p *Planner) planSingle(ctx context.Context, domain, serverIP string) PlanResult {
	startTime := time.Now()

	resolution, err := p.resolver.Resolve(ctx, domain, serverIP)

	return PlanResult{
		Domain:     domain,
		Success:    err == nil,
		Error:      err,
		Resolution: resolution,
		StartTime:  startTime,
		EndTime:    time.Now(),
	}
}
