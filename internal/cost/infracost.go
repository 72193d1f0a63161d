package cost

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"time"

	drifterrors "github.com/driftscan/driftscan/internal/errors"
	"github.com/driftscan/driftscan/internal/logger"
)

const defaultTimeout = 2 * time.Minute

// InfracostProvider shells out to the infracost CLI for cost breakdowns.
type InfracostProvider struct {
	binary  string
	timeout time.Duration
	log     logger.Logger
}

// NewInfracostProvider creates a provider. An empty binary defaults to
// "infracost" on PATH; a zero timeout defaults to two minutes.
func NewInfracostProvider(binary string, timeout time.Duration, log logger.Logger) *InfracostProvider {
	if binary == "" {
		binary = "infracost"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logger.Discard()
	}
	return &InfracostProvider{binary: binary, timeout: timeout, log: log}
}

// breakdown mirrors the subset of infracost's JSON output the overlay needs.
type breakdown struct {
	Projects []struct {
		Breakdown *projectBreakdown `json:"breakdown"`
	} `json:"projects"`
}

type projectBreakdown struct {
	TotalMonthlyCost string `json:"totalMonthlyCost"`
	Resources        []struct {
		Name         string `json:"name"`
		ResourceType string `json:"resourceType"`
		MonthlyCost  string `json:"monthlyCost"`
	} `json:"resources"`
}

// TotalMonthlyCost sums totalMonthlyCost across all projects in the breakdown.
func (p *InfracostProvider) TotalMonthlyCost(ctx context.Context, dir string) (float64, error) {
	bd, err := p.run(ctx, dir)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, project := range bd.Projects {
		if project.Breakdown == nil {
			continue
		}
		total += parseCost(project.Breakdown.TotalMonthlyCost)
	}
	return total, nil
}

// ResourceMonthlyCosts collects per-resource costs keyed by "type.name".
func (p *InfracostProvider) ResourceMonthlyCosts(ctx context.Context, dir string) (map[string]float64, error) {
	bd, err := p.run(ctx, dir)
	if err != nil {
		return nil, err
	}
	costs := make(map[string]float64)
	for _, project := range bd.Projects {
		if project.Breakdown == nil {
			continue
		}
		for _, res := range project.Breakdown.Resources {
			key := res.ResourceType + "." + res.Name
			costs[key] += parseCost(res.MonthlyCost)
		}
	}
	return costs, nil
}

func (p *InfracostProvider) run(ctx context.Context, dir string) (*breakdown, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.log.WithFields(map[string]interface{}{
		"binary": p.binary,
		"path":   dir,
	}).Debug("running cost breakdown")

	cmd := exec.CommandContext(ctx, p.binary, "breakdown", "--path", dir, "--format", "json")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			p.log.WithField("stderr", stderr.String()).Debug("cost provider failed")
		}
		return nil, drifterrors.ProviderUnavailable(err)
	}

	bd, err := parseBreakdown(stdout.Bytes())
	if err != nil {
		return nil, drifterrors.ProviderUnavailable(err)
	}
	return bd, nil
}

func parseBreakdown(data []byte) (*breakdown, error) {
	var bd breakdown
	if err := json.Unmarshal(data, &bd); err != nil {
		return nil, err
	}
	return &bd, nil
}

// parseCost tolerates the empty and malformed cost strings infracost emits
// for free resources, treating them as zero.
func parseCost(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
