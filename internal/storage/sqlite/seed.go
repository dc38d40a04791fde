package sqlite

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/willibrandon/ruledeck/internal/alerts"
)

// SeedFile is the YAML document accepted by `ruledeck import`.
//
//	rules:
//	  - id: 1
//	    name: High CPU
//	    dashboard_uri: db/servers
//	    panel_id: 2
//	    state: alerting
//	    new_state_date: 2024-03-01T12:00:00Z
//	    eval_matches:
//	      - metric: cpu
//	        value: 95
type SeedFile struct {
	Rules []SeedRule `yaml:"rules"`
}

// SeedRule is one rule of a seed file.
type SeedRule struct {
	ID             int64              `yaml:"id"`
	Name           string             `yaml:"name"`
	DashboardURI   string             `yaml:"dashboard_uri"`
	PanelID        int64              `yaml:"panel_id"`
	State          string             `yaml:"state"`
	NewStateDate   time.Time          `yaml:"new_state_date"`
	ExecutionError string             `yaml:"execution_error"`
	NoData         bool               `yaml:"no_data"`
	EvalMatches    []alerts.EvalMatch `yaml:"eval_matches"`
}

// ParseSeed decodes and validates a seed document.
func ParseSeed(r io.Reader) ([]alerts.Rule, error) {
	var doc SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[int64]bool, len(doc.Rules))
	rules := make([]alerts.Rule, 0, len(doc.Rules))
	for i, sr := range doc.Rules {
		if sr.ID <= 0 {
			return nil, fmt.Errorf("rule #%d: id must be positive", i+1)
		}
		if seen[sr.ID] {
			return nil, fmt.Errorf("rule #%d: duplicate id %d", i+1, sr.ID)
		}
		seen[sr.ID] = true
		if sr.Name == "" {
			return nil, fmt.Errorf("rule %d: name is required", sr.ID)
		}
		if sr.DashboardURI == "" {
			return nil, fmt.Errorf("rule %d: dashboard_uri is required", sr.ID)
		}

		stateStr := sr.State
		if stateStr == "" {
			stateStr = alerts.StateUnknown.String()
		}
		state, err := alerts.ParseState(stateStr)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", sr.ID, err)
		}

		rules = append(rules, alerts.Rule{
			ID:           sr.ID,
			Name:         sr.Name,
			DashboardURI: sr.DashboardURI,
			PanelID:      sr.PanelID,
			State:        state,
			NewStateDate: sr.NewStateDate,
			Info:         alerts.BuildInfo(sr.ExecutionError, sr.NoData, sr.EvalMatches),
		})
	}
	return rules, nil
}

// ParseSeedFile reads a seed document from disk.
func ParseSeedFile(path string) ([]alerts.Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSeed(f)
}
