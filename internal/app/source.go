package app

import (
	"fmt"

	"github.com/willibrandon/ruledeck/internal/alerts"
	"github.com/willibrandon/ruledeck/internal/config"
	"github.com/willibrandon/ruledeck/internal/grafana"
	"github.com/willibrandon/ruledeck/internal/logger"
	"github.com/willibrandon/ruledeck/internal/storage/sqlite"
)

// Backend is the rule source selected by configuration, plus the local
// database used for view state and history.
type Backend struct {
	Source      alerts.Source
	Description string
	BaseURL     string

	// DB is the local database; nil when it could not be opened for a
	// remote source.
	DB *sqlite.DB

	// Rules is set when the local database is the rule source.
	Rules *sqlite.RuleStore
}

// OpenBackend creates the rule source for cfg.
func OpenBackend(cfg *config.Config) (*Backend, error) {
	switch cfg.Source {
	case config.SourceGrafana:
		client, err := grafana.NewClient(grafana.Config{
			URL:     cfg.Grafana.URL,
			APIKey:  cfg.Grafana.APIKey,
			OrgID:   cfg.Grafana.OrgID,
			Timeout: cfg.Grafana.Timeout,
		})
		if err != nil {
			return nil, err
		}

		b := &Backend{
			Source:      client,
			Description: "grafana " + client.BaseURL(),
			BaseURL:     client.BaseURL(),
		}

		// View state is optional for a remote source.
		db, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			logger.Warn("app: local database unavailable, view state will not persist", "path", cfg.Storage.Path, "error", err)
		} else {
			b.DB = db
		}
		return b, nil

	case config.SourceSQLite:
		db, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open rule database: %w", err)
		}
		rules := sqlite.NewRuleStore(db)
		return &Backend{
			Source:      rules,
			Description: "sqlite " + db.Path(),
			DB:          db,
			Rules:       rules,
		}, nil

	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// ViewState returns the persister for query state, or nil without a database.
func (b *Backend) ViewState() *sqlite.ViewStateStore {
	if b.DB == nil {
		return nil
	}
	return sqlite.NewViewStateStore(b.DB)
}

// Close releases the local database.
func (b *Backend) Close() error {
	if b.DB != nil {
		return b.DB.Close()
	}
	return nil
}
