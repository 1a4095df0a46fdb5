package capdash

import (
	"context"

	"github.com/mwiater/capdash/internal/appconfig"
	"github.com/mwiater/capdash/internal/capability"
	"github.com/mwiater/capdash/internal/dashboard"
	"github.com/mwiater/capdash/internal/logging"
	"github.com/mwiater/capdash/internal/store"
)

// loadDataset reads the capability document named by cfg.
func loadDataset(cfg *appconfig.Config) (*capability.Dataset, error) {
	ds, err := capability.Load(cfg.HeightsFilePath())
	if err != nil {
		return nil, err
	}
	logging.LogDebug("loaded %d capabilities from %s", ds.Len(), cfg.HeightsFilePath())
	return ds, nil
}

// resolveSelection returns args, or the configured default selection when
// args is empty. Repeated names count once and unknown names are an error.
func resolveSelection(ds *capability.Dataset, cfg *appconfig.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		known, unknown := ds.FilterKnown(cfg.DefaultCapabilities())
		if len(unknown) > 0 {
			logging.LogEvent("dropping unknown default capabilities: %v", unknown)
		}
		return known, nil
	}
	return ds.Resolve(args)
}

// openSnapshot opens the store and loads the startup snapshot through its
// cache. The caller closes the store.
func openSnapshot(ctx context.Context, cfg *appconfig.Config) (dashboard.Snapshot, *store.Store, error) {
	st, err := store.OpenDir(ctx, cfg.CacheDirPath())
	if err != nil {
		return dashboard.Snapshot{}, nil, err
	}
	snap, err := dashboard.LoadSnapshot(ctx, *cfg, st.Cache())
	if err != nil {
		st.Close()
		return dashboard.Snapshot{}, nil, err
	}
	return snap, st, nil
}
