package dashboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mwiater/capdash/internal/appconfig"
	"github.com/mwiater/capdash/internal/benchmarks"
	"github.com/mwiater/capdash/internal/capability"
	"github.com/mwiater/capdash/internal/datafile"
	"github.com/mwiater/capdash/internal/logging"
	"github.com/mwiater/capdash/internal/store"
	"github.com/mwiater/capdash/internal/tabular"
)

// Snapshot is the data loaded at startup. It is never mutated after
// LoadSnapshot returns, so handlers share it without locking. The summary
// document is not part of it; counts are re-read per request.
type Snapshot struct {
	Dataset     *capability.Dataset
	Table       tabular.Table
	Benchmarks  []benchmarks.Dataset
	SummaryPath string
}

// LoadSnapshot reads the capability document (through cache when given),
// the tabular dataset and the benchmark tables. A missing table or benchmark
// directory is logged and left empty; a missing or invalid capability
// document is an error.
func LoadSnapshot(ctx context.Context, cfg appconfig.Config, cache *store.Cache) (Snapshot, error) {
	snap := Snapshot{SummaryPath: cfg.SummaryFilePath()}

	ds, err := loadDataset(ctx, cfg.HeightsFilePath(), cfg.CacheTTL(), cache)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Dataset = ds

	table, err := tabular.Load(cfg.TableFilePath())
	switch {
	case errors.Is(err, datafile.ErrFileNotFound):
		logging.LogEvent("tabular dataset %s not found; restaurant counts will be zero", cfg.TableFilePath())
		table = tabular.Table{}
	case err != nil:
		return Snapshot{}, err
	}
	snap.Table = table

	sets, err := benchmarks.LoadDir(cfg.BenchmarkDirPath())
	switch {
	case errors.Is(err, datafile.ErrFileNotFound):
		logging.LogDebug("benchmark directory %s not found", cfg.BenchmarkDirPath())
	case err != nil:
		return Snapshot{}, err
	}
	snap.Benchmarks = sets

	logging.LogEvent("loaded %d capabilities, %d table rows, %d benchmark tables", ds.Len(), len(table), len(sets))
	return snap, nil
}

func loadDataset(ctx context.Context, path string, ttl time.Duration, cache *store.Cache) (*capability.Dataset, error) {
	if cache == nil {
		return capability.Load(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		// surfaces the classified not-found error
		return capability.Load(path)
	}
	key := fmt.Sprintf("heights:%s:%d:%d", path, info.ModTime().UnixNano(), info.Size())
	data, err := cache.Memoize(ctx, key, ttl, func(context.Context) ([]byte, error) {
		logging.LogDebug("capability cache miss for %s", path)
		return datafile.Read(path)
	})
	if err != nil {
		return nil, err
	}
	return capability.Parse(path, data)
}
