package cli

import (
	"context"
	"sync"

	"github.com/churnlens/churnlens-cli/internal/adapters/driven/storage/watch"
	"github.com/churnlens/churnlens-cli/internal/core/domain"
	"github.com/churnlens/churnlens-cli/internal/core/ports/driving"
	"github.com/churnlens/churnlens-cli/internal/logger"
)

// reloadingQueryService delegates to the most recently loaded query
// service. Long-running surfaces hold it while builds replace the
// artifact underneath them.
type reloadingQueryService struct {
	mu      sync.RWMutex
	current driving.QueryService
}

var _ driving.QueryService = (*reloadingQueryService)(nil)

func newReloadingQueryService(initial driving.QueryService) *reloadingQueryService {
	return &reloadingQueryService{current: initial}
}

func (r *reloadingQueryService) swap(next driving.QueryService) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = next
}

func (r *reloadingQueryService) get() driving.QueryService {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *reloadingQueryService) Ask(ctx context.Context, question string, k int) (domain.QueryResult, error) {
	return r.get().Ask(ctx, question, k)
}

func (r *reloadingQueryService) Retrieve(ctx context.Context, question string, k int) ([]domain.RetrievedDocument, error) {
	return r.get().Retrieve(ctx, question, k)
}

func (r *reloadingQueryService) Size() int { return r.get().Size() }

func (r *reloadingQueryService) ModelID() string { return r.get().ModelID() }

// getWatchedQueryService returns a query service that reloads itself
// when the artifact file is replaced by a rebuild. The returned closer
// stops the watcher; it is nil when a service was injected for tests.
func getWatchedQueryService(ctx context.Context) (driving.QueryService, *watch.Watcher, error) {
	if queryService != nil {
		return queryService, nil, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	initial, err := buildQueryService(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	reloader := newReloadingQueryService(initial)

	watcher := watch.New(cfg.Artifact.Path)
	changes, err := watcher.Watch(ctx)
	if err != nil {
		// Queries still work without live reload.
		logger.Warn("artifact watch unavailable: %v", err)
		return reloader, nil, nil
	}

	go func() {
		for range changes {
			next, err := buildQueryService(ctx, cfg)
			if err != nil {
				logger.Warn("artifact reload failed: %v", err)
				continue
			}
			reloader.swap(next)
			logger.Info("artifact reloaded: %d documents", next.Size())
		}
	}()

	return reloader, watcher, nil
}
