package policy

import (
	"sync/atomic"

	ierr "github.com/readysethq/ratecard/internal/errors"
	"github.com/readysethq/ratecard/internal/types"
)

// Registry resolves client configurations by client id. The backing map is
// published as an immutable snapshot behind an atomic pointer: a reload swaps
// the whole snapshot, so in-flight calculations never observe a partially
// updated configuration.
type Registry struct {
	snapshot atomic.Pointer[map[string]*ClientConfiguration]
}

// NewRegistry validates every client configuration and publishes the first
// snapshot. Configuration errors are fatal at startup.
func NewRegistry(configs []*ClientConfiguration) (*Registry, error) {
	r := &Registry{}
	if err := r.Replace(configs); err != nil {
		return nil, err
	}
	return r, nil
}

// Resolve returns the configuration for the given client id
func (r *Registry) Resolve(clientID string) (*ClientConfiguration, error) {
	snapshot := r.snapshot.Load()
	if snapshot != nil {
		if cfg, ok := (*snapshot)[clientID]; ok {
			return cfg, nil
		}
	}
	return nil, ierr.NewError("unknown client").
		WithHintf("no pricing configuration for client %s", clientID).
		Mark(ierr.ErrNotFound)
}

// Replace validates the given configurations and atomically swaps them in as
// the new snapshot. On error the previous snapshot stays published.
func (r *Registry) Replace(configs []*ClientConfiguration) error {
	next := make(map[string]*ClientConfiguration, len(configs))
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.Policy.ID == "" {
			cfg.Policy.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_POLICY)
		}
		if _, ok := next[cfg.Policy.ClientID]; ok {
			return ierr.NewError("duplicate client configuration").
				WithReportableDetails(map[string]any{"client_id": cfg.Policy.ClientID}).
				Mark(ierr.ErrInvalidConfiguration)
		}
		next[cfg.Policy.ClientID] = cfg
	}

	r.snapshot.Store(&next)
	return nil
}

// ClientIDs lists the clients in the current snapshot
func (r *Registry) ClientIDs() []string {
	snapshot := r.snapshot.Load()
	if snapshot == nil {
		return nil
	}
	ids := make([]string, 0, len(*snapshot))
	for id := range *snapshot {
		ids = append(ids, id)
	}
	return ids
}
