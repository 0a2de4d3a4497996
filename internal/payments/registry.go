package payments

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/orderedmap"
)

// Registry holds the gateways in display order
type Registry struct {
	gateways *orderedmap.Map[string, Gateway]
}

// NewRegistry creates a registry with gateways in the given order
func NewRegistry(gateways ...Gateway) *Registry {
	r := &Registry{gateways: orderedmap.New[string, Gateway]()}
	for _, g := range gateways {
		r.gateways.Push(g.ID(), g)
	}
	return r
}

// Get returns the gateway with id
func (r *Registry) Get(id string) (Gateway, error) {
	g, ok := r.gateways.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGatewayNotFound, id)
	}
	return g, nil
}

// All returns every gateway
func (r *Registry) All() []Gateway {
	return r.gateways.Values()
}

// Available returns the gateways enabled in settings; free is always available
func (r *Registry) Available(settings *domain.Settings) []Gateway {
	available := make([]Gateway, 0, r.gateways.Len())
	r.gateways.ForEach(func(id string, g Gateway) bool {
		if id == GatewayFree || settings.IsGatewayEnabled(id) {
			available = append(available, g)
		}
		return true
	})
	return available
}

// LoadAll loads every gateway in ids; failed gateways are returned separately
func (r *Registry) LoadAll(ctx context.Context, ids []string) (loaded []Gateway, failed map[string]error) {
	failed = make(map[string]error)
	for _, id := range ids {
		g, err := r.Get(id)
		if err != nil {
			failed[id] = err
			continue
		}
		if err := g.Load(ctx); err != nil {
			failed[id] = err
			continue
		}
		loaded = append(loaded, g)
	}
	return loaded, failed
}
