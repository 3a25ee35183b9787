package reflectx

import (
	"context"
	"fmt"
)

// Mux routes endpoints to the Router that defines them, so that the methods of several values
// can be served together.
type Mux struct {
	endpointRouter map[string]*Router // endpoint -> router
}

// NewMux creates a Mux over routers. It returns ErrEndpointAlreadyDefined if two routers define
// the same endpoint.
func NewMux(routers ...*Router) (*Mux, error) {
	endpointRouter := make(map[string]*Router)

	for _, r := range routers {
		for _, endpoint := range r.Endpoints() {
			if _, ok := endpointRouter[endpoint]; ok {
				return nil, fmt.Errorf("%w, endpoint: '%s'", ErrEndpointAlreadyDefined, endpoint)
			}

			endpointRouter[endpoint] = r
		}
	}

	return &Mux{endpointRouter: endpointRouter}, nil
}

// Check validates the provided arguments for the specified endpoint.
func (m *Mux) Check(endpoint string, args ...string) error {
	if r, ok := m.endpointRouter[endpoint]; ok {
		return r.Check(endpoint, args...)
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedEndpoint, endpoint)
}

// Invoke calls the specified endpoint on the router that defines it.
func (m *Mux) Invoke(ctx context.Context, endpoint string, args ...string) ([]byte, error) {
	if r, ok := m.endpointRouter[endpoint]; ok {
		return r.Invoke(ctx, endpoint, args...)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedEndpoint, endpoint)
}

// Method returns the descriptor routed under endpoint, whichever router defines it.
func (m *Mux) Method(endpoint string) (*MethodDescriptor, bool) {
	if r, ok := m.endpointRouter[endpoint]; ok {
		return r.Method(endpoint)
	}

	return nil, false
}
