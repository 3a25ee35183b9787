package reflectx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/anoideaopen/introspect/core/logger"
	"github.com/anoideaopen/introspect/core/stringsx"
	"github.com/anoideaopen/introspect/core/telemetry"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrEndpointAlreadyDefined is returned when two methods map to the same endpoint name.
	ErrEndpointAlreadyDefined = errors.New("endpoint has already been defined")

	// ErrUnsupportedEndpoint is returned when the router has no endpoint of the requested name.
	ErrUnsupportedEndpoint = errors.New("unsupported endpoint")
)

// BytesEncoder is implemented by results that encode themselves for Router.Invoke.
type BytesEncoder interface {
	EncodeToBytes() ([]byte, error)
}

// RouterConfig holds configuration options for the Router.
type RouterConfig struct {
	DisabledMethods []string // Methods that are not routed.
	WithShims       bool     // Route registered shims of unexported methods as well.
}

// Router resolves every method of a value once and keeps the descriptors, so that repeated
// calls do not walk the hierarchy again. Endpoints are named after the methods with their first
// character lower-cased.
type Router struct {
	target    any
	endpoints map[string]*MethodDescriptor
}

// NewRouter creates a Router for target.
func NewRouter(target any, cfg RouterConfig) (*Router, error) {
	r := &Router{
		target:    target,
		endpoints: make(map[string]*MethodDescriptor),
	}

	for _, name := range Methods(target) {
		if slices.Contains(cfg.DisabledMethods, name) {
			continue
		}

		m := LocateMethodByName(target, name)
		if m == nil || (m.Shim() && !cfg.WithShims) {
			continue
		}

		endpoint := stringsx.LowerFirstChar(name)
		if _, ok := r.endpoints[endpoint]; ok {
			return nil, fmt.Errorf("%w, endpoint: '%s'", ErrEndpointAlreadyDefined, endpoint)
		}
		r.endpoints[endpoint] = m
	}

	return r, nil
}

// Check validates the provided arguments for the specified endpoint.
func (r *Router) Check(endpoint string, args ...string) error {
	m, ok := r.endpoints[endpoint]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedEndpoint, endpoint)
	}

	_, err := decodeArguments(m, args)
	return err
}

// Invoke calls the specified endpoint with the provided arguments and returns its result as
// JSON, or encoded with EncodeToBytes when the result is a BytesEncoder. Every invocation gets an
// ID, set on its span and on the log entry of a failure.
func (r *Router) Invoke(ctx context.Context, endpoint string, args ...string) (payload []byte, err error) {
	m, ok := r.endpoints[endpoint]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEndpoint, endpoint)
	}

	id := uuid.NewString()
	_, span := telemetry.StartSpan(ctx, "reflectx.Router.Invoke "+endpoint,
		trace.WithAttributes(
			telemetry.InvocationID(id),
			telemetry.Member(m.Name),
			telemetry.DeclaringType(m.Declaring.Type),
			telemetry.ArgCount(len(args)),
			telemetry.Shim(m.Shim()),
		),
	)
	defer func() {
		if err != nil {
			logger.Logger().WithFields(logrus.Fields{
				"invocation_id": id,
				"endpoint":      endpoint,
			}).WithError(err).Debug("invocation failed")
		}
		telemetry.EndSpan(span, err)
	}()

	values, err := decodeArguments(m, args)
	if err != nil {
		return nil, err
	}

	result, err := InvokeMethod(r.target, m, values...)
	if err != nil {
		return nil, err
	}

	if encoder, ok := result.(BytesEncoder); ok {
		return encoder.EncodeToBytes()
	}
	return json.Marshal(result)
}

// Endpoints returns the sorted endpoint names.
func (r *Router) Endpoints() []string {
	names := make([]string, 0, len(r.endpoints))
	for name := range r.endpoints {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Method returns the descriptor routed under endpoint.
func (r *Router) Method(endpoint string) (*MethodDescriptor, bool) {
	m, ok := r.endpoints[endpoint]
	return m, ok
}
