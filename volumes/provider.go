// Package volumes implements the pluggable volume-provider framework: per
// volume kind, a provider owns the validation rules and the materialization
// of the volume into runtime launch artifacts.
package volumes

import (
	"fmt"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-set/v3"

	"github.com/harborline/stowage/structs"
)

// Provider owns one volume kind. Implementations are stateless beyond
// immutable configuration and are shared across concurrent requests.
type Provider interface {
	// Name is the stable provider identifier matched against a persistent
	// volume's Provider field.
	Name() string

	// Accepts reports whether this provider is responsible for the volume.
	Accepts(v structs.Volume) bool

	// SelectVolumes filters the container's volumes to those this provider
	// accepts, preserving declaration order. A nil container selects nothing.
	SelectVolumes(c *structs.Container) []structs.Volume

	// ValidateVolume checks provider-specific structural rules on a single
	// volume.
	ValidateVolume(v structs.Volume) structs.ValidationResult

	// ValidateContainer checks provider-specific rules spanning the volumes
	// of a single container.
	ValidateContainer(c *structs.Container) structs.ValidationResult

	// ValidateGroup checks provider-specific rules spanning every
	// application of a deployment group.
	ValidateGroup(g *structs.Group) structs.ValidationResult

	// Materialize maps the volume into an updated copy of the context.
	// It returns (ctx, false) untouched when this provider produces no
	// change for the (context, containerizer, volume) combination.
	// Materialize assumes the volume already passed validation.
	Materialize(ctx BuildContext, v structs.Volume) (BuildContext, bool)
}

// Settings answers presence queries against the orchestrator's configuration.
// The framework only ever asks whether a setting is declared; sourcing values
// is the orchestrator's business.
type Settings interface {
	IsSet(name string) bool
}

// StaticSettings is a Settings backed by a fixed set of declared names.
type StaticSettings struct {
	declared *set.Set[string]
}

// NewStaticSettings builds a StaticSettings declaring exactly names.
func NewStaticSettings(names ...string) *StaticSettings {
	return &StaticSettings{declared: set.From(names)}
}

func (s *StaticSettings) IsSet(name string) bool {
	return s.declared.Contains(name)
}

// Registry is the fixed, ordered set of volume providers. Dispatch is first
// provider that accepts wins; provider acceptance predicates are disjoint so
// order only decides how unmatched volumes fail.
type Registry struct {
	logger    hclog.Logger
	providers []Provider
}

// NewRegistry builds the builtin provider registry. settings backs the
// agent-local provider's configuration checks.
func NewRegistry(logger hclog.Logger, settings Settings) *Registry {
	return &Registry{
		logger: logger.Named("volumes"),
		providers: []Provider{
			&DVDIProvider{},
			&AgentLocalProvider{settings: settings},
			&HostVolumeProvider{},
		},
	}
}

// Providers returns the registry's providers in dispatch order.
func (r *Registry) Providers() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// ProviderFor returns the first provider accepting v.
func (r *Registry) ProviderFor(v structs.Volume) (Provider, bool) {
	for _, p := range r.providers {
		if p.Accepts(v) {
			return p, true
		}
	}
	return nil, false
}

// ValidateVolume dispatches volume-level validation. A volume no provider
// accepts is a violation, never silently dropped.
func (r *Registry) ValidateVolume(v structs.Volume) structs.ValidationResult {
	p, ok := r.ProviderFor(v)
	if !ok {
		return structs.Failure(noProviderViolation(v))
	}
	return p.ValidateVolume(v)
}

// ValidateContainer runs volume-level validation over every volume of the
// container and container-level validation for every provider, merging all
// failures into one result. Per-volume failures are grouped under the
// volume's position so the report stays navigable.
func (r *Registry) ValidateContainer(c *structs.Container) structs.ValidationResult {
	result := structs.Success()
	if c == nil {
		return result
	}

	for i, v := range c.Volumes {
		p, ok := r.ProviderFor(v)
		if !ok {
			result = result.Merge(structs.Failure(noProviderViolation(v)))
			continue
		}

		if vr := p.ValidateVolume(v); !vr.OK() {
			result = result.Merge(structs.Failure(structs.GroupViolation(
				fmt.Sprintf("volumes[%d]", i), "invalid volume declaration", vr.Violations)))
		}
	}

	for _, p := range r.providers {
		result = result.Merge(p.ValidateContainer(c))
	}
	return result
}

// ValidateGroup runs group-level validation for every provider over the
// whole deployment group.
func (r *Registry) ValidateGroup(g *structs.Group) structs.ValidationResult {
	result := structs.Success()
	for _, p := range r.providers {
		result = result.Merge(p.ValidateGroup(g))
	}
	return result
}

// Materialize dispatches the volume to its provider and returns the updated
// context, or (ctx, false) untouched when no provider accepts the volume or
// the accepting provider has nothing to apply.
func (r *Registry) Materialize(ctx BuildContext, v structs.Volume) (BuildContext, bool) {
	p, ok := r.ProviderFor(v)
	if !ok {
		r.logger.Warn("no provider accepts volume", "path", v.TargetPath())
		return ctx, false
	}

	next, changed := p.Materialize(ctx, v)
	if changed {
		r.logger.Debug("materialized volume",
			"provider", p.Name(), "path", v.TargetPath())
	}
	return next, changed
}

// MaterializeContainer folds Materialize over the container's volumes in
// declaration order and returns the final context. A nil container returns
// ctx unchanged.
func (r *Registry) MaterializeContainer(ctx BuildContext, c *structs.Container) BuildContext {
	if c == nil {
		return ctx
	}
	for _, v := range c.Volumes {
		next, changed := r.Materialize(ctx, v)
		if changed {
			ctx = next
		}
	}
	return ctx
}

func noProviderViolation(v structs.Volume) structs.Violation {
	return structs.RuleViolation("volumes",
		fmt.Sprintf("no volume provider accepts the volume at %s", v.TargetPath()))
}

// selectVolumes is the shared SelectVolumes implementation.
func selectVolumes(p Provider, c *structs.Container) []structs.Volume {
	if c == nil {
		return nil
	}
	var out []structs.Volume
	for _, v := range c.Volumes {
		if p.Accepts(v) {
			out = append(out, v)
		}
	}
	return out
}
