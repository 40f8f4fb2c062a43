package atlas

import "github.com/Carmen-Shannon/oxy-2d/common"

// RegistryOption is a functional option applied to a registry during construction via NewRegistry.
type RegistryOption func(*registryImpl)

// WithDecodeWorkers sets the number of workers decoding sheet images during Build.
// When not specified, the default is NumCPU-1 (minimum 1).
//
// Parameters:
//   - workers: the worker count (values < 1 are clamped to 1)
//
// Returns:
//   - RegistryOption: a function that applies the decode worker option to a registry
func WithDecodeWorkers(workers int) RegistryOption {
	return func(r *registryImpl) {
		r.decodeWorkers = max(workers, 1)
	}
}

// WithSampler overrides the atlas sampler configuration. Zero-valued fields
// fall back to the defaults (clamp-to-edge addressing, nearest filtering).
//
// Parameters:
//   - sampler: the sampler configuration
//
// Returns:
//   - RegistryOption: a function that applies the sampler option to a registry
func WithSampler(sampler common.SamplerStagingData) RegistryOption {
	return func(r *registryImpl) {
		r.sampler = sampler
	}
}
