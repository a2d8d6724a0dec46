package export

import (
	"sync"
)

// Registry manages exporters for different formats.
type Registry struct {
	mu        sync.RWMutex
	exporters map[Format]Exporter
}

// NewRegistry returns a registry holding the built-in exporters.
func NewRegistry() *Registry {
	r := &Registry{exporters: make(map[Format]Exporter)}
	r.RegisterExporter(&JSONExporter{})
	r.RegisterExporter(&CSVExporter{})
	r.RegisterExporter(&YAMLExporter{})
	r.RegisterExporter(&NDJSONExporter{})
	return r
}

// defaultRegistry is the global registry instance.
var defaultRegistry = NewRegistry()

// RegisterExporter adds an exporter to the default registry.
func RegisterExporter(exporter Exporter) {
	defaultRegistry.RegisterExporter(exporter)
}

// GetExporter returns the exporter for a format from the default registry.
func GetExporter(format Format) Exporter {
	return defaultRegistry.GetExporter(format)
}

// ListExporters returns all registered exporters from the default registry.
func ListExporters() []Exporter {
	return defaultRegistry.ListExporters()
}

// RegisterExporter adds an exporter to the registry, replacing any
// exporter already registered for the same format.
func (r *Registry) RegisterExporter(exporter Exporter) {
	if exporter == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exporters[exporter.Format()] = exporter
}

// GetExporter returns the exporter for a format.
func (r *Registry) GetExporter(format Format) Exporter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exporters[format]
}

// ListExporters returns all registered exporters ordered by format name.
func (r *Registry) ListExporters() []Exporter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]Format, 0, len(r.exporters))
	for f := range r.exporters {
		formats = append(formats, f)
	}
	sortFormats(formats)

	result := make([]Exporter, 0, len(formats))
	for _, f := range formats {
		result = append(result, r.exporters[f])
	}
	return result
}

// HasExporter checks if an exporter is registered for the format.
func (r *Registry) HasExporter(format Format) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.exporters[format]
	return ok
}
