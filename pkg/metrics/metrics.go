package metrics

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrLabelCountMismatch is returned when the number of label values doesn't match the defined labels.
var ErrLabelCountMismatch = errors.New("label count mismatch")

// ErrNegativeCounterValue is returned when attempting to add a negative value to a counter.
var ErrNegativeCounterValue = errors.New("counter cannot be decreased")

// atomicFloat64 stores the bits of a float64 for atomic access.
type atomicFloat64 struct {
	bits uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(atomic.LoadUint64(&a.bits))
}

func (a *atomicFloat64) Store(val float64) {
	atomic.StoreUint64(&a.bits, math.Float64bits(val))
}

func (a *atomicFloat64) Add(delta float64) {
	for {
		old := atomic.LoadUint64(&a.bits)
		next := math.Float64frombits(old) + delta
		if atomic.CompareAndSwapUint64(&a.bits, old, math.Float64bits(next)) {
			return
		}
	}
}

// Type is the Prometheus metric type.
type Type string

const (
	TypeCounter   Type = "counter"
	TypeGauge     Type = "gauge"
	TypeHistogram Type = "histogram"
)

// Sample is one exposition line.
type Sample struct {
	Name   string
	Labels []Label
	Value  float64
}

// Label is a name/value pair. Labels keep their declaration order.
type Label struct {
	Name  string
	Value string
}

// Metric is implemented by every metric kind.
type Metric interface {
	Name() string
	Help() string
	Type() Type
	Collect() []Sample
}

// family holds the label-keyed series of one metric.
type family[V any] struct {
	name       string
	help       string
	labelNames []string
	mu         sync.RWMutex
	series     map[string]*series[V]
	newValue   func() *V
}

type series[V any] struct {
	labels []Label
	value  *V
}

func newFamily[V any](name, help string, labelNames []string, newValue func() *V) *family[V] {
	return &family[V]{
		name:       name,
		help:       help,
		labelNames: labelNames,
		series:     make(map[string]*series[V]),
		newValue:   newValue,
	}
}

func (f *family[V]) Name() string { return f.name }
func (f *family[V]) Help() string { return f.help }

// get returns the series for values, creating it on first use.
func (f *family[V]) get(values []string) (*V, error) {
	if len(values) != len(f.labelNames) {
		return nil, fmt.Errorf("%w: %s expected %d labels, got %d", ErrLabelCountMismatch, f.name, len(f.labelNames), len(values))
	}
	key := strings.Join(values, "\x00")

	f.mu.RLock()
	s, ok := f.series[key]
	f.mu.RUnlock()
	if ok {
		return s.value, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok = f.series[key]; !ok {
		labels := make([]Label, len(values))
		for i, v := range values {
			labels[i] = Label{Name: f.labelNames[i], Value: v}
		}
		s = &series[V]{labels: labels, value: f.newValue()}
		f.series[key] = s
	}
	return s.value, nil
}

// snapshot returns the series sorted by label values.
func (f *family[V]) snapshot() []*series[V] {
	f.mu.RLock()
	keys := make([]string, 0, len(f.series))
	for k := range f.series {
		keys = append(keys, k)
	}
	out := make([]*series[V], 0, len(keys))
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, f.series[k])
	}
	f.mu.RUnlock()
	return out
}

// Counter is a monotonically increasing metric.
type Counter struct {
	*family[atomicFloat64]
}

func newCounter(name, help string, labelNames []string) *Counter {
	return &Counter{newFamily(name, help, labelNames, func() *atomicFloat64 { return &atomicFloat64{} })}
}

// Type returns TypeCounter.
func (c *Counter) Type() Type { return TypeCounter }

// Add adds delta to the series identified by values.
func (c *Counter) Add(delta float64, values ...string) error {
	if delta < 0 {
		return ErrNegativeCounterValue
	}
	v, err := c.get(values)
	if err != nil {
		return err
	}
	v.Add(delta)
	return nil
}

// Inc adds one to the series identified by values.
func (c *Counter) Inc(values ...string) error {
	return c.Add(1, values...)
}

// Value returns the current value of a series, zero if it was never touched.
func (c *Counter) Value(values ...string) float64 {
	v, err := c.get(values)
	if err != nil {
		return 0
	}
	return v.Load()
}

// Collect returns all samples.
func (c *Counter) Collect() []Sample {
	var out []Sample
	for _, s := range c.snapshot() {
		out = append(out, Sample{Name: c.name, Labels: s.labels, Value: s.value.Load()})
	}
	return out
}

// Gauge is a metric that can go up and down.
type Gauge struct {
	*family[atomicFloat64]
}

func newGauge(name, help string, labelNames []string) *Gauge {
	return &Gauge{newFamily(name, help, labelNames, func() *atomicFloat64 { return &atomicFloat64{} })}
}

// Type returns TypeGauge.
func (g *Gauge) Type() Type { return TypeGauge }

// Set sets the series identified by values.
func (g *Gauge) Set(value float64, values ...string) error {
	v, err := g.get(values)
	if err != nil {
		return err
	}
	v.Store(value)
	return nil
}

// Value returns the current value of a series.
func (g *Gauge) Value(values ...string) float64 {
	v, err := g.get(values)
	if err != nil {
		return 0
	}
	return v.Load()
}

// Collect returns all samples.
func (g *Gauge) Collect() []Sample {
	var out []Sample
	for _, s := range g.snapshot() {
		out = append(out, Sample{Name: g.name, Labels: s.labels, Value: s.value.Load()})
	}
	return out
}

// Histogram tracks the distribution of observed values.
type Histogram struct {
	*family[histogramValue]
	buckets []float64
}

type histogramValue struct {
	counts []uint64 // per bucket, not cumulative
	sum    atomicFloat64
	count  uint64
}

func newHistogram(name, help string, buckets []float64, labelNames []string) *Histogram {
	sorted := append([]float64(nil), buckets...)
	sort.Float64s(sorted)
	if len(sorted) == 0 || !math.IsInf(sorted[len(sorted)-1], 1) {
		sorted = append(sorted, math.Inf(1))
	}
	h := &Histogram{buckets: sorted}
	h.family = newFamily(name, help, labelNames, func() *histogramValue {
		return &histogramValue{counts: make([]uint64, len(sorted))}
	})
	return h
}

// Type returns TypeHistogram.
func (h *Histogram) Type() Type { return TypeHistogram }

// Observe records value in the series identified by values.
func (h *Histogram) Observe(value float64, values ...string) error {
	hv, err := h.get(values)
	if err != nil {
		return err
	}
	i := sort.SearchFloat64s(h.buckets, value)
	if i == len(h.buckets) {
		i-- // NaN
	}
	atomic.AddUint64(&hv.counts[i], 1)
	hv.sum.Add(value)
	atomic.AddUint64(&hv.count, 1)
	return nil
}

// Collect returns the cumulative bucket, _sum and _count samples.
func (h *Histogram) Collect() []Sample {
	var out []Sample
	for _, s := range h.snapshot() {
		var cumulative uint64
		for i, bound := range h.buckets {
			cumulative += atomic.LoadUint64(&s.value.counts[i])
			labels := append(append([]Label(nil), s.labels...), Label{Name: "le", Value: formatFloat(bound)})
			out = append(out, Sample{Name: h.name + "_bucket", Labels: labels, Value: float64(cumulative)})
		}
		out = append(out,
			Sample{Name: h.name + "_sum", Labels: s.labels, Value: s.value.sum.Load()},
			Sample{Name: h.name + "_count", Labels: s.labels, Value: float64(atomic.LoadUint64(&s.value.count))},
		)
	}
	return out
}

// Registry holds registered metrics in registration order.
type Registry struct {
	mu      sync.RWMutex
	metrics []Metric
	names   map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// NewCounter creates and registers a counter.
func (r *Registry) NewCounter(name, help string, labels ...string) *Counter {
	c := newCounter(name, help, labels)
	r.register(c)
	return c
}

// NewGauge creates and registers a gauge.
func (r *Registry) NewGauge(name, help string, labels ...string) *Gauge {
	g := newGauge(name, help, labels)
	r.register(g)
	return g
}

// NewHistogram creates and registers a histogram with the given buckets.
func (r *Registry) NewHistogram(name, help string, buckets []float64, labels ...string) *Histogram {
	h := newHistogram(name, help, buckets, labels)
	r.register(h)
	return h
}

// register panics on a duplicate name, since that would produce invalid output.
func (r *Registry) register(m Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.names[m.Name()]; exists {
		panic("duplicate metric name: " + m.Name())
	}
	r.names[m.Name()] = struct{}{}
	r.metrics = append(r.metrics, m)
}

// WriteTo writes every metric with at least one sample.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	r.mu.RLock()
	metrics := append([]Metric(nil), r.metrics...)
	r.mu.RUnlock()

	var b strings.Builder
	for _, m := range metrics {
		samples := m.Collect()
		if len(samples) == 0 {
			continue
		}
		fmt.Fprintf(&b, "# HELP %s %s\n", m.Name(), escapeHelp(m.Help()))
		fmt.Fprintf(&b, "# TYPE %s %s\n", m.Name(), m.Type())
		for _, s := range samples {
			b.WriteString(s.Name)
			if len(s.Labels) > 0 {
				b.WriteByte('{')
				for i, l := range s.Labels {
					if i > 0 {
						b.WriteByte(',')
					}
					fmt.Fprintf(&b, "%s=\"%s\"", l.Name, escapeLabelValue(l.Value))
				}
				b.WriteByte('}')
			}
			b.WriteByte(' ')
			b.WriteString(formatFloat(s.Value))
			b.WriteByte('\n')
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// ContentType is the exposition format media type.
const ContentType = "text/plain; version=0.0.4; charset=utf-8"

// Handler serves the registry.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", ContentType)
		_, _ = r.WriteTo(w)
	})
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func escapeHelp(s string) string {
	return strings.NewReplacer(`\`, `\\`, "\n", `\n`).Replace(s)
}

func escapeLabelValue(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s)
}

// DefaultBuckets are histogram buckets for request durations, in seconds.
var DefaultBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
