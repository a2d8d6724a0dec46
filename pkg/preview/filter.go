package preview

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/getmockd/mockmaster/pkg/generator"
)

// Filterer keeps the rows for which a boolean expression holds. Each field
// of a row is a variable: `is_active && amount > 500`,
// `role in ["Acme Inc", "Globex LLC"]`, `email endsWith "@example.com"`.
// Compiled programs are cached per expression and key set.
type Filterer struct {
	mu    sync.RWMutex
	cache map[string]*vm.Program
}

// NewFilterer creates a Filterer with an empty program cache.
func NewFilterer() *Filterer {
	return &Filterer{cache: make(map[string]*vm.Program)}
}

var defaultFilterer = NewFilterer()

// Filter applies expression to rows with the shared Filterer.
func Filter(rows generator.Dataset, expression string) (generator.Dataset, error) {
	return defaultFilterer.Filter(rows, expression)
}

// Filter returns the rows for which expression evaluates to true. An empty
// expression keeps every row. The input dataset is not modified.
func (f *Filterer) Filter(rows generator.Dataset, expression string) (generator.Dataset, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return append(generator.Dataset(nil), rows...), nil
	}

	out := make(generator.Dataset, 0, len(rows))
	for i, r := range rows {
		if r == nil {
			continue
		}
		keys := r.Keys()
		program, err := f.compile(expression, keys)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", expression, err)
		}
		result, err := expr.Run(program, r.Map())
		if err != nil {
			return nil, fmt.Errorf("eval %q on row %d: %w", expression, i, err)
		}
		keep, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("eval %q on row %d: expected bool, got %T", expression, i, result)
		}
		if keep {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Filterer) compile(expression string, keys []string) (*vm.Program, error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	cacheKey := expression + "\x00" + strings.Join(sorted, "\x00")

	f.mu.RLock()
	if program, ok := f.cache[cacheKey]; ok {
		f.mu.RUnlock()
		return program, nil
	}
	f.mu.RUnlock()

	// Values are typed at run time: an enum field can hold a string or nil.
	env := make(map[string]any, len(keys))
	for _, k := range keys {
		env[k] = nil
	}
	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	if existing, ok := f.cache[cacheKey]; ok {
		f.mu.Unlock()
		return existing, nil
	}
	f.cache[cacheKey] = program
	f.mu.Unlock()

	return program, nil
}

// cached returns the number of compiled programs held.
func (f *Filterer) cached() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.cache)
}
