package parameter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/TechXTT/ydbc/pkg/internal/typeconv"
	"github.com/TechXTT/ydbc/pkg/types"
)

// Params holds the named values bound to one statement execution.
// Names always carry the leading '$' used by YQL. The zero value is an empty
// set ready to use.
type Params struct {
	values map[string]types.Value
	order  []string
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{values: map[string]types.Value{}}
}

// Normalize prefixes name with '$' when missing.
func Normalize(name string) string {
	if strings.HasPrefix(name, "$") {
		return name
	}
	return "$" + name
}

// Set resolves v and binds it to name, replacing an earlier binding.
func (p *Params) Set(name string, v any) error {
	name = Normalize(name)
	if name == "$" {
		return fmt.Errorf("parameter: empty name")
	}
	val, err := Resolve(v)
	if err != nil {
		return fmt.Errorf("parameter %s: %w", name, err)
	}
	if p.values == nil {
		p.values = map[string]types.Value{}
	}
	if _, exists := p.values[name]; !exists {
		p.order = append(p.order, name)
	}
	p.values[name] = val
	return nil
}

// Get returns the value bound to name.
func (p *Params) Get(name string) (types.Value, bool) {
	if p == nil {
		return types.Value{}, false
	}
	v, ok := p.values[Normalize(name)]
	return v, ok
}

// Len returns the number of bound parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}

// Names returns the bound names in binding order.
func (p *Params) Names() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.order...)
}

// Declare renders DECLARE clauses for every parameter, sorted by name.
func (p *Params) Declare() string {
	names := p.Names()
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		b.WriteString(typeconv.Declare(n, p.values[n].YQLType()))
		b.WriteString("\n")
	}
	return b.String()
}

// Clone returns an independent copy of p.
func (p *Params) Clone() *Params {
	c := NewParams()
	if p == nil {
		return c
	}
	c.order = append(c.order, p.order...)
	for k, v := range p.values {
		c.values[k] = v
	}
	return c
}
