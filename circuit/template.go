// Package: eiscircuit/circuit
//
// template.go - hook expanding a container's default template.

package circuit

import (
	"sync"

	"github.com/katalvlaran/eiscircuit/registry"
)

// TemplateExpander builds the default sub-circuit of the container def,
// resolving template symbols in reg.
type TemplateExpander func(reg *registry.Registry, def *registry.Definition) (*Connection, error)

var (
	expanderMu sync.RWMutex
	expander   TemplateExpander
)

// SetTemplateExpander installs fn as the expander FromMap and NodeFromMap use
// for containers without a "subcircuit" entry. A nil fn removes it.
func SetTemplateExpander(fn TemplateExpander) {
	expanderMu.Lock()
	defer expanderMu.Unlock()
	expander = fn
}

func templateExpander() TemplateExpander {
	expanderMu.RLock()
	defer expanderMu.RUnlock()

	return expander
}
