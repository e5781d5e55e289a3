// SPDX-License-Identifier: MIT
// Package: eiscircuit/registry
//
// template.go - register-time checks of container default templates.
//
// The registry knows nothing of the CDC grammar beyond its reserved
// punctuation. A package that does (cdc) installs a TemplateValidator from its
// init, the way database/sql drivers register themselves.

package registry

import (
	"fmt"
	"sync"
)

// TemplateValidator checks the default template of the container def against
// the symbols of r. def is not yet registered in r when it runs, so a
// validator must resolve def's own symbol to def itself. It must not mark
// symbols as used.
type TemplateValidator func(r *Registry, def *Definition) error

var (
	validatorMu sync.RWMutex
	validator   TemplateValidator
)

// SetTemplateValidator installs v for every Registry. A nil v leaves only the
// bracket check.
func SetTemplateValidator(v TemplateValidator) {
	validatorMu.Lock()
	defer validatorMu.Unlock()
	validator = v
}

func templateValidator() TemplateValidator {
	validatorMu.RLock()
	defer validatorMu.RUnlock()

	return validator
}

// checkTemplate rejects a container whose default template would not parse.
// Element definitions pass untouched.
func (r *Registry) checkTemplate(def *Definition) error {
	sd, ok := def.Subcircuit()
	if !ok {
		return nil
	}
	err := checkBrackets(sd.Default)
	if err == nil {
		if v := templateValidator(); v != nil {
			err = v(r, def)
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %s: default template %q: %w", ErrInvalidDefinition, def.symbol, sd.Default, err)
	}

	return nil
}

// checkBrackets reports the first unbalanced or mismatched bracket in s.
// Complexity: O(len(s)).
func checkBrackets(s string) error {
	closer := map[byte]byte{'(': ')', '[': ']', '{': '}'}
	var open []int
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '(', '[', '{':
			open = append(open, i)
		case ')', ']', '}':
			if len(open) == 0 {
				return fmt.Errorf("unmatched %q at offset %d", c, i)
			}
			at := open[len(open)-1]
			if closer[s[at]] != c {
				return fmt.Errorf("%q at offset %d closes %q at offset %d", c, i, s[at], at)
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		at := open[len(open)-1]
		return fmt.Errorf("unclosed %q at offset %d", s[at], at)
	}

	return nil
}
