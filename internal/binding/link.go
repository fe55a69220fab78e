package binding

import (
	"fmt"
	"strings"

	"github.com/davit-sh/davit/internal/values"
)

// CyclicReferenceError reports a dependency cycle among derived bindings.
// No binding list is produced when a cycle exists.
type CyclicReferenceError struct {
	// Names are the bindings implicated in (or blocked behind) the cycle,
	// in declaration order.
	Names []string
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("cyclic reference among bindings: %s", strings.Join(e.Names, ", "))
}

// Link orders declared bindings so that every derived binding appears
// strictly after everything it references. Bindings with no relative
// dependency keep their declaration order, so output is reproducible and
// diff-friendly across renders.
//
// A reference to a name not declared anywhere is a *values.ConfigError; a
// cycle is a *CyclicReferenceError. Either way no partial list is returned.
func Link(declared []Binding) ([]Binding, error) {
	index := make(map[string]int, len(declared))
	for i, b := range declared {
		if _, dup := index[b.Name]; dup {
			return nil, &values.ConfigError{Path: b.Name, Reason: "binding declared twice in the same container"}
		}
		index[b.Name] = i
	}

	// Unresolved dependency count per binding, by declaration position.
	pending := make([]int, len(declared))
	dependents := make(map[int][]int, len(declared))
	for i, b := range declared {
		for _, ref := range b.References() {
			dep, ok := index[ref]
			if !ok {
				return nil, &values.ConfigError{
					Path:   b.Name,
					Reason: fmt.Sprintf("references undefined binding $(%s)", ref),
				}
			}
			if dep == i {
				return nil, &CyclicReferenceError{Names: []string{b.Name}}
			}
			pending[i]++
			dependents[dep] = append(dependents[dep], i)
		}
	}

	// Kahn's algorithm, always taking the earliest-declared ready binding.
	// Env lists are small; the quadratic scan keeps ordering obviously
	// stable without a priority queue.
	ordered := make([]Binding, 0, len(declared))
	emitted := make([]bool, len(declared))
	for len(ordered) < len(declared) {
		next := -1
		for i := range declared {
			if !emitted[i] && pending[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			var stuck []string
			for i, b := range declared {
				if !emitted[i] {
					stuck = append(stuck, b.Name)
				}
			}
			return nil, &CyclicReferenceError{Names: stuck}
		}

		emitted[next] = true
		ordered = append(ordered, declared[next])
		for _, dep := range dependents[next] {
			pending[dep]--
		}
	}

	return ordered, nil
}
