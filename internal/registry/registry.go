// Package registry holds the process-wide table of legal status transitions
// per entity kind, plus the initial-status policy for records that carry no
// status yet. The registry is built once at startup and is read-only
// afterwards, so concurrent reads need no locking.
package registry

import (
	"fmt"

	"github.com/fiscaladmin/gam-status/internal/model"
)

// Graph describes one entity kind's transition table. Transitions maps each
// "from" status to the set of legal targets; a status present with an empty
// target list is terminal. Initial lists the statuses legal to assign to a
// record that has no status field yet.
type Graph struct {
	Transitions map[model.Status][]model.Status
	Initial     []model.Status
}

// Registry is the immutable set of transition graphs keyed by entity kind.
type Registry struct {
	graphs map[model.EntityKind]Graph
}

// New builds a Registry from per-kind graphs. Every kind in the entity kind
// catalog must have a graph, even an empty one; a missing kind is a
// configuration defect reported at construction time, never at runtime.
func New(graphs map[model.EntityKind]Graph) (*Registry, error) {
	for _, kind := range model.Kinds() {
		if _, ok := graphs[kind]; !ok {
			return nil, fmt.Errorf("transition registry: no graph for entity kind %s", kind)
		}
	}
	for kind, graph := range graphs {
		if _, err := model.KindFromName(kind.String()); err != nil {
			return nil, fmt.Errorf("transition registry: %w", err)
		}
		if err := validateGraph(kind, graph); err != nil {
			return nil, err
		}
	}

	// Deep-copy so later mutation of the caller's maps cannot leak in.
	copied := make(map[model.EntityKind]Graph, len(graphs))
	for kind, graph := range graphs {
		transitions := make(map[model.Status][]model.Status, len(graph.Transitions))
		for from, targets := range graph.Transitions {
			transitions[from] = append([]model.Status(nil), targets...)
		}
		copied[kind] = Graph{
			Transitions: transitions,
			Initial:     append([]model.Status(nil), graph.Initial...),
		}
	}

	return &Registry{graphs: copied}, nil
}

func validateGraph(kind model.EntityKind, graph Graph) error {
	check := func(s model.Status) error {
		if _, err := model.StatusFromCode(s.Code()); err != nil {
			return fmt.Errorf("transition registry: kind %s references %w", kind, err)
		}
		return nil
	}
	for from, targets := range graph.Transitions {
		if err := check(from); err != nil {
			return err
		}
		for _, to := range targets {
			if err := check(to); err != nil {
				return err
			}
		}
	}
	for _, s := range graph.Initial {
		if err := check(s); err != nil {
			return err
		}
	}
	return nil
}

// CanTransition reports whether moving from current to target is legal for
// the given kind. A nil current means the record carries no status yet, in
// which case target must be one of the kind's initial statuses. The check is
// total: unknown kinds, empty targets and unknown "from" states all yield
// false rather than an error.
func (r *Registry) CanTransition(kind model.EntityKind, current *model.Status, target model.Status) bool {
	if kind == "" || target == "" {
		return false
	}
	graph, ok := r.graphs[kind]
	if !ok {
		return false
	}

	if current == nil {
		return contains(graph.Initial, target)
	}

	targets, ok := graph.Transitions[*current]
	if !ok {
		return false
	}
	return contains(targets, target)
}

// ValidTransitions returns the legal target statuses for the given kind and
// current status. The result is empty for unknown kinds, for statuses that
// are not a valid "from" state of the kind, and for terminal statuses. The
// returned slice is a copy of the registry's view.
func (r *Registry) ValidTransitions(kind model.EntityKind, current model.Status) []model.Status {
	graph, ok := r.graphs[kind]
	if !ok {
		return nil
	}
	targets, ok := graph.Transitions[current]
	if !ok {
		return nil
	}
	return append([]model.Status(nil), targets...)
}

// InitialStatuses returns the statuses legal to assign to a record of the
// given kind that has no status yet. The returned slice is a copy.
func (r *Registry) InitialStatuses(kind model.EntityKind) []model.Status {
	graph, ok := r.graphs[kind]
	if !ok {
		return nil
	}
	return append([]model.Status(nil), graph.Initial...)
}

func contains(statuses []model.Status, s model.Status) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
