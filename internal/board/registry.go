package board

import (
	"fmt"
	"strings"
)

// Stage is one named, ordered step of the workflow.
type Stage struct {
	Name     string
	Position int
}

// Registry holds the immutable, totally ordered stage list plus the two
// distinguished stage names. It is built once at startup from configuration
// and read-only afterwards.
type Registry struct {
	stages  []Stage
	index   map[string]int
	archive string
	restore string
}

// NewRegistry builds a registry from an ordered stage list. The archive stage
// and restoration target must both appear in the list and must differ.
func NewRegistry(names []string, archiveStage, restorationTarget string) (*Registry, error) {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) < 2 {
		return nil, fmt.Errorf("%w: need at least two stages, got %d", ErrInvalidStageDefinition, len(cleaned))
	}

	reg := &Registry{
		stages:  make([]Stage, 0, len(cleaned)),
		index:   make(map[string]int, len(cleaned)),
		archive: strings.TrimSpace(archiveStage),
		restore: strings.TrimSpace(restorationTarget),
	}
	for i, name := range cleaned {
		if _, dup := reg.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate stage name %q", ErrInvalidStageDefinition, name)
		}
		reg.index[name] = i
		reg.stages = append(reg.stages, Stage{Name: name, Position: i})
	}

	if _, ok := reg.index[reg.archive]; !ok {
		return nil, fmt.Errorf("%w: archive stage %q is not in the stage list", ErrInvalidStageDefinition, reg.archive)
	}
	if _, ok := reg.index[reg.restore]; !ok {
		return nil, fmt.Errorf("%w: restoration target %q is not in the stage list", ErrInvalidStageDefinition, reg.restore)
	}
	if reg.archive == reg.restore {
		return nil, fmt.Errorf("%w: archive stage and restoration target must differ", ErrInvalidStageDefinition)
	}
	return reg, nil
}

// StagesInOrder returns the stages in registry order.
func (r *Registry) StagesInOrder() []Stage {
	cp := make([]Stage, len(r.stages))
	copy(cp, r.stages)
	return cp
}

// Names returns the ordered stage names.
func (r *Registry) Names() []string {
	names := make([]string, len(r.stages))
	for i, stage := range r.stages {
		names[i] = stage.Name
	}
	return names
}

// IndexOf returns a stage's position in the total order.
func (r *Registry) IndexOf(name string) (int, bool) {
	idx, ok := r.index[name]
	return idx, ok
}

// Exists reports whether a stage name is registered.
func (r *Registry) Exists(name string) bool {
	_, ok := r.index[name]
	return ok
}

// First returns the leftmost stage, the default landing spot for new stocks.
func (r *Registry) First() string {
	return r.stages[0].Name
}

// ArchiveStage returns the distinguished terminal stage name.
func (r *Registry) ArchiveStage() string {
	return r.archive
}

// RestorationTarget returns the only stage an archived stock may return to
// through a standard move.
func (r *Registry) RestorationTarget() string {
	return r.restore
}
