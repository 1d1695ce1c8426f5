package pipe

import (
	"fmt"
	"sync"
)

// Store holds named pipes.
type Store struct {
	mu    sync.RWMutex
	pipes map[string]*Pipe
	order []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{pipes: make(map[string]*Pipe)}
}

// Add inserts p under p.Name.
func (st *Store) Add(p *Pipe) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.pipes[p.Name]; ok {
		return fmt.Errorf("Add(%q): %w", p.Name, ErrPipeExists)
	}
	st.pipes[p.Name] = p
	st.order = append(st.order, p.Name)

	return nil
}

// Get returns the pipe called name.
func (st *Store) Get(name string) (*Pipe, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	p, ok := st.pipes[name]
	if !ok {
		return nil, fmt.Errorf("Get(%q): %w", name, ErrNoPipe)
	}

	return p, nil
}

// Delete removes the pipe called name.
func (st *Store) Delete(name string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.pipes[name]; !ok {
		return fmt.Errorf("Delete(%q): %w", name, ErrNoPipe)
	}
	delete(st.pipes, name)
	for i, n := range st.order {
		if n == name {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}

	return nil
}

// Names returns pipe names in insertion order.
func (st *Store) Names() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return append([]string(nil), st.order...)
}

// Copy deep-copies pipe from into a new pipe called to.
func (st *Store) Copy(from, to string) (*Pipe, error) {
	src, err := st.Get(from)
	if err != nil {
		return nil, err
	}
	cp := src.Clone(to)
	if err = st.Add(cp); err != nil {
		return nil, err
	}

	return cp, nil
}

// GetOrCreate returns the pipe called name, creating an empty one if needed.
func (st *Store) GetOrCreate(name string) *Pipe {
	st.mu.Lock()
	defer st.mu.Unlock()
	if p, ok := st.pipes[name]; ok {
		return p
	}
	p := New(name)
	st.pipes[name] = p
	st.order = append(st.order, name)

	return p
}

// Duplicate copies the results of pipe from into pipe to, creating it when
// needed. With spin < 0 every spin and the global statistics are copied.
// Otherwise only the spin at that index is copied; an empty target first
// receives the bare spin sequence of from.
//
// Relaxation metadata and the tensor are copied when the target lacks them
// and must agree when it has them (ErrInconsistent).
func (st *Store) Duplicate(from, to string, spin int) error {
	src, err := st.Get(from)
	if err != nil {
		return err
	}
	dst := st.GetOrCreate(to)

	// Stage 1: pipe level data.
	for _, r := range src.ri {
		if err = dst.AddRelaxation(r.ID, r.Type, r.Frq); err != nil {
			return fmt.Errorf("Duplicate(%q, %q): %w: %w", from, to, ErrInconsistent, err)
		}
	}
	switch {
	case dst.Tensor == nil:
		dst.Tensor = src.Tensor.Clone()
	case !dst.Tensor.Equal(src.Tensor):
		return fmt.Errorf("Duplicate(%q, %q): tensor: %w", from, to, ErrInconsistent)
	}
	if dst.SimNumber == 0 {
		dst.SimNumber, dst.SimState = src.SimNumber, src.SimState
	}

	// Stage 2: spins.
	if spin < 0 {
		dst.Spins = make([]*Spin, len(src.Spins))
		for i, s := range src.Spins {
			dst.Spins[i] = s.Clone()
		}
		dst.Stats = src.Stats
		dst.SimStats = append([]Stats(nil), src.SimStats...)
		dst.SimSelect = append([]bool(nil), src.SimSelect...)

		return nil
	}
	if spin >= len(src.Spins) {
		return fmt.Errorf("Duplicate(%q, %q): spin index %d: %w", from, to, spin, ErrNoSpin)
	}
	if len(dst.Spins) == 0 {
		for _, s := range src.Spins {
			dst.Spins = append(dst.Spins, NewSpin(s.ID))
		}
	}
	if len(dst.Spins) != len(src.Spins) || dst.Spins[spin].ID != src.Spins[spin].ID {
		return fmt.Errorf("Duplicate(%q, %q): spin sequence: %w", from, to, ErrInconsistent)
	}
	dst.Spins[spin] = src.Spins[spin].Clone()

	return nil
}
