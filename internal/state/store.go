package state

import "sync"

// Record is a mutually-exclusive shared value with snapshot-read and
// replace-write semantics. Callers must never block while holding the lock;
// readers take a snapshot and release before doing any local processing.
//
// Each record has exactly one writer component. The lock does not enforce
// this; it is a design invariant checked by review and access-pattern tests.
type Record[T any] struct {
	mu    sync.Mutex
	value T
}

func NewRecord[T any](initial T) *Record[T] {
	return &Record[T]{value: initial}
}

// Snapshot returns a copy of the current value.
func (r *Record[T]) Snapshot() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Replace overwrites the whole value.
func (r *Record[T]) Replace(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
}

// Update mutates the value in place under the lock. The callback must not
// block or call back into the store.
func (r *Record[T]) Update(fn func(*T)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.value)
}

// Store groups the four shared records of the controller core. It is created
// once at process start and lives for the process lifetime.
type Store struct {
	Measurements *Record[Measurements]
	Settings     *Record[ControlSettings]
	Status       *Record[ControlStatus]
	Fault        *Record[FaultState]
}

func NewStore() *Store {
	return &Store{
		Measurements: NewRecord(Measurements{}),
		Settings:     NewRecord(DefaultControlSettings()),
		Status:       NewRecord(ControlStatus{Mode: ModeIdle}),
		Fault:        NewRecord(FaultState{Code: FaultNone}),
	}
}

// CurrentFault is a convenience accessor for the active fault code.
func (s *Store) CurrentFault() FaultCode {
	return s.Fault.Snapshot().Code
}

// ClearFault resets the fault record to FaultNone. The safety monitor will
// immediately re-raise the fault if the underlying condition persists.
func (s *Store) ClearFault() {
	s.Fault.Replace(FaultState{Code: FaultNone})
}
