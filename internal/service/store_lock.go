package service

import "sync"

// StoreLock serializes mutating calls across every service backed by
// the same entity store, so a topic cascade and a task write can never
// interleave mid-operation. All services sharing one database must
// share one StoreLock.
type StoreLock struct {
	mu sync.Mutex
}

func NewStoreLock() *StoreLock { return &StoreLock{} }

func (l *StoreLock) Lock()   { l.mu.Lock() }
func (l *StoreLock) Unlock() { l.mu.Unlock() }
