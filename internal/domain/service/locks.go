package service

import "sync"

// groupLocks serializes ticks and roster changes of the same master group
type groupLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newGroupLocks() *groupLocks {
	return &groupLocks{locks: make(map[int64]*sync.Mutex)}
}

// Lock blocks until the group is free and returns its unlock func
func (l *groupLocks) Lock(groupID int64) func() {
	l.mu.Lock()
	lock, ok := l.locks[groupID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[groupID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
