package services

import "sync"

// userLocks serializes ledger mutations per user. Entries are reference
// counted and dropped once no goroutine holds or waits on them.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*userLock)}
}

// Lock blocks until the caller owns uid's lock and returns the release func.
func (l *userLocks) Lock(uid string) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.locks[uid]
	if !ok {
		entry = &userLock{}
		l.locks[uid] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, uid)
		}
		l.mu.Unlock()
	}
}

// size reports the number of tracked users.
func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
