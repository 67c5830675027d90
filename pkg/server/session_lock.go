package server

import (
	"hash/fnv"
	"sync"
)

// sessionLocks serializes read-modify-write cycles on stored selections.
// Sessions hash onto a fixed set of stripes. The lock only covers this
// replica, a shared redis store stays last writer wins across replicas.
type sessionLocks [64]sync.Mutex

func (l *sessionLocks) lock(sessionId, collection string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(collection))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(sessionId))
	m := &l[h.Sum32()%uint32(len(l))]
	m.Lock()
	return m.Unlock
}
