// Package gls provides goroutine-local stacks of opaque values, keyed by
// goroutine ID.
//
// Go has no implicit execution context, so the queue runtime substitutes an
// explicit one: every task it executes pushes its queue on the calling
// goroutine's stack on entry and pops it on exit. Arbitrary call frames
// inside the task can then resolve "the queue I am running on" through
// [Top] without threading a handle through every signature.
//
// A stack is only ever pushed and popped by its owning goroutine; the
// sharded mutexes serialize map access across goroutines, nothing more.
package gls

import (
	"sync"

	"github.com/petermattis/goid"
)

const shardCount = 64

type shard struct {
	mu     sync.Mutex
	stacks map[int64][]any
}

var shards [shardCount]shard

func init() {
	for i := range shards {
		shards[i].stacks = make(map[int64][]any)
	}
}

func shardFor(gid int64) *shard {
	return &shards[uint64(gid)%shardCount]
}

// Push pushes v on the calling goroutine's stack.
func Push(v any) {
	gid := goid.Get()
	s := shardFor(gid)
	s.mu.Lock()
	s.stacks[gid] = append(s.stacks[gid], v)
	s.mu.Unlock()
}

// Pop removes the top of the calling goroutine's stack. Popping an empty
// stack is a no-op. The map entry is dropped once the stack drains so
// finished goroutines leave nothing behind.
func Pop() {
	gid := goid.Get()
	s := shardFor(gid)
	s.mu.Lock()
	st := s.stacks[gid]
	if n := len(st); n > 0 {
		if n == 1 {
			delete(s.stacks, gid)
		} else {
			s.stacks[gid] = st[:n-1]
		}
	}
	s.mu.Unlock()
}

// Top returns the top of the calling goroutine's stack, or false if the
// goroutine has nothing pushed.
func Top() (any, bool) {
	gid := goid.Get()
	s := shardFor(gid)
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stacks[gid]
	if len(st) == 0 {
		return nil, false
	}
	return st[len(st)-1], true
}

// Stack returns a copy of the calling goroutine's stack, bottom first.
func Stack() []any {
	gid := goid.Get()
	s := shardFor(gid)
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stacks[gid]
	if len(st) == 0 {
		return nil
	}
	out := make([]any, len(st))
	copy(out, st)
	return out
}
