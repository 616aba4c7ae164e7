package mocks

import (
	"slices"
	"sync"

	"github.com/mcoot/shellgame-go/internal/dependencies/random"
)

// MockRandom replays queued values. It is safe to share with a server
// goroutine while the test queues more values.
type MockRandom struct {
	mu      sync.Mutex
	ints    []int
	strings []string
	calls   []int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a MockRandom with empty queues
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn pops the next queued int, or returns 0 when the queue is empty.
// Queued values are not checked against n.
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, n)
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

// String pops the next queued string, or returns "" when the queue is empty
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.strings) == 0 {
		return ""
	}
	v := r.strings[0]
	r.strings = r.strings[1:]
	return v
}

// QueueIntn appends values for Intn
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, values...)
}

// QueueString appends values for String
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strings = append(r.strings, values...)
}

// IntnCalls returns the bound passed to each Intn call, in order
func (r *MockRandom) IntnCalls() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Pending returns how many queued ints are still unconsumed
func (r *MockRandom) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ints)
}
