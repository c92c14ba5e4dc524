package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/puppybowl/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	mu sync.Mutex

	// TokenResults is a queue of results to return from Token
	TokenResults []string
	tokenIndex   int

	// Err, when set, is returned by every Token call
	Err error

	calls int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Token returns the next queued result, or a numbered placeholder once the queue is drained
func (r *MockRandom) Token(byteLen int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if r.Err != nil {
		return "", r.Err
	}
	if r.tokenIndex >= len(r.TokenResults) {
		return fmt.Sprintf("mock-token-%d", r.calls), nil
	}
	result := r.TokenResults[r.tokenIndex]
	r.tokenIndex++
	return result, nil
}

// QueueToken adds values to the Token result queue
func (r *MockRandom) QueueToken(values ...string) {
	r.mu.Lock()
	r.TokenResults = append(r.TokenResults, values...)
	r.mu.Unlock()
}

// Calls returns how many times Token was called
func (r *MockRandom) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	r.TokenResults = nil
	r.tokenIndex = 0
	r.Err = nil
	r.calls = 0
	r.mu.Unlock()
}
