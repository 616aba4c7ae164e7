package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/shellgame-go/internal/dependencies/mocks"
	"github.com/mcoot/shellgame-go/internal/services/auth"
	"github.com/mcoot/shellgame-go/internal/storage/memory"
	"github.com/mcoot/shellgame-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, auth.Config{BcryptCost: bcrypt.MinCost}, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}

// QueueGame queues the random values consumed by one CreateGame call
func (t *TestApp) QueueGame(id, token string) {
	t.MockRandom.QueueString(id, token)
}
