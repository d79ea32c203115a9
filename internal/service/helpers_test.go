package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/mailer"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// openTestDB gives each test its own named in-memory database so state never
// bleeds between tests sharing the process.
func openTestDB(t *testing.T, tables ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(tables...))
	return db
}

// recorderMailer captures messages synchronously so tests can assert on the
// notification side channel.
type recorderMailer struct {
	mu       sync.Mutex
	messages []mailer.Message
	result   mailer.Result
}

func newRecorderMailer() *recorderMailer {
	return &recorderMailer{result: mailer.Result{Success: true, Message: "recorded"}}
}

func (r *recorderMailer) Send(_ context.Context, msg mailer.Message) mailer.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return r.result
}

func (r *recorderMailer) sent() []mailer.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mailer.Message(nil), r.messages...)
}
