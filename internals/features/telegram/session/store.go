package session

import (
	"context"
	"time"
)

type State string

const (
	StateUnlinked           State = "unlinked"
	StateAwaitingEmailInput State = "awaiting_email_input"
)

// DefaultTTL: sesi handshake yang terbengkalai hilang sendiri.
const DefaultTTL = 15 * time.Minute

type Session struct {
	State State
}

// Store menyimpan sesi handshake per chat. Sesi yang hilang (restart, TTL) berarti unlinked.
type Store interface {
	Get(ctx context.Context, chatID int64) (Session, bool, error)
	Set(ctx context.Context, chatID int64, s Session) error
	Delete(ctx context.Context, chatID int64) error
}
