package slip

import "sync/atomic"

// Token is the cooperative cancellation flag for one job. It is set from
// the signal handler goroutine and polled by the sequencer at page, band
// and scanline boundaries, so output is never truncated mid-command. The
// transition is one-way.
type Token struct {
	flag atomic.Bool
}

func NewToken() *Token {
	return &Token{}
}

// Cancel requests termination of the job.
func (t *Token) Cancel() {
	t.flag.Store(true)
}

// Canceled reports whether cancellation was requested. A nil token never
// cancels.
func (t *Token) Canceled() bool {
	if t == nil {
		return false
	}
	return t.flag.Load()
}
