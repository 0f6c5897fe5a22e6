package client

import (
	"chat-feed/domain"
	"time"

	"github.com/samber/lo"
)

// Resequencer restores sequence order on a stream that may arrive out of order or
// replay records after a reconnect.
//
// Records at or below the last released id are duplicates and dropped. A record ahead
// of the next expected id waits in a buffer until the missing ids arrive, or until the
// gap has been open for gapTimeout, in which case the gap is skipped: sequence ids are
// allowed to have holes.
type Resequencer struct {
	anchored   bool
	last       uint64
	pending    map[uint64]domain.MessageRecord
	gapTimeout time.Duration
	gapSince   time.Time
	now        func() time.Time
}

// NewResequencer returns an unanchored resequencer: the first record received sets the
// starting point. Use Anchor when the cursor of the stream is known.
func NewResequencer(gapTimeout time.Duration) *Resequencer {
	return &Resequencer{
		pending:    make(map[uint64]domain.MessageRecord),
		gapTimeout: gapTimeout,
		now:        time.Now,
	}
}

// Anchor declares last as already released, the next expected id is last+1.
func (r *Resequencer) Anchor(last uint64) *Resequencer {
	r.anchored = true
	r.last = last
	return r
}

// Last is the sequence id of the last released record.
func (r *Resequencer) Last() uint64 { return r.last }

// Anchored reports whether the starting point is known.
func (r *Resequencer) Anchored() bool { return r.anchored }

func (r *Resequencer) Pending() int { return len(r.pending) }

// Push accepts a record and returns the records now ready, in order.
func (r *Resequencer) Push(record domain.MessageRecord) []domain.MessageRecord {
	if !r.anchored {
		r.Anchor(record.SequenceID - 1)
	}
	if record.SequenceID <= r.last {
		return nil
	}
	if _, ok := r.pending[record.SequenceID]; ok {
		return nil
	}
	r.pending[record.SequenceID] = record
	return r.drain()
}

// Expire skips the current gap when it has been open for longer than the gap timeout
// and returns the records released by doing so.
func (r *Resequencer) Expire() []domain.MessageRecord {
	if len(r.pending) == 0 || r.now().Sub(r.gapSince) < r.gapTimeout {
		return nil
	}
	r.last = r.lowestPending() - 1
	return r.drain()
}

func (r *Resequencer) drain() []domain.MessageRecord {
	var ready []domain.MessageRecord
	for {
		record, ok := r.pending[r.last+1]
		if !ok {
			break
		}
		delete(r.pending, record.SequenceID)
		r.last = record.SequenceID
		ready = append(ready, record)
	}
	switch {
	case len(r.pending) == 0:
		r.gapSince = time.Time{}
	case len(ready) > 0 || r.gapSince.IsZero():
		r.gapSince = r.now()
	}
	return ready
}

func (r *Resequencer) lowestPending() uint64 {
	return lo.Min(lo.Keys(r.pending))
}
