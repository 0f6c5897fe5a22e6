package repositories

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"chat-feed/errors"
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const (
	messagePrefix = "msg:"
	lastSeqKey    = "meta:last_seq"
	// Larger than any 20 digits zero padded uint64, used to seek the tail in reverse.
	maxSeqSuffix = "99999999999999999999"
)

var _ contract.ILogBackend = (*BadgerLog)(nil)

// BadgerLog stores the feed in BadgerDB.
// Every record lives under "msg:{sequence_id padded to 20 digits}" so that the
// lexicographical order of keys is the insertion order. The last assigned sequence id
// is kept under "meta:last_seq" and updated in the same transaction as the record,
// which makes sequence assignment and persistence one atomic commit.
type BadgerLog struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerLog(db *badger.DB, log *slog.Logger) *BadgerLog {
	return &BadgerLog{db: db, log: log}
}

// OpenBadgerLog opens (or creates) a Badger directory. An empty path runs in memory.
func OpenBadgerLog(path string, log *slog.Logger) (*BadgerLog, error) {
	options := badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING)
	if path == "" {
		options = options.WithInMemory(true)
	}
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}
	return NewBadgerLog(db, log), nil
}

func messageKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", messagePrefix, seq))
}

func (b *BadgerLog) Append(ctx context.Context, cmd domain.PostMessageCommand, at time.Time) (domain.MessageRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.MessageRecord{}, err
	}
	var record domain.MessageRecord
	err := b.db.Update(func(txn *badger.Txn) error {
		last, err := readLastSeq(txn)
		if err != nil {
			return err
		}
		record = domain.MessageRecord{
			SequenceID:        last + 1,
			SenderID:          cmd.SenderID,
			SenderDisplayName: cmd.SenderDisplayName,
			Text:              cmd.Text,
			CreatedAt:         at.UTC(),
		}
		if err = txn.Set(messageKey(record.SequenceID), encodeRecord(record)); err != nil {
			return err
		}
		var meta [8]byte
		binary.BigEndian.PutUint64(meta[:], record.SequenceID)
		return txn.Set([]byte(lastSeqKey), meta[:])
	})
	if err != nil {
		return domain.MessageRecord{}, errors.Unavailable("append", err)
	}
	return record, nil
}

// ReadLast walks the keys backwards from the tail, then restores oldest-first order.
func (b *BadgerLog) ReadLast(ctx context.Context, n int) ([]domain.MessageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var records []domain.MessageRecord
	err := b.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(messagePrefix)
		for it.Seek(append(prefix, maxSeqSuffix...)); it.ValidForPrefix(prefix); it.Next() {
			if len(records) == n {
				break
			}
			record, err := itemRecord(it.Item())
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Unavailable("read last", err)
	}
	return lo.Reverse(records), nil
}

func (b *BadgerLog) ReadAfter(ctx context.Context, after uint64, limit int) ([]domain.MessageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if after == math.MaxUint64 {
		return nil, nil
	}
	var records []domain.MessageRecord
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(messagePrefix)
		for it.Seek(messageKey(after + 1)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) == limit {
				break
			}
			record, err := itemRecord(it.Item())
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Unavailable("read after", err)
	}
	return records, nil
}

func (b *BadgerLog) LastSequence(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var last uint64
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		last, err = readLastSeq(txn)
		return err
	})
	if err != nil {
		return 0, errors.Unavailable("last sequence", err)
	}
	return last, nil
}

// DB exposes the underlying handle for inspection tools.
func (b *BadgerLog) DB() *badger.DB { return b.db }

func (b *BadgerLog) Close() error {
	b.log.Info("Closing BadgerDB...")
	return b.db.Close()
}

func readLastSeq(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get([]byte(lastSeqKey))
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var last uint64
	err = item.Value(func(value []byte) error {
		if len(value) < 8 {
			return fmt.Errorf("corrupted %s entry (%d bytes)", lastSeqKey, len(value))
		}
		last = binary.BigEndian.Uint64(value[:8])
		return nil
	})
	return last, err
}

func itemRecord(item *badger.Item) (domain.MessageRecord, error) {
	var record domain.MessageRecord
	err := item.Value(func(value []byte) error {
		var err error
		record, err = decodeRecord(value)
		if err != nil {
			return fmt.Errorf("key %s: %w", item.Key(), err)
		}
		return nil
	})
	return record, err
}
