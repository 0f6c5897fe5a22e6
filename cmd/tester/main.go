// Command tester drives a running feed over gRPC: concurrent senders post messages while
// a subscriber checks that every one of them is delivered once and in order.
package main

import (
	"chat-feed/client"
	"chat-feed/domain"
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Tester error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	address  string
	senders  int
	messages int
	timeout  time.Duration
}

type report struct {
	posted     int
	received   int
	duplicates int
	outOfOrder int
	firstSeq   uint64
	lastSeq    uint64
	elapsed    time.Duration
}

func newCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "tester",
		Short:        "Load a feed server and verify ordered, exactly-once delivery",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			transport, err := client.DialGRPC(opts.address)
			if err != nil {
				return err
			}
			defer transport.Close()
			r, err := run(cmd.Context(), transport, opts)
			if err != nil {
				return err
			}
			printReport(r)
			if r.received != r.posted || r.duplicates > 0 || r.outOfOrder > 0 {
				return fmt.Errorf("delivery check failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.address, "address", "localhost:9090", "gRPC address of the feed")
	cmd.Flags().IntVar(&opts.senders, "senders", 8, "concurrent senders")
	cmd.Flags().IntVar(&opts.messages, "messages", 100, "messages per sender")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "time allowed for the whole run")
	return cmd
}

func run(parent context.Context, transport client.Transport, opts options) (report, error) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, opts.timeout)
	defer cancel()
	start := time.Now()
	total := opts.senders * opts.messages

	// Subscribe first: everything posted afterwards must come through.
	history, err := transport.History(ctx, 1)
	if err != nil {
		return report{}, err
	}
	r := report{posted: total}
	var (
		mu       sync.Mutex
		seen     = make(map[uint64]struct{})
		last     = domain.Tail(history)
		finished = make(chan struct{})
	)
	subCtx, stopSub := context.WithCancel(ctx)
	defer stopSub()
	subDone := make(chan error, 1)
	go func() {
		subDone <- transport.Subscribe(subCtx, client.SubscribeRequest{From: domain.After(last)},
			func(record domain.MessageRecord) error {
				mu.Lock()
				defer mu.Unlock()
				if _, dup := seen[record.SequenceID]; dup {
					r.duplicates++
					return nil
				}
				seen[record.SequenceID] = struct{}{}
				if record.SequenceID <= last {
					r.outOfOrder++
				}
				if r.firstSeq == 0 {
					r.firstSeq = record.SequenceID
				}
				last = record.SequenceID
				r.received++
				if r.received == total {
					close(finished)
				}
				return nil
			})
	}()

	var wg sync.WaitGroup
	errs := make(chan error, opts.senders)
	for s := 0; s < opts.senders; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			senderID := uuid.NewString()
			for i := 0; i < opts.messages; i++ {
				if _, err := transport.Post(ctx, domain.PostMessageCommand{
					SenderID:          senderID,
					SenderDisplayName: "tester-" + strconv.Itoa(s),
					Text:              fmt.Sprintf("message %d of sender %d", i, s),
				}); err != nil {
					errs <- err
					return
				}
			}
		}(s)
	}
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return report{}, err
	}

	select {
	case <-finished:
	case err := <-subDone:
		if err == nil {
			err = ctx.Err()
		}
		return report{}, fmt.Errorf("subscription ended early: %w", err)
	case <-ctx.Done():
	}
	stopSub()
	<-subDone

	mu.Lock()
	defer mu.Unlock()
	r.lastSeq = last
	r.elapsed = time.Since(start)
	return r, nil
}

func printReport(r report) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"posted", "received", "duplicates", "out of order", "sequence range", "elapsed"})
	table.Append([]string{
		strconv.Itoa(r.posted),
		strconv.Itoa(r.received),
		strconv.Itoa(r.duplicates),
		strconv.Itoa(r.outOfOrder),
		fmt.Sprintf("%d..%d", r.firstSeq, r.lastSeq),
		r.elapsed.Round(time.Millisecond).String(),
	})
	table.Render()
}
