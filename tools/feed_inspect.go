package main

import (
	"chat-feed/domain"
	"chat-feed/repositories"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Inspect error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("feed_inspect", flag.ContinueOnError)
	dbPath := flags.String("db", os.Getenv("BADGER_FILEPATH"), "Path to badger DB")
	last := flags.Int("last", 0, "Only print the last N messages (0 prints everything)")
	logLevel := flags.String("log-level", os.Getenv("LOG_LEVEL"), "Log level (defaults to INFO)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" {
		return fmt.Errorf("no database path, set -db or BADGER_FILEPATH")
	}
	log := logs.GetLoggerFromString(*logLevel)

	// BypassLockGuard allows opening while the server holds the lock
	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("opening badger: %w", err)
	}
	feed := repositories.NewBadgerLog(db, log)
	defer feed.Close()

	ctx := context.Background()
	var records []domain.MessageRecord
	if *last > 0 {
		records, err = feed.ReadLast(ctx, *last)
	} else {
		records, err = feed.ReadAfter(ctx, 0, 0)
	}
	if err != nil {
		return fmt.Errorf("reading messages: %w", err)
	}
	tail, err := feed.LastSequence(ctx)
	if err != nil {
		return fmt.Errorf("reading the tail: %w", err)
	}
	log.Debug("Feed read", "path", *dbPath, "records", len(records), "tail", tail)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Seq", "Created At", "Sender ID", "Display Name", "Text"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, record := range records {
		table.Append([]string{
			strconv.FormatUint(record.SequenceID, 10),
			record.CreatedAt.Format(time.RFC3339Nano),
			record.SenderID,
			record.SenderDisplayName,
			record.Text,
		})
	}
	table.Render()
	_, err = fmt.Fprintf(out, "\n%d message(s) shown, last sequence id %d\n", len(records), tail)
	return err
}
