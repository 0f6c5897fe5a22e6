package internal

import (
	"chat-feed/contract"
	"chat-feed/domain"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"
)

//go:embed inspect.html
var templatesFS embed.FS

const defaultInspectSize = 50

type InspectRow struct {
	SequenceID uint64
	Timestamp  string
	SenderID   string
	Name       string
	Text       string
}

type StatsProvider func() map[string]any

// SubscriptionLister returns the live subscriptions.
type SubscriptionLister func() []contract.ISubscription

type SubscriptionRow struct {
	ID     string
	Cursor uint64
}

type StatRow struct {
	Name  string
	Value any
}

type PageData struct {
	Last  int
	Items []InspectRow
	Stats         []StatRow
	Subscriptions []SubscriptionRow
	Error         string
}

// NewDebugHandler serves an HTML page listing the tail of the feed, the current stats
// and the cursor of every live subscription on /inspect. It is meant for a port only
// reachable by operators.
func NewDebugHandler(log *slog.Logger, store contract.IMessageStore, statsProvider StatsProvider,
	subscriptions SubscriptionLister) http.Handler {
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))
	mux := http.NewServeMux()

	mux.HandleFunc("GET /inspect", func(w http.ResponseWriter, r *http.Request) {
		last, err := strconv.Atoi(r.URL.Query().Get("last"))
		if err != nil || last <= 0 {
			last = defaultInspectSize
		}
		data := PageData{Last: last}

		if statsProvider != nil {
			stats := statsProvider()
			for name, value := range stats {
				data.Stats = append(data.Stats, StatRow{Name: name, Value: value})
			}
			sort.Slice(data.Stats, func(i, j int) bool { return data.Stats[i].Name < data.Stats[j].Name })
		}

		if subscriptions != nil {
			for _, sub := range subscriptions() {
				data.Subscriptions = append(data.Subscriptions, SubscriptionRow{ID: shorten(sub.ID(), 8), Cursor: sub.Cursor()})
			}
		}

		records, err := store.ReadLast(r.Context(), last)
		if err != nil {
			data.Error = err.Error()
		}
		// Newest first
		for i := len(records) - 1; i >= 0; i-- {
			data.Items = append(data.Items, toRow(records[i]))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			log.Warn("Debug page rendering failed", "err", err)
		}
	})
	return mux
}

func toRow(record domain.MessageRecord) InspectRow {
	name := record.SenderDisplayName
	if name == "" {
		name = "-"
	}
	return InspectRow{
		SequenceID: record.SequenceID,
		Timestamp:  record.CreatedAt.Format(time.DateTime),
		SenderID:   shorten(record.SenderID, 8),
		Name:       name,
		Text:       record.Text,
	}
}

// shorten keeps the first n runes of s.
func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
