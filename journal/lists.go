package journal

import (
	"context"
	"log"
	"sync"

	"github.com/sporadisk/selfcare/record"
)

// DiaryExporter renders diary entries, e.g. *pdfexport.Exporter.
type DiaryExporter interface {
	Diary(entries []record.DiaryEntry) error
}

// TimelineExporter renders timeline events, e.g. *pdfexport.Exporter.
type TimelineExporter interface {
	Timeline(events []record.TimelineEvent) error
}

// list keeps the last fetched snapshot of some rows and refetches it when its
// topic is published.
type list[T any] struct {
	name  string
	topic Topic
	fetch func(ctx context.Context) ([]T, error)

	mu          sync.Mutex
	items       []T
	onChange    func([]T)
	unsubscribe func()
	stop        func() bool
}

func (l *list[T]) refresh(ctx context.Context) error {
	items, err := l.fetch(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.items = items
	onChange := l.onChange
	l.mu.Unlock()

	if onChange != nil {
		onChange(clone(items))
	}
	return nil
}

func (l *list[T]) watch(ctx context.Context, bus *Bus) {
	l.close()
	if bus == nil {
		return
	}

	unsubscribe := bus.Subscribe(l.topic, func() {
		err := l.refresh(ctx)
		if err != nil {
			log.Printf("[%s] refresh: %s", l.name, err.Error())
		}
	})
	l.mu.Lock()
	l.unsubscribe = unsubscribe
	l.mu.Unlock()

	stop := context.AfterFunc(ctx, l.close)

	l.mu.Lock()
	l.stop = stop
	l.mu.Unlock()
}

func (l *list[T]) close() {
	l.mu.Lock()
	unsubscribe, stop := l.unsubscribe, l.stop
	l.unsubscribe, l.stop = nil, nil
	l.mu.Unlock()

	if stop != nil {
		stop()
	}
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (l *list[T]) setOnChange(fn func([]T)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

func (l *list[T]) snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return clone(l.items)
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// EntriesList shows the most recent diary entries, newest first.
type EntriesList struct {
	journal *Journal
	list    *list[record.DiaryEntry]
}

func NewEntriesList(j *Journal) *EntriesList {
	return &EntriesList{
		journal: j,
		list: &list[record.DiaryEntry]{
			name:  "entries",
			topic: TopicEntries,
			fetch: j.RecentEntries,
		},
	}
}

// Refresh replaces the snapshot with a fresh fetch.
func (l *EntriesList) Refresh(ctx context.Context) error {
	return l.list.refresh(ctx)
}

// Watch refetches whenever an entry is written, until Close is called or
// ctx is done. Fetch errors are logged.
func (l *EntriesList) Watch(ctx context.Context) {
	l.list.watch(ctx, l.journal.Bus)
}

// OnChange sets a callback run with every new snapshot.
func (l *EntriesList) OnChange(fn func([]record.DiaryEntry)) {
	l.list.setOnChange(fn)
}

func (l *EntriesList) Close() {
	l.list.close()
}

func (l *EntriesList) Entries() []record.DiaryEntry {
	return l.list.snapshot()
}

// Export hands the current snapshot to exp. An empty list is not exported.
func (l *EntriesList) Export(exp DiaryExporter) error {
	entries := l.Entries()
	if len(entries) == 0 {
		return ErrNothingToExport
	}
	return exp.Diary(entries)
}

// TimelineList shows every timeline event, newest first.
type TimelineList struct {
	journal *Journal
	list    *list[record.TimelineEvent]
}

func NewTimelineList(j *Journal) *TimelineList {
	return &TimelineList{
		journal: j,
		list: &list[record.TimelineEvent]{
			name:  "timeline",
			topic: TopicTimeline,
			fetch: j.Timeline,
		},
	}
}

func (l *TimelineList) Refresh(ctx context.Context) error {
	return l.list.refresh(ctx)
}

// Watch refetches whenever an event is added, until Close is called or ctx
// is done.
func (l *TimelineList) Watch(ctx context.Context) {
	l.list.watch(ctx, l.journal.Bus)
}

func (l *TimelineList) OnChange(fn func([]record.TimelineEvent)) {
	l.list.setOnChange(fn)
}

func (l *TimelineList) Close() {
	l.list.close()
}

func (l *TimelineList) Events() []record.TimelineEvent {
	return l.list.snapshot()
}

func (l *TimelineList) Export(exp TimelineExporter) error {
	events := l.Events()
	if len(events) == 0 {
		return ErrNothingToExport
	}
	return exp.Timeline(events)
}
