// Package logbook keeps the short status lines shown at the bottom of the
// window. Every entry carries a severity and the time elapsed since the
// book was opened.
package logbook

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Level is the severity of an entry.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (level Level) String() string {
	switch level {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(level))
	}
}

const defaultLimit = 256

// Entry is a single recorded line.
type Entry struct {
	Message string
	Level   Level
	Elapsed time.Duration
}

// String renders the entry as "[hh:mm:ss] message".
func (entry Entry) String() string {
	seconds := int(entry.Elapsed / time.Second)
	return fmt.Sprintf("[%02d:%02d:%02d] %s", seconds/3600, seconds/60%60, seconds%60, entry.Message)
}

// Config contains options for a Book.
type Config struct {
	// Mirror, when set, receives every entry as a regular log line.
	Mirror *log.Logger
	// Limit caps the number of retained entries. Oldest entries go first.
	Limit int
	// Now overrides the time source.
	Now func() time.Time
}

// Book is an append-only, bounded list of entries. It is safe for
// concurrent use.
type Book struct {
	mu      sync.Mutex
	config  Config
	start   time.Time
	entries []Entry
}

// New opens a book. Elapsed times are measured from this call.
func New(config Config) *Book {
	if config.Limit <= 0 {
		config.Limit = defaultLimit
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Book{
		config: config,
		start:  config.Now(),
	}
}

// Record appends an entry with the given level.
func (book *Book) Record(level Level, message string) {
	book.mu.Lock()
	entry := Entry{
		Message: message,
		Level:   level,
		Elapsed: book.config.Now().Sub(book.start).Truncate(time.Second),
	}
	book.entries = append(book.entries, entry)
	if overflow := len(book.entries) - book.config.Limit; overflow > 0 {
		book.entries = append(book.entries[:0:0], book.entries[overflow:]...)
	}
	mirror := book.config.Mirror
	book.mu.Unlock()

	if mirror != nil {
		mirror.Printf("%s: %s", level, entry)
	}
}

// Info records an informational entry.
func (book *Book) Info(message string) {
	book.Record(Info, message)
}

// Warn records a warning.
func (book *Book) Warn(message string) {
	book.Record(Warn, message)
}

// Error records an error entry.
func (book *Book) Error(message string) {
	book.Record(Error, message)
}

// Check records err as an error entry when it is non-nil and reports
// whether it did.
func (book *Book) Check(err error) bool {
	if err == nil {
		return false
	}
	book.Record(Error, err.Error())
	return true
}

// Last returns the most recent entry.
func (book *Book) Last() (Entry, bool) {
	book.mu.Lock()
	defer book.mu.Unlock()
	if len(book.entries) == 0 {
		return Entry{}, false
	}
	return book.entries[len(book.entries)-1], true
}

// Entries returns a copy of the retained entries, oldest first.
func (book *Book) Entries() []Entry {
	book.mu.Lock()
	defer book.mu.Unlock()
	return append([]Entry(nil), book.entries...)
}

// Len returns the number of retained entries.
func (book *Book) Len() int {
	book.mu.Lock()
	defer book.mu.Unlock()
	return len(book.entries)
}
