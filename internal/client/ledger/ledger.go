// Package ledger keeps the transactions produced while fulfilling energy
// requests. Entries live in memory for the lifetime of the process and are
// listed most recent first.
package ledger

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

type Status string

const (
	Confirmed Status = "Confirmed"
	Pending   Status = "Pending"
	Failed    Status = "Failed"
)

// Transaction is a fulfilled energy transfer. RequestID links it back to the
// catalog entry it settled and may be empty for entries recorded without one.
type Transaction struct {
	ID        string
	RequestID string
	Type      Direction
	Amount    decimal.Decimal
	Unit      string
	Source    string
	From      string
	To        string
	Timestamp string
	Status    Status
}

type Ledger struct {
	mu  sync.Mutex
	txs []Transaction
}

func New() *Ledger {
	return &Ledger{}
}

// Append records tx as the newest entry. No validation or deduplication.
func (l *Ledger) Append(tx Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txs = append(l.txs, tx)
}

// List returns a copy of the entries, newest first, keeping those whose
// id, from, to or source contains filter case-insensitively. An empty
// filter matches everything.
func (l *Ledger) List(filter string) []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	needle := strings.ToLower(filter)
	out := make([]Transaction, 0, len(l.txs))
	for i := len(l.txs) - 1; i >= 0; i-- {
		tx := l.txs[i]
		if needle == "" || tx.matches(needle) {
			out = append(out, tx)
		}
	}
	return out
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.txs)
}

// Any reports whether some entry satisfies pred.
func (l *Ledger) Any(pred func(Transaction) bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, tx := range l.txs {
		if pred(tx) {
			return true
		}
	}
	return false
}

func (tx Transaction) matches(needle string) bool {
	for _, field := range []string{tx.ID, tx.From, tx.To, tx.Source} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
