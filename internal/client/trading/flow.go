// Package trading drives the request-fulfillment panel: which catalog
// requests are still open, which one the user is looking at, and the
// delayed confirmation that records a fulfilled request in the ledger.
package trading

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/bijligrid/internal/client/ledger"
	"github.com/dmitrijs2005/bijligrid/internal/common"
	"github.com/dmitrijs2005/bijligrid/internal/logging"
)

// DefaultConfirmDelay is how long a send takes to land in the ledger.
const DefaultConfirmDelay = time.Second

const (
	txUnit      = "MW/h"
	txFrom      = "YOU"
	txTimestamp = "Just now"
)

type Phase int

const (
	Idle Phase = iota
	Fulfilling
)

func (p Phase) String() string {
	if p == Fulfilling {
		return "fulfilling"
	}
	return "idle"
}

// State is what the panel shows. RequestID is set only while Fulfilling.
// Sending stays true until a confirmed send has landed, even if the panel
// was closed meanwhile.
type State struct {
	Phase     Phase
	RequestID string
	Sending   bool
}

// WalletGate tells the flow whether a wallet is linked.
type WalletGate interface {
	IsWalletConnected() bool
}

type Option func(*Flow)

func WithConfirmDelay(d time.Duration) Option {
	return func(f *Flow) { f.delay = d }
}

func WithIDGenerator(fn func() (string, error)) Option {
	return func(f *Flow) { f.newID = fn }
}

type Flow struct {
	catalog []EnergyRequest
	gate    WalletGate
	ledger  *ledger.Ledger
	logger  logging.Logger
	delay   time.Duration
	newID   func() (string, error)

	mu        sync.Mutex
	phase     Phase
	requestID string
	sending   bool
}

func NewFlow(catalog []EnergyRequest, gate WalletGate, l *ledger.Ledger, logger logging.Logger, opts ...Option) (*Flow, error) {
	if err := validateCatalog(catalog); err != nil {
		return nil, err
	}
	f := &Flow{
		catalog: append([]EnergyRequest(nil), catalog...),
		gate:    gate,
		ledger:  l,
		logger:  logger,
		delay:   DefaultConfirmDelay,
		newID:   NewTransactionID,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// NewTransactionID returns an abbreviated hash-like id, 0x<8 hex>...<4 hex>.
func NewTransactionID() (string, error) {
	head, err := common.MakeRandHexString(4)
	if err != nil {
		return "", err
	}
	tail, err := common.MakeRandHexString(2)
	if err != nil {
		return "", err
	}
	return "0x" + head + "..." + tail, nil
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{Phase: f.phase, RequestID: f.requestID, Sending: f.sending}
}

func (f *Flow) Request(id string) (EnergyRequest, bool) {
	for _, r := range f.catalog {
		if r.ID == id {
			return r, true
		}
	}
	return EnergyRequest{}, false
}

// ActiveRequests returns the catalog entries that have not been fulfilled,
// in catalog order.
func (f *Flow) ActiveRequests() []EnergyRequest {
	out := make([]EnergyRequest, 0, len(f.catalog))
	for _, r := range f.catalog {
		if !f.isFulfilled(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f *Flow) FulfilledRequests() []EnergyRequest {
	var out []EnergyRequest
	for _, r := range f.catalog {
		if f.isFulfilled(r) {
			out = append(out, r)
		}
	}
	return out
}

// isFulfilled matches ledger entries by request id. Entries without one
// match on recipient name and amount.
func (f *Flow) isFulfilled(r EnergyRequest) bool {
	return f.ledger.Any(func(tx ledger.Transaction) bool {
		if tx.RequestID != "" {
			return tx.RequestID == r.ID
		}
		return tx.To == r.RequesterName && tx.Amount.Equal(r.Amount)
	})
}

// Accept opens the fulfillment panel for request id. Accepting while
// another request is open switches to the new one.
func (f *Flow) Accept(id string) error {
	if !f.gate.IsWalletConnected() {
		return common.ErrWalletRequired
	}
	r, ok := f.Request(id)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrRequestNotFound, id)
	}
	if f.isFulfilled(r) {
		return fmt.Errorf("%w: %s", common.ErrRequestFulfilled, id)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sending {
		return common.ErrSendInProgress
	}
	f.phase = Fulfilling
	f.requestID = id
	return nil
}

// Cancel closes the panel. A send already confirmed still lands.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phase = Idle
	f.requestID = ""
}

// Reset returns to Idle; used when the session is invalidated.
func (f *Flow) Reset() {
	f.Cancel()
}

// Reject only records the user's decision; the request stays open.
func (f *Flow) Reject(ctx context.Context, id string) error {
	r, ok := f.Request(id)
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrRequestNotFound, id)
	}
	f.logger.Info(ctx, "request rejected", "request_id", r.ID, "requester", r.RequesterName)
	return nil
}

// ConfirmSend schedules the ledger entry for the open request. After the
// confirm delay the transaction is appended, the panel returns to Idle if it
// still shows that request, and the transaction is delivered on the
// returned channel, which is then closed. The wallet must still be linked.
func (f *Flow) ConfirmSend(ctx context.Context) (<-chan ledger.Transaction, error) {
	if !f.gate.IsWalletConnected() {
		f.Reset()
		return nil, common.ErrWalletRequired
	}

	f.mu.Lock()
	if f.phase != Fulfilling {
		f.mu.Unlock()
		return nil, common.ErrNotFulfilling
	}
	if f.sending {
		f.mu.Unlock()
		return nil, common.ErrSendInProgress
	}
	r, _ := f.Request(f.requestID)

	id, err := f.newID()
	if err != nil {
		f.mu.Unlock()
		return nil, fmt.Errorf("generate transaction id: %w", err)
	}
	f.sending = true
	f.mu.Unlock()

	tx := ledger.Transaction{
		ID:        id,
		RequestID: r.ID,
		Type:      ledger.Outgoing,
		Amount:    r.Amount,
		Unit:      txUnit,
		Source:    string(r.EnergyType),
		From:      txFrom,
		To:        r.RequesterName,
		Timestamp: txTimestamp,
		Status:    ledger.Confirmed,
	}
	f.logger.Debug(ctx, "send scheduled", "request_id", r.ID, "tx_id", id, "total_eth", r.Total().String())

	done := make(chan ledger.Transaction, 1)
	time.AfterFunc(f.delay, func() {
		f.ledger.Append(tx)

		f.mu.Lock()
		f.sending = false
		if f.phase == Fulfilling && f.requestID == tx.RequestID {
			f.phase = Idle
			f.requestID = ""
		}
		f.mu.Unlock()

		f.logger.Info(context.Background(), "send confirmed", "request_id", tx.RequestID, "tx_id", tx.ID)
		done <- tx
		close(done)
	})
	return done, nil
}
