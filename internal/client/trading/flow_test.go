package trading

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bijligrid/internal/client/ledger"
	"github.com/dmitrijs2005/bijligrid/internal/common"
	"github.com/dmitrijs2005/bijligrid/internal/logging"
)

type fakeGate struct{ connected atomic.Bool }

func (g *fakeGate) IsWalletConnected() bool { return g.connected.Load() }

func newFlow(t *testing.T, connected bool, opts ...Option) (*Flow, *ledger.Ledger, *fakeGate) {
	t.Helper()
	gate := &fakeGate{}
	gate.connected.Store(connected)
	l := ledger.New()
	opts = append([]Option{WithConfirmDelay(10 * time.Millisecond)}, opts...)
	f, err := NewFlow(DefaultCatalog(), gate, l, logging.NewNop(), opts...)
	require.NoError(t, err)
	return f, l, gate
}

func waitTx(t *testing.T, ch <-chan ledger.Transaction) ledger.Transaction {
	t.Helper()
	select {
	case tx, ok := <-ch:
		require.True(t, ok)
		return tx
	case <-time.After(2 * time.Second):
		t.Fatal("send did not land")
	}
	return ledger.Transaction{}
}

func requestIDs(rs []EnergyRequest) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.Len(t, c, 4)
	require.NoError(t, validateCatalog(c))

	assert.Equal(t, "Priya Sharma", c[1].RequesterName)
	assert.Equal(t, Wind, c[1].EnergyType)
	assert.Equal(t, "1.476", c[1].Total().String())
}

func TestNewFlow_InvalidCatalog(t *testing.T) {
	base := DefaultCatalog()[0]

	dup := []EnergyRequest{base, base}
	_, err := NewFlow(dup, &fakeGate{}, ledger.New(), logging.NewNop())
	require.Error(t, err)

	zero := base
	zero.Amount = decimal.Zero
	_, err = NewFlow([]EnergyRequest{zero}, &fakeGate{}, ledger.New(), logging.NewNop())
	require.Error(t, err)

	noID := base
	noID.ID = ""
	_, err = NewFlow([]EnergyRequest{noID}, &fakeGate{}, ledger.New(), logging.NewNop())
	require.Error(t, err)

	neg := base
	neg.Price = decimal.RequireFromString("-1")
	_, err = NewFlow([]EnergyRequest{neg}, &fakeGate{}, ledger.New(), logging.NewNop())
	require.Error(t, err)
}

func TestNewTransactionID_Format(t *testing.T) {
	re := regexp.MustCompile(`^0x[0-9a-f]{8}\.\.\.[0-9a-f]{4}$`)
	for i := 0; i < 20; i++ {
		id, err := NewTransactionID()
		require.NoError(t, err)
		assert.Regexp(t, re, id)
	}
}

func TestFlow_AcceptRequiresWallet(t *testing.T) {
	f, _, _ := newFlow(t, false)

	err := f.Accept("1")
	require.ErrorIs(t, err, common.ErrWalletRequired)
	assert.Equal(t, State{Phase: Idle}, f.State())
}

func TestFlow_AcceptErrors(t *testing.T) {
	f, _, _ := newFlow(t, true)

	require.ErrorIs(t, f.Accept("99"), common.ErrRequestNotFound)
	assert.Equal(t, Idle, f.State().Phase)
}

func TestFlow_AcceptCancel(t *testing.T) {
	f, _, _ := newFlow(t, true)

	require.NoError(t, f.Accept("2"))
	assert.Equal(t, State{Phase: Fulfilling, RequestID: "2"}, f.State())

	// switching to another open request
	require.NoError(t, f.Accept("3"))
	assert.Equal(t, "3", f.State().RequestID)

	f.Cancel()
	assert.Equal(t, State{Phase: Idle}, f.State())
}

func TestFlow_ConfirmSendWhenIdle(t *testing.T) {
	f, _, _ := newFlow(t, true)
	_, err := f.ConfirmSend(context.Background())
	require.ErrorIs(t, err, common.ErrNotFulfilling)
}

func TestFlow_ConfirmSendRequiresWallet(t *testing.T) {
	f, l, gate := newFlow(t, true)
	require.NoError(t, f.Accept("1"))

	gate.connected.Store(false)
	_, err := f.ConfirmSend(context.Background())
	require.ErrorIs(t, err, common.ErrWalletRequired)
	assert.Equal(t, State{Phase: Idle}, f.State())

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, l.Len())
}

func TestFlow_FulfillRequest(t *testing.T) {
	f, l, _ := newFlow(t, true)
	ctx := context.Background()

	require.NoError(t, f.Accept("2"))
	ch, err := f.ConfirmSend(ctx)
	require.NoError(t, err)

	assert.True(t, f.State().Sending)
	_, err = f.ConfirmSend(ctx)
	require.ErrorIs(t, err, common.ErrSendInProgress)

	tx := waitTx(t, ch)
	assert.Equal(t, "2", tx.RequestID)
	assert.Equal(t, ledger.Outgoing, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("8.2")))
	assert.Equal(t, "MW/h", tx.Unit)
	assert.Equal(t, "Wind", tx.Source)
	assert.Equal(t, "YOU", tx.From)
	assert.Equal(t, "Priya Sharma", tx.To)
	assert.Equal(t, "Just now", tx.Timestamp)
	assert.Equal(t, ledger.Confirmed, tx.Status)

	_, open := <-ch
	assert.False(t, open)

	assert.Equal(t, State{Phase: Idle}, f.State())
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, []string{"1", "3", "4"}, requestIDs(f.ActiveRequests()))
	assert.Equal(t, []string{"2"}, requestIDs(f.FulfilledRequests()))

	require.ErrorIs(t, f.Accept("2"), common.ErrRequestFulfilled)
}

func TestFlow_CancelDoesNotAbortSend(t *testing.T) {
	f, l, _ := newFlow(t, true)

	require.NoError(t, f.Accept("1"))
	ch, err := f.ConfirmSend(context.Background())
	require.NoError(t, err)

	f.Cancel()
	assert.Equal(t, State{Phase: Idle, Sending: true}, f.State())
	require.ErrorIs(t, f.Accept("3"), common.ErrSendInProgress)

	tx := waitTx(t, ch)
	assert.Equal(t, "1", tx.RequestID)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, State{Phase: Idle}, f.State())
	assert.NotContains(t, requestIDs(f.ActiveRequests()), "1")

	require.NoError(t, f.Accept("3"))
}

func TestFlow_IDGeneratorFailure(t *testing.T) {
	f, l, _ := newFlow(t, true, WithIDGenerator(func() (string, error) {
		return "", errors.New("entropy exhausted")
	}))

	require.NoError(t, f.Accept("1"))
	_, err := f.ConfirmSend(context.Background())
	require.Error(t, err)
	assert.Equal(t, State{Phase: Fulfilling, RequestID: "1"}, f.State())
	assert.Equal(t, 0, l.Len())
}

func TestFlow_RejectIsAdvisory(t *testing.T) {
	f, _, _ := newFlow(t, true)
	ctx := context.Background()

	require.NoError(t, f.Reject(ctx, "4"))
	assert.Equal(t, State{Phase: Idle}, f.State())
	assert.Len(t, f.ActiveRequests(), 4)

	require.ErrorIs(t, f.Reject(ctx, "nope"), common.ErrRequestNotFound)
}

func TestFlow_ResetKeepsLedger(t *testing.T) {
	f, l, _ := newFlow(t, true)
	require.NoError(t, f.Accept("1"))
	ch, err := f.ConfirmSend(context.Background())
	require.NoError(t, err)
	waitTx(t, ch)

	require.NoError(t, f.Accept("4"))
	f.Reset()
	assert.Equal(t, State{Phase: Idle}, f.State())
	assert.Equal(t, 1, l.Len())
}

func TestFlow_LegacyEntriesMatchByRecipientAndAmount(t *testing.T) {
	f, l, _ := newFlow(t, true)
	l.Append(ledger.Transaction{
		ID:     "0xlegacy",
		Type:   ledger.Outgoing,
		Amount: decimal.RequireFromString("45"),
		To:     "Amit Patel",
		Status: ledger.Confirmed,
	})
	l.Append(ledger.Transaction{
		ID:     "0xother",
		Amount: decimal.RequireFromString("1"),
		To:     "Sneha Reddy",
	})

	assert.Equal(t, []string{"1", "2", "4"}, requestIDs(f.ActiveRequests()))
}

func TestFlow_DistinctIDs(t *testing.T) {
	var n atomic.Int32
	f, _, _ := newFlow(t, true, WithIDGenerator(func() (string, error) {
		return fmt.Sprintf("0x%08d...0000", n.Add(1)), nil
	}))
	ctx := context.Background()

	var got []string
	for _, id := range []string{"1", "2"} {
		require.NoError(t, f.Accept(id))
		ch, err := f.ConfirmSend(ctx)
		require.NoError(t, err)
		got = append(got, waitTx(t, ch).ID)
	}
	assert.Equal(t, []string{"0x00000001...0000", "0x00000002...0000"}, got)
	assert.Equal(t, []string{"3", "4"}, requestIDs(f.ActiveRequests()))
}
