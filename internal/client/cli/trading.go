package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/bijligrid/internal/client/ledger"
	"github.com/dmitrijs2005/bijligrid/internal/client/trading"
)

// Requests lists the open energy requests, then the fulfilled ones.
func (a *App) Requests(ctx context.Context) error {
	active := a.flow.ActiveRequests()
	if len(active) == 0 {
		printlnFn("No open requests.")
	} else {
		printlnFn(fmt.Sprintf("Active Requests (%d)", len(active)))
		printlnFn(requestTable(active))
	}

	fulfilled := a.flow.FulfilledRequests()
	if len(fulfilled) > 0 {
		printlnFn(fmt.Sprintf("Fulfilled Requests (%d)", len(fulfilled)))
		printlnFn(requestTable(fulfilled))
	}
	return nil
}

func requestTable(rs []trading.EnergyRequest) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREQUESTER\tTYPE\tAMOUNT\tPRICE\tTOTAL\tPOSTED")
	for _, r := range rs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s MW/h\t%s ETH\t%s ETH\t%s\n",
			r.ID, r.RequesterName, r.EnergyType, r.Amount.String(), r.Price.String(), r.Total().StringFixed(3), r.Timestamp)
	}
	_ = tw.Flush()
	return strings.TrimRight(buf.String(), "\n")
}

// Accept opens the fulfillment panel for id and shows the order.
func (a *App) Accept(ctx context.Context, id string) error {
	if err := a.flow.Accept(id); err != nil {
		return err
	}
	r, _ := a.flow.Request(id)
	printlnFn(describeRequest(r))
	printlnFn("Type 'send' to confirm or 'cancel' to close.")
	return nil
}

func (a *App) Reject(ctx context.Context, id string) error {
	if err := a.flow.Reject(ctx, id); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Request %s rejected.", id))
	return nil
}

func (a *App) Cancel(ctx context.Context) error {
	st := a.flow.State()
	a.flow.Cancel()
	if st.Sending {
		printlnFn("Panel closed. The pending send will still complete.")
		return nil
	}
	printlnFn("Panel closed.")
	return nil
}

// Send confirms the open request. The confirmation lands in the background
// and is announced when it does.
func (a *App) Send(ctx context.Context) error {
	st := a.flow.State()
	done, err := a.flow.ConfirmSend(ctx)
	if err != nil {
		return err
	}
	r, _ := a.flow.Request(st.RequestID)
	printlnFn(fmt.Sprintf("Sending %s MW/h to %s...", r.Amount.String(), r.RequesterName))

	go func() {
		tx, ok := <-done
		if !ok {
			return
		}
		printlnFn(fmt.Sprintf("Energy sent successfully! Transaction %s confirmed.", tx.ID))
	}()
	return nil
}

// Ledger lists transactions, newest first, narrowed by filter.
func (a *App) Ledger(ctx context.Context, filter string) error {
	txs := a.ledger.List(filter)
	if len(txs) == 0 {
		if filter != "" {
			printlnFn(fmt.Sprintf("No transactions match %q.", filter))
		} else {
			printlnFn("No transactions yet.")
		}
		return nil
	}
	printlnFn(formatLedger(txs))
	return nil
}

func describeRequest(r trading.EnergyRequest) string {
	return fmt.Sprintf("Request %s: %s (%s) wants %s MW/h of %s at %s ETH, total %s ETH",
		r.ID, r.RequesterName, r.RequesterAddress, r.Amount.String(), r.EnergyType, r.Price.String(), r.Total().StringFixed(3))
}

func formatLedger(txs []ledger.Transaction) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tAMOUNT\tSOURCE\tFROM\tTO\tWHEN\tSTATUS")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Type, tx.Amount.String(), tx.Unit, tx.Source, tx.From, tx.To, tx.Timestamp, tx.Status)
	}
	_ = tw.Flush()
	return strings.TrimRight(buf.String(), "\n")
}
