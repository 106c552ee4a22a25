package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"expensed/internal/core"
	"expensed/internal/events"
	"expensed/internal/services"
	"expensed/internal/storage"
)

type fakeAppender struct {
	rows []core.Expense
	err  error
}

func (f *fakeAppender) AppendExpense(ctx context.Context, e core.Expense) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, e)
	return nil
}

func newTestWorker(t *testing.T) (*ExportWorker, *services.ExpenseService, *fakeAppender) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	svc := services.NewExpenseService(store, nil)
	appender := &fakeAppender{}
	return NewExportWorker(svc, appender), svc, appender
}

func TestHandleEventExportsCreatedExpense(t *testing.T) {
	w, svc, appender := newTestWorker(t)
	ctx := context.Background()

	res := svc.Add(ctx, services.AddParams{Date: "2024-03-01", Amount: 42.5, Category: "food"})
	if res.Status != services.StatusSuccess {
		t.Fatalf("Add: %+v", res)
	}

	if err := w.HandleEvent(ctx, events.NewExpenseEvent(events.ActionCreated, res.ExpenseID)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	if len(appender.rows) != 1 {
		t.Fatalf("journal rows = %d, want 1", len(appender.rows))
	}
	if appender.rows[0].ID != res.ExpenseID || appender.rows[0].Amount != 42.5 {
		t.Errorf("unexpected journal row: %+v", appender.rows[0])
	}
}

func TestHandleEventVanishedExpenseIsAcked(t *testing.T) {
	w, _, appender := newTestWorker(t)

	// Event for an id that no longer exists must not error, or the broker
	// would requeue it forever.
	if err := w.HandleEvent(context.Background(), events.NewExpenseEvent(events.ActionCreated, 999)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if len(appender.rows) != 0 {
		t.Errorf("nothing should be exported, got %d rows", len(appender.rows))
	}
}

func TestHandleEventDeleteIsNoop(t *testing.T) {
	w, _, appender := newTestWorker(t)

	if err := w.HandleEvent(context.Background(), events.NewExpenseEvent(events.ActionDeleted, 1)); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if len(appender.rows) != 0 {
		t.Errorf("deletes must not append, got %d rows", len(appender.rows))
	}
}

func TestHandleEventAppendFailurePropagates(t *testing.T) {
	w, svc, appender := newTestWorker(t)
	ctx := context.Background()

	res := svc.Add(ctx, services.AddParams{Date: "2024-03-01", Amount: 10, Category: "food"})
	if res.Status != services.StatusSuccess {
		t.Fatalf("Add: %+v", res)
	}

	appender.err = errors.New("quota exceeded")
	err := w.HandleEvent(ctx, events.NewExpenseEvent(events.ActionUpdated, res.ExpenseID))
	if err == nil {
		t.Fatal("append failure should propagate so the event is requeued")
	}
}
