// Package worker mirrors expense changes into the export journal. It
// consumes change events, reads the current row from the store, and
// appends it to the configured journal.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"expensed/internal/core"
	"expensed/internal/events"
	"expensed/internal/export"
	"expensed/internal/services"
)

type ExportWorker struct {
	service  *services.ExpenseService
	appender export.Appender
}

func NewExportWorker(service *services.ExpenseService, appender export.Appender) *ExportWorker {
	return &ExportWorker{
		service:  service,
		appender: appender,
	}
}

// HandleEvent processes one expense change event. Created and updated
// expenses are appended to the journal; deletions are acknowledged and
// logged only, since the journal is append-only.
func (w *ExportWorker) HandleEvent(ctx context.Context, event *events.ExpenseEvent) error {
	switch event.Action {
	case events.ActionCreated, events.ActionUpdated:
		return w.exportExpense(ctx, event.ID)
	case events.ActionDeleted:
		slog.InfoContext(ctx, "Expense deleted, journal keeps its history", "id", event.ID)
		return nil
	default:
		slog.WarnContext(ctx, "Unknown event action, dropping", "action", event.Action, "id", event.ID)
		return nil
	}
}

func (w *ExportWorker) exportExpense(ctx context.Context, id int64) error {
	expense, err := w.service.Get(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		// Deleted between the event and now; nothing left to export.
		slog.WarnContext(ctx, "Expense vanished before export", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load expense for export: %w", err)
	}

	if err := w.appender.AppendExpense(ctx, expense); err != nil {
		return fmt.Errorf("append to journal: %w", err)
	}

	return nil
}
