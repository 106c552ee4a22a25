package tools

import (
	"context"

	"expensed/internal/services"
)

// RegisterExpenseTools wires the five expense operations into the
// registry under their tool names.
func RegisterExpenseTools(r *Registry, svc *services.ExpenseService) {
	r.Register("add_expense",
		"Add a new expense. Arguments: date (YYYY-MM-DD), amount, category, optional subcategory and note.",
		func(ctx context.Context, args map[string]any) (any, error) {
			date, err := stringArg(args, "date")
			if err != nil {
				return nil, err
			}
			amount, err := floatArg(args, "amount")
			if err != nil {
				return nil, err
			}
			category, err := stringArg(args, "category")
			if err != nil {
				return nil, err
			}
			subcategory, err := stringArg(args, "subcategory")
			if err != nil {
				return nil, err
			}
			note, err := stringArg(args, "note")
			if err != nil {
				return nil, err
			}

			return svc.Add(ctx, services.AddParams{
				Date:        date,
				Amount:      amount,
				Category:    category,
				Subcategory: subcategory,
				Note:        note,
			}), nil
		})

	r.Register("list_expenses",
		"List expenses with date between start_date and end_date inclusive, optionally filtered by category.",
		func(ctx context.Context, args map[string]any) (any, error) {
			start, err := stringArg(args, "start_date")
			if err != nil {
				return nil, err
			}
			end, err := stringArg(args, "end_date")
			if err != nil {
				return nil, err
			}
			category, err := stringArg(args, "category")
			if err != nil {
				return nil, err
			}
			return svc.List(ctx, start, end, category)
		})

	r.Register("summarize_expenses",
		"Summarize expenses by category between start_date and end_date inclusive, optionally filtered by category.",
		func(ctx context.Context, args map[string]any) (any, error) {
			start, err := stringArg(args, "start_date")
			if err != nil {
				return nil, err
			}
			end, err := stringArg(args, "end_date")
			if err != nil {
				return nil, err
			}
			category, err := stringArg(args, "category")
			if err != nil {
				return nil, err
			}
			return svc.Summarize(ctx, start, end, category)
		})

	r.Register("delete_expense",
		"Delete an expense by its id.",
		func(ctx context.Context, args map[string]any) (any, error) {
			id, err := idArg(args, "expense_id")
			if err != nil {
				return nil, err
			}
			return svc.Delete(ctx, id), nil
		})

	r.Register("update_expense",
		"Update supplied fields of an expense by its id. Arguments: expense_id plus any of date, amount, category, subcategory, note.",
		func(ctx context.Context, args map[string]any) (any, error) {
			id, err := idArg(args, "expense_id")
			if err != nil {
				return nil, err
			}
			date, err := optionalStringArg(args, "date")
			if err != nil {
				return nil, err
			}
			amount, err := optionalFloatArg(args, "amount")
			if err != nil {
				return nil, err
			}
			category, err := optionalStringArg(args, "category")
			if err != nil {
				return nil, err
			}
			subcategory, err := optionalStringArg(args, "subcategory")
			if err != nil {
				return nil, err
			}
			note, err := optionalStringArg(args, "note")
			if err != nil {
				return nil, err
			}

			return svc.Update(ctx, id, services.UpdateParams{
				Date:        date,
				Amount:      amount,
				Category:    category,
				Subcategory: subcategory,
				Note:        note,
			}), nil
		})
}
