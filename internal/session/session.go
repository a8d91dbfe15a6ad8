// Package session drives one user's interactive ledger session: it
// feeds utterances to the interpreter, submits recognized drafts to the
// ledger, and serves the derived views. The utterance source is
// whatever the caller wires in; speech recognition happens upstream.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"voiceledger/internal/budget"
	"voiceledger/internal/core"
	"voiceledger/internal/interpret"
	"voiceledger/internal/ledger"
	"voiceledger/internal/log"
	"voiceledger/internal/report"
)

type Runner struct {
	ledger  *ledger.Service
	budgets *budget.Service
	logger  *log.Logger
	now     func() time.Time
}

func NewRunner(ledgerSvc *ledger.Service, budgetSvc *budget.Service, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Runner{
		ledger:  ledgerSvc,
		budgets: budgetSvc,
		logger:  logger.WithComponent("session"),
		now:     time.Now,
	}
}

// Submit runs one utterance through the interpreter. An unrecognized
// utterance returns (nil, nil): the session ignores it and keeps
// listening. A recognized draft with a bad amount, or a store failure,
// returns the error for that single submission.
func (r *Runner) Submit(ctx context.Context, utterance string) (*core.Transaction, error) {
	draft := interpret.Parse(utterance, r.now())
	if draft == nil {
		r.logger.Debug("Utterance not recognized", "utterance", utterance)
		return nil, nil
	}

	tx, err := draft.Transaction()
	if err != nil {
		return nil, fmt.Errorf("reject draft: %w", err)
	}

	if err := r.ledger.Add(ctx, tx); err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "Transaction recorded",
		"id", tx.ID,
		"type", tx.Type,
		"category", tx.Category,
		"amount", tx.Amount.String(),
		"date", tx.Date.ISO())
	return &tx, nil
}

// Remove deletes a transaction by id.
func (r *Runner) Remove(ctx context.Context, id string) error {
	return r.ledger.Remove(ctx, id)
}

// SetBudget parses and stores a new limit for one expense category.
func (r *Runner) SetBudget(ctx context.Context, category, rawAmount string) error {
	limit, err := core.ParseAmount(rawAmount)
	if err != nil {
		return err
	}
	return r.budgets.Set(ctx, category, limit)
}

// Run reads lines until EOF or "quit", treating unprefixed lines as
// utterances. Built-in commands: balance, report, budget, remove, quit.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			return nil
		case "balance":
			fmt.Fprintf(out, "balance: %s\n", r.ledger.Balance())
		case "report":
			r.writeReport(out)
		case "remove":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: remove <id>")
				continue
			}
			if err := r.Remove(ctx, fields[1]); err != nil {
				fmt.Fprintf(out, "remove failed: %v\n", err)
			}
		case "budget":
			if len(fields) < 3 {
				fmt.Fprintln(out, "usage: budget <category> <amount>")
				continue
			}
			category := strings.Join(fields[1:len(fields)-1], " ")
			if err := r.SetBudget(ctx, category, fields[len(fields)-1]); err != nil {
				fmt.Fprintf(out, "budget failed: %v\n", err)
			}
		default:
			tx, err := r.Submit(ctx, line)
			switch {
			case err != nil:
				fmt.Fprintf(out, "rejected: %v\n", err)
			case tx == nil:
				fmt.Fprintln(out, "not recognized")
			default:
				fmt.Fprintf(out, "recorded %s %s %s on %s (id %s)\n",
					tx.Type, tx.Amount.String(), tx.Category, tx.Date.ISO(), tx.ID)
			}
		}
	}
	return scanner.Err()
}

func (r *Runner) writeReport(out io.Writer) {
	snapshot := r.ledger.Snapshot()

	ins := report.Overview(snapshot)
	fmt.Fprintf(out, "income %s, expenses %s, savings rate %.1f%%\n",
		ins.TotalIncome.String(), ins.TotalExpense.String(), ins.SavingsRate)

	for _, u := range report.BudgetUtilization(snapshot, r.budgets.Limits()) {
		if u.Limit.Cents == 0 && u.Consumed.Cents == 0 {
			continue
		}
		marker := ""
		if u.Over {
			marker = " OVER"
		}
		fmt.Fprintf(out, "%s: %s / %s (%.0f%%)%s\n",
			u.Category, u.Consumed.String(), u.Limit.String(), u.Percent, marker)
	}

	for _, b := range report.MonthlyRollup(snapshot) {
		fmt.Fprintf(out, "%04d-%02d: income %s, expenses %s\n",
			b.Year, b.Month, b.Income.String(), b.Expense.String())
	}

	for _, typ := range []core.TransactionType{core.Income, core.Expense} {
		top := report.TopCategories(snapshot, typ, report.DefaultTopN)
		if len(top) == 0 {
			continue
		}
		names := make([]string, 0, len(top))
		for _, ct := range top {
			names = append(names, fmt.Sprintf("%s %s", ct.Category, ct.Total.String()))
		}
		fmt.Fprintf(out, "top %s: %s\n", strings.ToLower(string(typ)), strings.Join(names, ", "))
	}
}
