package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo gastos operativos.
type ExpenseRepo struct {
	q Querier
}

func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	query := `
		WITH ins AS (
			INSERT INTO expenses (concept, amount, note, user_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, user_id
		)
		SELECT ins.id, ins.created_at, COALESCE(u.name, '')
		FROM ins LEFT JOIN users u ON u.id = ins.user_id`
	err := r.q.QueryRow(ctx, query, e.Concept, e.Amount, e.Note, e.UserID).Scan(&e.ID, &e.CreatedAt, &e.UserName)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// List lista gastos, el más reciente primero, con el nombre de quien lo registró.
func (r *ExpenseRepo) List(ctx context.Context, page repository.Page) ([]*entity.Expense, error) {
	limit, offset := limitOffset(page.Limit, page.Offset)
	rows, err := r.q.Query(ctx, `
		SELECT e.id, e.concept, e.amount, e.note, e.user_id, COALESCE(u.name, ''), e.created_at
		FROM expenses e LEFT JOIN users u ON u.id = e.user_id
		ORDER BY e.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.Concept, &e.Amount, &e.Note, &e.UserID, &e.UserName, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
