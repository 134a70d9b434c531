package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ db accessor }

var _ repository.UserRepository = (*UserRepo)(nil)

func emailTaken(st *state, email string, except int64) bool {
	for id, u := range st.users {
		if id != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.db.do(func(st *state, now time.Time) error {
		if emailTaken(st, u.Email, 0) {
			return domain.ErrEmailAlreadyExists
		}
		u.ID = st.next("users")
		u.CreatedAt, u.UpdatedAt = now, now
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.db.do(func(st *state, _ time.Time) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.db.do(func(st *state, _ time.Time) error {
		for _, u := range st.users {
			u := u
			if strings.EqualFold(u.Email, email) {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.db.do(func(st *state, now time.Time) error {
		cur, ok := st.users[u.ID]
		if !ok {
			return domain.ErrUserNotFound
		}
		if emailTaken(st, u.Email, u.ID) {
			return domain.ErrEmailAlreadyExists
		}
		cur.Name, cur.Email, cur.Role, cur.PasswordHash = u.Name, u.Email, u.Role, u.PasswordHash
		cur.UpdatedAt = now
		st.users[u.ID] = cur
		*u = cur
		return nil
	})
}

func (r *UserRepo) SetActive(_ context.Context, id int64, active bool) error {
	return r.db.do(func(st *state, now time.Time) error {
		cur, ok := st.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		cur.Active = active
		cur.UpdatedAt = now
		st.users[id] = cur
		return nil
	})
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.db.do(func(st *state, _ time.Time) error {
		for _, u := range st.users {
			u := u
			out = append(out, &u)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return nil
	})
	return out, err
}

// ExpenseRepo implementa repository.ExpenseRepository.
type ExpenseRepo struct{ db accessor }

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

func (r *ExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	return r.db.do(func(st *state, now time.Time) error {
		e.ID = st.next("expenses")
		e.CreatedAt = now
		e.UserName = st.users[e.UserID].Name
		st.expenses = append(st.expenses, *e)
		return nil
	})
}

func (r *ExpenseRepo) List(_ context.Context, page repository.Page) ([]*entity.Expense, error) {
	var out []*entity.Expense
	err := r.db.do(func(st *state, _ time.Time) error {
		for i := len(st.expenses) - 1; i >= 0; i-- {
			e := st.expenses[i]
			e.UserName = st.users[e.UserID].Name
			out = append(out, &e)
		}
		out = paginate(out, page)
		return nil
	})
	return out, err
}
