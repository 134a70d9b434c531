package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/ports"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// ExpenseUseCase registra gastos operativos. No afectan el inventario pero sí el tablero.
type ExpenseUseCase struct {
	repo  repository.ExpenseRepository
	cache ports.SummaryCache
}

// NewExpenseUseCase construye el caso de uso. cache puede ser nil.
func NewExpenseUseCase(repo repository.ExpenseRepository, cache ports.SummaryCache) *ExpenseUseCase {
	if cache == nil {
		cache = ports.NopCache{}
	}
	return &ExpenseUseCase{repo: repo, cache: cache}
}

// Create registra un gasto con monto positivo.
func (uc *ExpenseUseCase) Create(ctx context.Context, actor Actor, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	concept := strings.TrimSpace(in.Concept)
	if concept == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := domaininv.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	e := &entity.Expense{
		Concept: concept,
		Amount:  in.Amount,
		Note:    strings.TrimSpace(in.Note),
		UserID:  actor.UserID,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	// el tablero se recalcula en la próxima lectura; un fallo aquí no invalida el gasto
	_ = uc.cache.Invalidate(ctx)
	resp := toExpenseResponse(e)
	return &resp, nil
}

// List lista gastos, el más reciente primero.
func (uc *ExpenseUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ExpenseResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:        e.ID,
		Concept:   e.Concept,
		Amount:    e.Amount,
		Note:      e.Note,
		UserID:    e.UserID,
		UserName:  e.UserName,
		CreatedAt: e.CreatedAt,
	}
}
