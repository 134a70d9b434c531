package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos. El stock solo se maneja vía movimientos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create crea un producto activo. Si trae stock inicial, se registra como ajuste en el libro
// dentro de la misma transacción del alta.
func (uc *ProductUseCase) Create(ctx context.Context, actor Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := checkImage(actor, in.Image); err != nil {
		return nil, err
	}
	initial, err := domaininv.ParseQuantity(in.InitialStock, true)
	if err != nil {
		return nil, err
	}

	var created *entity.Product
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		p := &entity.Product{
			CategoryID:  in.CategoryID,
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			Price:       in.Price,
			Active:      true,
			Image:       in.Image,
		}
		if err := repos.Products.Create(ctx, p); err != nil {
			return err
		}
		if _, err := inventory.SeedStock(ctx, repos, p, initial, actor.UserID); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewProductResponse(created)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := dto.NewProductResponse(p)
	return &resp, nil
}

// Update actualiza datos de catálogo. No permite modificar stock ni estado.
func (uc *ProductUseCase) Update(ctx context.Context, actor Actor, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.CategoryID != nil {
		p.CategoryID = in.CategoryID
	}
	if in.Image != nil {
		if err := checkImage(actor, *in.Image); err != nil {
			return nil, err
		}
		p.Image = *in.Image
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := dto.NewProductResponse(p)
	return &resp, nil
}

// SetActive activa o desactiva (borrado lógico). Nunca se borra un producto referenciado.
func (uc *ProductUseCase) SetActive(ctx context.Context, id int64, active bool) error {
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrProductNotFound
		}
		return err
	}
	return nil
}

// List lista productos con nombre de categoría.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	pr := dto.PageRequest{Limit: filter.Page.Limit, Offset: filter.Page.Offset}
	pr.DefaultPage()
	filter.Page = repository.Page{Limit: pr.Limit, Offset: pr.Offset}

	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, v := range list {
		r := dto.NewProductResponse(&v.Product)
		r.CategoryName = v.CategoryName
		items = append(items, r)
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: pr.Limit, Offset: pr.Offset},
	}, nil
}

func checkImage(actor Actor, image string) error {
	if image == "" {
		return nil
	}
	if !actor.CanSetImage() {
		return domain.ErrForbidden
	}
	if len(image) > MaxImageBytes {
		return domain.ErrInvalidInput
	}
	return nil
}

