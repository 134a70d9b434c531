package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

// CategoryUseCase casos de uso de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre es único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Category{Name: name, Description: strings.TrimSpace(in.Description)}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// Update renombra o cambia la descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Category{ID: id, Name: name, Description: strings.TrimSpace(in.Description)}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// List lista todas las categorías por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

// SupplierUseCase casos de uso de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

func (uc *SupplierUseCase) Create(ctx context.Context, in dto.PartyRequest) (*dto.PartyResponse, error) {
	in, err := normalizeParty(in)
	if err != nil {
		return nil, err
	}
	s := &entity.Supplier{Name: in.Name, Phone: in.Phone, Email: in.Email, Active: true}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	resp := toSupplierResponse(s)
	return &resp, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.PartyRequest) (*dto.PartyResponse, error) {
	in, err := normalizeParty(in)
	if err != nil {
		return nil, err
	}
	s := &entity.Supplier{ID: id, Name: in.Name, Phone: in.Phone, Email: in.Email}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	resp := toSupplierResponse(s)
	return &resp, nil
}

// SetActive desactiva sin borrar: las compras históricas siguen apuntando al proveedor.
func (uc *SupplierUseCase) SetActive(ctx context.Context, id int64, active bool) error {
	return uc.repo.SetActive(ctx, id, active)
}

func (uc *SupplierUseCase) List(ctx context.Context, onlyActive bool) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// CustomerUseCase casos de uso de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

func (uc *CustomerUseCase) Create(ctx context.Context, in dto.PartyRequest) (*dto.PartyResponse, error) {
	in, err := normalizeParty(in)
	if err != nil {
		return nil, err
	}
	c := &entity.Customer{Name: in.Name, Phone: in.Phone, Email: in.Email, Active: true}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.PartyRequest) (*dto.PartyResponse, error) {
	in, err := normalizeParty(in)
	if err != nil {
		return nil, err
	}
	c := &entity.Customer{ID: id, Name: in.Name, Phone: in.Phone, Email: in.Email}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

func (uc *CustomerUseCase) SetActive(ctx context.Context, id int64, active bool) error {
	return uc.repo.SetActive(ctx, id, active)
}

func (uc *CustomerUseCase) List(ctx context.Context, onlyActive bool) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) dto.PartyResponse {
	return dto.PartyResponse{ID: s.ID, Name: s.Name, Phone: s.Phone, Email: s.Email, Active: s.Active, CreatedAt: s.CreatedAt}
}

func toCustomerResponse(c *entity.Customer) dto.PartyResponse {
	return dto.PartyResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email, Active: c.Active, CreatedAt: c.CreatedAt}
}

func normalizeParty(in dto.PartyRequest) (dto.PartyRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" {
		return in, domain.ErrInvalidInput
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return in, domain.ErrInvalidInput
	}
	return in, nil
}
