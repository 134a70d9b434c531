package entity

import "time"

// Supplier es el proveedor de una compra.
type Supplier struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
}

// Customer es el cliente (opcional) de una venta.
type Customer struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
}
