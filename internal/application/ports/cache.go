package ports

import "context"

// SummaryCache guarda respuestas del tablero. Nunca se consulta para validar stock.
type SummaryCache interface {
	// Get devuelve false si la clave no existe o expiró.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	// Invalidate borra todas las entradas del tablero.
	Invalidate(ctx context.Context) error
}

// NopCache caché desactivada.
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NopCache) Set(context.Context, string, any) error         { return nil }
func (NopCache) Invalidate(context.Context) error               { return nil }
