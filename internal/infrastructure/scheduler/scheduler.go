// Package scheduler ejecuta tareas periódicas de inventario.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/ports"
	"github.com/jhoicas/inventario-pos/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ReplenishmentSource lista productos bajo el umbral con su cantidad sugerida.
type ReplenishmentSource interface {
	GenerateReplenishmentList(ctx context.Context, threshold int64) ([]dto.ReplenishmentSuggestionDTO, error)
}

// Scheduler administra las tareas programadas.
type Scheduler struct {
	cron      *cron.Cron
	source    ReplenishmentSource
	publisher ports.EventPublisher
	spec      string
	threshold int64
	log       *logger.Logger
}

// New construye el scheduler. spec es una expresión cron estándar de 5 campos.
func New(spec string, threshold int64, source ReplenishmentSource, publisher ports.EventPublisher, log *logger.Logger) *Scheduler {
	if publisher == nil {
		publisher = ports.NopPublisher{}
	}
	return &Scheduler{
		cron:      cron.New(),
		source:    source,
		publisher: publisher,
		spec:      spec,
		threshold: threshold,
		log:       log,
	}
}

// Start registra el barrido de stock bajo y arranca el cron.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return fmt.Errorf("scheduler: expresión %q: %w", s.spec, err)
	}
	s.log.Info().Str("cron", s.spec).Int64("threshold", s.threshold).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la tarea en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if _, err := s.RunLowStockSweep(ctx); err != nil {
		s.log.Error().Err(err).Msg("barrido de stock bajo fallido")
	}
}

// RunLowStockSweep publica stock.low si hay productos en o bajo el umbral.
// Devuelve cuántos productos incluyó el evento.
func (s *Scheduler) RunLowStockSweep(ctx context.Context) (int, error) {
	list, err := s.source.GenerateReplenishmentList(ctx, s.threshold)
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		return 0, nil
	}
	event := ports.LowStockEvent{Threshold: s.threshold, Products: make([]ports.LowStockEntry, 0, len(list))}
	for _, item := range list {
		event.Products = append(event.Products, ports.LowStockEntry{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Stock:     item.CurrentStock,
		})
	}
	if err := s.publisher.Publish(ctx, ports.EventLowStock, event); err != nil {
		return 0, fmt.Errorf("publicar stock.low: %w", err)
	}
	s.log.Info().Int("products", len(list)).Msg("alerta de stock bajo publicada")
	return len(list), nil
}
