// inventoryctl tareas de operación: migraciones, alta del primer admin, importación de
// productos desde CSV, verificación del libro y barrido de stock bajo.
//
// Uso: go run ./cmd/inventoryctl <comando> [opciones]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/inventory"
	"github.com/jhoicas/inventario-pos/internal/application/ports"
	"github.com/jhoicas/inventario-pos/internal/application/usecase"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/events"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/scheduler"
	"github.com/jhoicas/inventario-pos/pkg/config"
	"github.com/jhoicas/inventario-pos/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	app := &cli.App{
		Name:  "inventoryctl",
		Usage: "operación de la base de inventario",
		Commands: []*cli.Command{
			migrateCommand(cfg),
			createAdminCommand(cfg),
			importProductsCommand(cfg, log),
			verifyLedgerCommand(cfg),
			lowStockCommand(cfg, log),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func withPool(ctx context.Context, cfg *config.Config, fn func(*pgxpool.Pool) error) error {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(pool)
}

func migrateCommand(cfg *config.Config) *cli.Command {
	url := cfg.DB.ConnectionString()
	return &cli.Command{
		Name:  "migrate",
		Usage: "aplica o revierte el esquema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "aplica las migraciones pendientes",
				Action: func(*cli.Context) error {
					return postgres.Migrate(url, false)
				},
			},
			{
				Name:  "down",
				Usage: "revierte todas las migraciones (borra los datos)",
				Flags: []cli.Flag{&cli.BoolFlag{Name: "yes", Usage: "confirmar"}},
				Action: func(c *cli.Context) error {
					if !c.Bool("yes") {
						return errors.New("migrate down borra todas las tablas; repetir con --yes")
					}
					return postgres.Migrate(url, true)
				},
			},
			{
				Name:  "version",
				Usage: "muestra la versión aplicada",
				Action: func(c *cli.Context) error {
					version, dirty, err := postgres.MigrationVersion(url)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "versión %d (dirty=%t)\n", version, dirty)
					return nil
				},
			},
		},
	}
}

func createAdminCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "create-admin",
		Usage: "crea un usuario administrador",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Value: "Administrador"},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			return withPool(c.Context, cfg, func(pool *pgxpool.Pool) error {
				uc := usecase.NewUserUseCase(postgres.NewUserRepository(pool))
				user, err := uc.Create(c.Context, dto.CreateUserRequest{
					Name:     c.String("name"),
					Email:    c.String("email"),
					Password: c.String("password"),
					Role:     entity.RoleAdmin,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "admin creado: id=%d email=%s\n", user.ID, user.Email)
				return nil
			})
		},
	}
}

func importProductsCommand(cfg *config.Config, log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:      "import-products",
		Usage:     "importa productos desde CSV (name, price, stock, category_id, description)",
		ArgsUsage: "<archivo.csv>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "latin1", Usage: "el archivo viene en ISO-8859-1"},
			&cli.StringFlag{Name: "sep", Value: ",", Usage: "separador de columnas"},
			&cli.Int64Flag{Name: "user-id", Required: true, Usage: "usuario al que se atribuye el stock inicial"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("indicar el archivo CSV")
			}
			sep := []rune(c.String("sep"))
			if len(sep) != 1 {
				return errors.New("sep debe ser un solo carácter")
			}
			f, err := os.Open(c.Args().First())
			if err != nil {
				return err
			}
			defer f.Close()

			rows, rejected, err := parseProductCSV(f, c.Bool("latin1"), sep[0])
			if err != nil {
				return err
			}
			return withPool(c.Context, cfg, func(pool *pgxpool.Pool) error {
				txRunner := postgres.NewTxRunner(pool, cfg.DB, log)
				uc := usecase.NewProductUseCase(postgres.NewProductRepository(pool), txRunner)
				actor := usecase.Actor{UserID: c.Int64("user-id"), Role: entity.RoleAdmin}
				created := 0
				for _, row := range rows {
					if _, err := uc.Create(c.Context, actor, row.Request); err != nil {
						rejected = append(rejected, rowError{Line: row.Line, Err: err})
						continue
					}
					created++
				}
				for _, r := range rejected {
					fmt.Fprintln(c.App.ErrWriter, r.Error())
				}
				fmt.Fprintf(c.App.Writer, "productos creados: %d, filas rechazadas: %d\n", created, len(rejected))
				return nil
			})
		},
	}
}

func verifyLedgerCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "verify-ledger",
		Usage: "recorre el libro de movimientos y reporta discontinuidades",
		Action: func(c *cli.Context) error {
			return withPool(c.Context, cfg, func(pool *pgxpool.Pool) error {
				q := inventory.NewMovementQuery(postgres.NewStockMovementRepository(pool), postgres.NewProductRepository(pool))
				breaks, err := q.VerifyLedger(c.Context)
				if err != nil {
					return err
				}
				for _, b := range breaks {
					fmt.Fprintln(c.App.Writer, b.String())
				}
				if len(breaks) > 0 {
					return cli.Exit(fmt.Sprintf("%d discontinuidades en el libro", len(breaks)), 2)
				}
				fmt.Fprintln(c.App.Writer, "libro consistente")
				return nil
			})
		},
	}
}

func lowStockCommand(cfg *config.Config, log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "low-stock",
		Usage: "ejecuta una vez el barrido de stock bajo y publica el evento",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "threshold", Value: int64(cfg.Scheduler.LowStockThreshold)},
		},
		Action: func(c *cli.Context) error {
			return withPool(c.Context, cfg, func(pool *pgxpool.Pool) error {
				source := inventory.NewReplenishmentUseCase(postgres.NewDashboardRepository(pool))
				var publisher ports.EventPublisher
				if cfg.AMQP.URL != "" {
					conn, err := events.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
					if err != nil {
						return err
					}
					defer conn.Close()
					publisher = events.NewAMQPPublisher(conn.Ch, cfg.AMQP.Exchange)
				}
				sweep := scheduler.New("", c.Int64("threshold"), source, publisher, log)
				n, err := sweep.RunLowStockSweep(c.Context)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "productos bajo el umbral: %d\n", n)
				return nil
			})
		},
	}
}
