// Package bootstrap arma los repositorios del driver de almacenamiento configurado.
// Lo comparten el servidor HTTP y la CLI.
package bootstrap

import (
	"context"
	"fmt"

	appbilling "github.com/jlvilasoler/hashrate-app/internal/application/billing"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
	"github.com/jlvilasoler/hashrate-app/internal/infrastructure/memory"
	"github.com/jlvilasoler/hashrate-app/internal/infrastructure/postgres"
	"github.com/jlvilasoler/hashrate-app/pkg/config"
	"github.com/jlvilasoler/hashrate-app/pkg/logger"
)

// Storage puertos de persistencia de un driver.
type Storage struct {
	Users     repository.UserRepository
	Activity  repository.ActivityRepository
	Clients   repository.ClientRepository
	Documents repository.DocumentRepository
	Reports   repository.ReportRepository
	Tx        appbilling.DocumentTxRunner

	close func()
}

// Close libera las conexiones del driver.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStorage abre el driver configurado. Con postgres aplica las migraciones si AutoMigrations está activo.
func OpenStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: el historial se pierde al reiniciar")
		s := memory.NewStore()
		return &Storage{
			Users:     memory.NewUserRepository(s),
			Activity:  memory.NewActivityRepository(s),
			Clients:   memory.NewClientRepository(s),
			Documents: memory.NewDocumentRepository(s),
			Reports:   memory.NewReportRepository(s),
			Tx:        memory.NewTxRunner(s),
		}, nil

	case config.StoragePostgres:
		if cfg.DB.AutoMigrations {
			if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
				return nil, fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Storage{
			Users:     postgres.NewUserRepository(pool),
			Activity:  postgres.NewActivityRepository(pool),
			Clients:   postgres.NewClientRepository(pool),
			Documents: postgres.NewDocumentRepository(pool),
			Reports:   postgres.NewReportRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			close:     pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Storage.Driver)
}
