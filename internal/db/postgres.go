package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/artlore/artlore-backend/internal/logger"
	"github.com/artlore/artlore-backend/internal/types"
	"github.com/artlore/artlore-backend/internal/utils"
)

// PostgresService owns the database handle for the life of the process. It is
// constructed once in main and passed down explicitly; nothing reaches for it
// through package state.
type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "artlore", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.UserProfile{},
		&types.Artwork{},
		&types.SubjectExpansion{},
		&types.UserArtwork{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		ddl  string
	}{
		{
			name: "fk_artwork_creator_user_id",
			ddl: `ALTER TABLE "artwork"
				ADD CONSTRAINT "fk_artwork_creator_user_id"
				FOREIGN KEY ("creator_user_id")
				REFERENCES "user_profile"("id")
				ON DELETE SET NULL`,
		},
		{
			name: "fk_subject_expansion_artwork_id",
			ddl: `ALTER TABLE "subject_expansion"
				ADD CONSTRAINT "fk_subject_expansion_artwork_id"
				FOREIGN KEY ("artwork_id")
				REFERENCES "artwork"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_subject_expansion_parent_id",
			ddl: `ALTER TABLE "subject_expansion"
				ADD CONSTRAINT "fk_subject_expansion_parent_id"
				FOREIGN KEY ("parent_expansion_id")
				REFERENCES "subject_expansion"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_user_artwork_user_id",
			ddl: `ALTER TABLE "user_artwork"
				ADD CONSTRAINT "fk_user_artwork_user_id"
				FOREIGN KEY ("user_id")
				REFERENCES "user_profile"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_user_artwork_artwork_id",
			ddl: `ALTER TABLE "user_artwork"
				ADD CONSTRAINT "fk_user_artwork_artwork_id"
				FOREIGN KEY ("artwork_id")
				REFERENCES "artwork"("id")
				ON DELETE CASCADE`,
		},
	}
	for _, c := range constraints {
		if err := s.db.Exec(c.ddl).Error; err != nil {
			// Constraint already present on a previously migrated schema.
			s.log.Debug("Skipping constraint", "constraint", c.name, "error", err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// Close releases the underlying connection pool. Deferred from main so the
// handle's lifecycle matches the process's.
func (s *PostgresService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
