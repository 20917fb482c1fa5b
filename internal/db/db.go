package db

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"iline-employees/internal/apperror"
	"iline-employees/internal/config"
)

const pingTimeout = 5 * time.Second

// NewLogger routes gorm's logging through zap at warn level.
func NewLogger(log *zap.Logger) logger.Interface {
	return logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Connect opens a single synchronous PostgreSQL connection. Every failure is
// reported as an apperror with code connection and a nil handle.
func Connect(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	return Open(postgres.Open(cfg.DatabaseURL()), log)
}

// Open is Connect for an arbitrary dialector.
func Open(dialector gorm.Dialector, log *zap.Logger) (*gorm.DB, error) {
	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewLogger(log),
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeConnection, "connect to database", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeConnection, "connect to database", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, apperror.Wrap(apperror.CodeConnection, "connect to database", err)
	}

	log.Info("connected to database", zap.String("dialect", dialector.Name()))
	return database, nil
}

func Close(database *gorm.DB) error {
	if database == nil {
		return nil
	}
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
