package seed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"iline-employees/internal/apperror"
	"iline-employees/internal/models"
)

// maxRowsPerStatement keeps a multi-row INSERT well under the PostgreSQL limit
// of 65535 bind parameters.
const maxRowsPerStatement = 1000

type Options struct {
	// BatchSize is the number of rows per INSERT statement; 1 inserts row by row.
	BatchSize int

	// Seed feeds the generator; 0 picks a time based seed.
	Seed int64

	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

type Result struct {
	Inserted int
	Elapsed  time.Duration
}

type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
	opts   Options
}

func New(db *gorm.DB, logger *zap.Logger, opts Options) *Seeder {
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}
	return &Seeder{
		db:     db,
		logger: logger,
		opts:   opts,
	}
}

// Run drops and recreates the employees table and fills it with count
// generated rows, all in one transaction. On any failure the transaction is
// rolled back and the previous table survives.
func (s *Seeder) Run(ctx context.Context, count int) (Result, error) {
	if count < 1 {
		return Result{}, apperror.New(apperror.CodeValidation, "employee count must be at least 1")
	}

	start := time.Now()
	s.logger.Info("seeding employees",
		zap.Int("count", count),
		zap.Int("batch_size", s.opts.BatchSize))

	var bar *progressbar.ProgressBar
	if s.opts.Progress != nil {
		bar = progressbar.NewOptions(count, progressbar.OptionSetWriter(s.opts.Progress))
	}

	generator := NewGenerator(s.opts.Seed)
	inserted := 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := recreateTable(tx); err != nil {
			return err
		}

		batch := make([]models.Employee, 0, s.opts.BatchSize)
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			if err := insertBatch(tx, batch); err != nil {
				return apperror.Wrap(apperror.CodeQuery, fmt.Sprintf("insert employee %d", inserted+1), err)
			}
			inserted += len(batch)
			if bar != nil {
				_ = bar.Add(len(batch))
			}
			batch = batch[:0]
			return nil
		}

		for i := 0; i < count; i++ {
			batch = append(batch, generator.Employee(i))
			if len(batch) == s.opts.BatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
		return flush()
	})
	if bar != nil {
		fmt.Fprintln(s.opts.Progress)
	}
	if err != nil {
		s.logger.Error("seeding failed, transaction rolled back", zap.Error(err))
		if apperror.GetCode(err) == apperror.CodeInternal {
			err = apperror.Wrap(apperror.CodeQuery, "seed employees", err)
		}
		return Result{}, err
	}

	result := Result{Inserted: inserted, Elapsed: time.Since(start)}
	s.logger.Info("employees seeded",
		zap.Int("inserted", result.Inserted),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

func recreateTable(tx *gorm.DB) error {
	if err := tx.Migrator().DropTable(&models.Employee{}); err != nil {
		return apperror.Wrap(apperror.CodeQuery, "drop employees table", err)
	}
	if err := tx.Migrator().CreateTable(&models.Employee{}); err != nil {
		return apperror.Wrap(apperror.CodeQuery, "create employees table", err)
	}
	return nil
}

func insertBatch(tx *gorm.DB, batch []models.Employee) error {
	if len(batch) == 1 {
		return tx.Create(&batch[0]).Error
	}
	return tx.CreateInBatches(&batch, maxRowsPerStatement).Error
}
