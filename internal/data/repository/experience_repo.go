package repository

import (
	"context"
	"fmt"

	"experience-booking/internal/data/entity"
	"experience-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ExperienceRepository interface {
	Create(ctx context.Context, exp *entity.Experience) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Experience, error)
	FindActive(ctx context.Context, limit, offset int) ([]*entity.Experience, error)
	CountActive(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ExperienceStatus) error
}

type experienceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewExperienceRepository(db database.PgxIface, log *zap.Logger) ExperienceRepository {
	return &experienceRepository{
		db:  db,
		log: log.With(zap.String("repository", "experience")),
	}
}

const experienceColumns = `id, host_id, title, description, location, price, private_price,
	       max_capacity, status, created_at, updated_at`

func (r *experienceRepository) Create(ctx context.Context, exp *entity.Experience) error {
	query := `
		INSERT INTO experiences (id, host_id, title, description, location, price, private_price,
		                         max_capacity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		exp.ID,
		exp.HostID,
		exp.Title,
		exp.Description,
		exp.Location,
		exp.Price,
		exp.PrivatePrice,
		exp.MaxCapacity,
		exp.Status,
		exp.CreatedAt,
		exp.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create experience",
			zap.Error(err),
			zap.String("host_id", exp.HostID.String()),
			zap.String("title", exp.Title),
		)
		return fmt.Errorf("create experience %s: %w", exp.Title, err)
	}

	return nil
}

func scanExperience(row pgx.Row) (*entity.Experience, error) {
	var e entity.Experience
	err := row.Scan(
		&e.ID,
		&e.HostID,
		&e.Title,
		&e.Description,
		&e.Location,
		&e.Price,
		&e.PrivatePrice,
		&e.MaxCapacity,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *experienceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Experience, error) {
	query := `SELECT ` + experienceColumns + ` FROM experiences WHERE id = $1`

	exp, err := scanExperience(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find experience by ID",
			zap.Error(err),
			zap.String("experience_id", id.String()),
		)
		return nil, fmt.Errorf("find experience by ID %s: %w", id.String(), err)
	}

	return exp, nil
}

func (r *experienceRepository) FindActive(ctx context.Context, limit, offset int) ([]*entity.Experience, error) {
	query := `
		SELECT ` + experienceColumns + `
		FROM experiences
		WHERE status = 'active'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find active experiences", zap.Error(err))
		return nil, fmt.Errorf("find active experiences: %w", err)
	}
	defer rows.Close()

	var experiences []*entity.Experience
	for rows.Next() {
		exp, err := scanExperience(rows)
		if err != nil {
			r.log.Error("Failed to scan experience row", zap.Error(err))
			return nil, fmt.Errorf("scan experience row: %w", err)
		}
		experiences = append(experiences, exp)
	}

	return experiences, rows.Err()
}

func (r *experienceRepository) CountActive(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM experiences WHERE status = 'active'`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count active experiences", zap.Error(err))
		return 0, fmt.Errorf("count active experiences: %w", err)
	}

	return count, nil
}

func (r *experienceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ExperienceStatus) error {
	query := `UPDATE experiences SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update experience status",
			zap.Error(err),
			zap.String("experience_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update experience %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("experience %s not found", id.String())
	}

	return nil
}
