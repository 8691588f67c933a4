package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workdayz/workdayz-api/internal/domain"
)

// PhaseRepository реализует repository.PhaseRepository для PostgreSQL
type PhaseRepository struct {
	db *pgxpool.Pool
}

// NewPhaseRepository создает новый экземпляр PhaseRepository
func NewPhaseRepository(db *pgxpool.Pool) *PhaseRepository {
	return &PhaseRepository{db: db}
}

// Create создает фазу если в проекте меньше domain.MaxPhasesPerProject фаз.
// Проверка лимита и вставка выполняются одним оператором.
func (r *PhaseRepository) Create(ctx context.Context, phase *domain.Phase) error {
	query := `
		INSERT INTO phases (phase_id, project_id, name, status)
		SELECT $1, $2, $3, $4
		WHERE (
			SELECT COUNT(*) FROM phases WHERE project_id = $2
		) < $5
	`

	result, err := r.db.Exec(ctx, query,
		phase.PhaseID, phase.ProjectID, phase.Name, phase.Status,
		domain.MaxPhasesPerProject,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPhaseLimit
	}

	return nil
}

// UpdateStatus обновляет статус фазы
func (r *PhaseRepository) UpdateStatus(ctx context.Context, projectID, phaseID string, status domain.Status) error {
	query := `
		UPDATE phases
		SET status = $1
		WHERE phase_id = $2 AND project_id = $3
	`

	result, err := r.db.Exec(ctx, query, status, phaseID, projectID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPhaseNotFound
	}

	return nil
}

// Delete удаляет фазу вместе с ее задачами в одной транзакции.
// FK с ON DELETE CASCADE в схеме дублирует это на уровне БД.
func (r *PhaseRepository) Delete(ctx context.Context, projectID, phaseID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore error as it will fail if transaction was committed
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE phase_id = $1`, phaseID); err != nil {
		return err
	}

	result, err := tx.Exec(ctx,
		`DELETE FROM phases WHERE phase_id = $1 AND project_id = $2`,
		phaseID, projectID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPhaseNotFound
	}

	return tx.Commit(ctx)
}

// ListForProject возвращает фазы проекта (не более domain.MaxPhasesPerProject)
func (r *PhaseRepository) ListForProject(ctx context.Context, projectID string) ([]*domain.Phase, error) {
	query := `
		SELECT phase_id, project_id, name, status
		FROM phases
		WHERE project_id = $1
		ORDER BY created_at
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, projectID, domain.MaxPhasesPerProject)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phases []*domain.Phase
	for rows.Next() {
		var phase domain.Phase
		if err := rows.Scan(&phase.PhaseID, &phase.ProjectID, &phase.Name, &phase.Status); err != nil {
			return nil, err
		}
		phases = append(phases, &phase)
	}

	// Возвращаем пустой массив вместо nil если фаз нет
	if phases == nil {
		phases = []*domain.Phase{}
	}

	return phases, rows.Err()
}
