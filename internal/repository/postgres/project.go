package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workdayz/workdayz-api/internal/domain"
)

// ProjectRepository реализует repository.ProjectRepository для PostgreSQL
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository создает новый экземпляр ProjectRepository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// activeProjectsFilter — условие "пользователь состоит в открытом проекте
// как создатель или участник"; используется квотой и выборками.
const activeProjectsFilter = `
	p.closed = false
	AND (p.creator_id = $1 OR EXISTS (
		SELECT 1 FROM project_members m
		WHERE m.project_id = p.project_id AND m.user_id = $1
	))
`

// Create создает проект если у создателя меньше domain.MaxActiveProjects
// активных проектов. Проверка квоты и вставка выполняются одним оператором,
// чтобы сузить окно гонки read-then-write.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO projects (project_id, creator_id, name, description, closed, created_at)
		SELECT $2, $1, $3, $4, false, $5
		WHERE (
			SELECT COUNT(*) FROM projects p WHERE ` + activeProjectsFilter + `
		) < $6
	`

	createdAt := time.Now()
	result, err := r.db.Exec(ctx, query,
		project.CreatorID, project.ProjectID, project.Name, project.Description,
		createdAt, domain.MaxActiveProjects,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return domain.ErrUserNotFound
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrProjectQuota
	}

	project.CreatedAt = &createdAt
	return nil
}

// GetOpenByID получает открытый проект по ID вместе с именем создателя
func (r *ProjectRepository) GetOpenByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `
		SELECT p.project_id, p.creator_id, u.full_name, p.name, p.description,
		       p.closed, COALESCE(p.reason, ''), p.created_at
		FROM projects p
		JOIN users u ON u.user_id = p.creator_id
		WHERE p.project_id = $1 AND p.closed = false
	`

	var project domain.Project
	var reason string
	err := r.db.QueryRow(ctx, query, projectID).Scan(
		&project.ProjectID,
		&project.CreatorID,
		&project.CreatorName,
		&project.Name,
		&project.Description,
		&project.Closed,
		&reason,
		&project.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	project.Reason = domain.CloseReason(reason)
	return &project, nil
}

// CountActive возвращает число открытых проектов где пользователь
// является создателем или участником
func (r *ProjectRepository) CountActive(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM projects p WHERE ` + activeProjectsFilter

	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// IsUserInProject проверяет отношение пользователя к открытому проекту.
// Закрытый или несуществующий проект дает false, а не ошибку: все
// последующие проверки прав трактуют это как отсутствие доступа.
func (r *ProjectRepository) IsUserInProject(ctx context.Context, userID, projectID string, creatorOnly bool) (bool, error) {
	var query string
	if creatorOnly {
		query = `
			SELECT EXISTS(
				SELECT 1 FROM projects p
				WHERE p.project_id = $2 AND p.closed = false AND p.creator_id = $1
			)
		`
	} else {
		query = `
			SELECT EXISTS(
				SELECT 1 FROM projects p
				WHERE p.project_id = $2 AND ` + activeProjectsFilter + `
			)
		`
	}

	var ok bool
	if err := r.db.QueryRow(ctx, query, userID, projectID).Scan(&ok); err != nil {
		return false, err
	}

	return ok, nil
}

// AddMember добавляет участника если в проекте меньше domain.MaxProjectMembers
// участников. Проверка лимита и вставка выполняются одним оператором.
func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID string) error {
	query := `
		INSERT INTO project_members (project_id, user_id)
		SELECT $1, $2
		WHERE (
			SELECT COUNT(*) FROM project_members WHERE project_id = $1
		) < $3
		ON CONFLICT (project_id, user_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, projectID, userID, domain.MaxProjectMembers)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			if pgErr.ConstraintName == "project_members_user_id_fkey" {
				return domain.ErrUserNotFound
			}
			return domain.ErrProjectNotFound
		}
		return err
	}

	// 0 строк дает и переполнение лимита, и ON CONFLICT DO NOTHING при
	// параллельном добавлении того же участника. Перепроверяем членство:
	// существующий участник — no-op, а не превышение лимита.
	if result.RowsAffected() == 0 {
		var exists bool
		existsQuery := `
			SELECT EXISTS(
				SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2
			)
		`
		if err := r.db.QueryRow(ctx, existsQuery, projectID, userID).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return nil
		}
		return domain.ErrMemberLimit
	}

	return nil
}

// RemoveMember удаляет участника; удаление не-участника — no-op
func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	query := `DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`

	_, err := r.db.Exec(ctx, query, projectID, userID)
	return err
}

// Close помечает открытый проект закрытым. Повторное закрытие невозможно:
// условие closed = false делает переход одноразовым.
func (r *ProjectRepository) Close(ctx context.Context, projectID string, reason domain.CloseReason) error {
	query := `
		UPDATE projects
		SET closed = true, reason = $2
		WHERE project_id = $1 AND closed = false
	`

	result, err := r.db.Exec(ctx, query, projectID, reason)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}

	return nil
}

// ActiveForUser возвращает открытые проекты пользователя (создатель или участник)
func (r *ProjectRepository) ActiveForUser(ctx context.Context, userID string) ([]*domain.Project, error) {
	query := `
		SELECT p.project_id, p.creator_id, u.full_name, p.name, p.description,
		       p.closed, COALESCE(p.reason, ''), p.created_at
		FROM projects p
		JOIN users u ON u.user_id = p.creator_id
		WHERE ` + activeProjectsFilter + `
		ORDER BY p.created_at DESC
		LIMIT $2
	`

	return r.queryProjects(ctx, query, userID, domain.MaxActiveProjects)
}

// PreviousForUser возвращает страницу закрытых проектов пользователя
func (r *ProjectRepository) PreviousForUser(ctx context.Context, userID string, skip int) ([]*domain.Project, error) {
	query := `
		SELECT p.project_id, p.creator_id, u.full_name, p.name, p.description,
		       p.closed, COALESCE(p.reason, ''), p.created_at
		FROM projects p
		JOIN users u ON u.user_id = p.creator_id
		WHERE p.closed = true
		  AND (p.creator_id = $1 OR EXISTS (
			SELECT 1 FROM project_members m
			WHERE m.project_id = p.project_id AND m.user_id = $1
		  ))
		ORDER BY p.created_at DESC
		OFFSET $2
		LIMIT $3
	`

	return r.queryProjects(ctx, query, userID, skip, domain.PreviousProjectsPageSize)
}

func (r *ProjectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var project domain.Project
		var reason string
		if err := rows.Scan(
			&project.ProjectID, &project.CreatorID, &project.CreatorName,
			&project.Name, &project.Description, &project.Closed,
			&reason, &project.CreatedAt,
		); err != nil {
			return nil, err
		}
		project.Reason = domain.CloseReason(reason)
		projects = append(projects, &project)
	}

	// Возвращаем пустой массив вместо nil если проектов нет
	if projects == nil {
		projects = []*domain.Project{}
	}

	return projects, rows.Err()
}

// Members возвращает создателя и участников открытого проекта
func (r *ProjectRepository) Members(ctx context.Context, projectID string) (*domain.ProjectMembers, error) {
	creatorQuery := `
		SELECT u.user_id, u.full_name, COALESCE(u.img, '')
		FROM projects p
		JOIN users u ON u.user_id = p.creator_id
		WHERE p.project_id = $1 AND p.closed = false
	`

	result := &domain.ProjectMembers{ProjectID: projectID}
	err := r.db.QueryRow(ctx, creatorQuery, projectID).Scan(
		&result.Creator.UserID,
		&result.Creator.FullName,
		&result.Creator.Img,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	membersQuery := `
		SELECT u.user_id, u.full_name, COALESCE(u.img, '')
		FROM project_members m
		JOIN users u ON u.user_id = m.user_id
		WHERE m.project_id = $1
		ORDER BY m.added_at
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, membersQuery, projectID, domain.MaxProjectMembers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []domain.UserProfile{}
	for rows.Next() {
		var member domain.UserProfile
		if err := rows.Scan(&member.UserID, &member.FullName, &member.Img); err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	result.Members = members
	return result, rows.Err()
}
