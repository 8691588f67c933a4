package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workdayz/workdayz-api/internal/domain"
)

// UserRepository реализует repository.UserRepository для PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create создает нового пользователя с хешированным паролем
func (r *UserRepository) Create(ctx context.Context, user *domain.User, passwordHash string) error {
	query := `
		INSERT INTO users (user_id, full_name, email, password_hash, skills, job_title, description, img)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		user.UserID, user.FullName, user.Email, passwordHash,
		user.Skills, user.JobTitle, user.Description, user.Img,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return domain.ErrEmailTaken
		}
		return err
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, full_name, skills, job_title, description, COALESCE(img, '')
		FROM users
		WHERE user_id = $1
	`

	var user domain.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.UserID,
		&user.FullName,
		&user.Skills,
		&user.JobTitle,
		&user.Description,
		&user.Img,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetByEmail получает пользователя и хеш пароля по email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	query := `
		SELECT user_id, full_name, email, password_hash, skills, job_title, description, COALESCE(img, '')
		FROM users
		WHERE email = $1
	`

	var user domain.User
	var passwordHash string
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.UserID,
		&user.FullName,
		&user.Email,
		&passwordHash,
		&user.Skills,
		&user.JobTitle,
		&user.Description,
		&user.Img,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.ErrUserNotFound
		}
		return nil, "", err
	}

	return &user, passwordHash, nil
}

// Update обновляет изменяемые поля профиля.
// Пустые строки означают "поле не меняется" — email и пароль этим путем
// не обновляются вовсе.
func (r *UserRepository) Update(ctx context.Context, userID string, upd domain.UserUpdate) error {
	query := `
		UPDATE users
		SET full_name   = COALESCE(NULLIF($1, ''), full_name),
		    skills      = COALESCE(NULLIF($2, ''), skills),
		    job_title   = COALESCE(NULLIF($3, ''), job_title),
		    description = COALESCE(NULLIF($4, ''), description),
		    img         = COALESCE(NULLIF($5, ''), img),
		    updated_at  = NOW()
		WHERE user_id = $6
	`

	result, err := r.db.Exec(ctx, query,
		upd.FullName, upd.Skills, upd.JobTitle, upd.Description, upd.Img, userID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// Search ищет пользователей полнотекстовым поиском по имени, должности и навыкам
func (r *UserRepository) Search(ctx context.Context, query string) ([]*domain.User, error) {
	searchQuery := `
		SELECT user_id, full_name, skills, job_title, description, COALESCE(img, '')
		FROM users
		WHERE to_tsvector('simple', full_name || ' ' || job_title || ' ' || skills)
		      @@ plainto_tsquery('simple', $1)
		ORDER BY user_id
		LIMIT 50
	`

	rows, err := r.db.Query(ctx, searchQuery, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.UserID, &user.FullName, &user.Skills,
			&user.JobTitle, &user.Description, &user.Img,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	// Возвращаем пустой массив вместо nil если ничего не найдено
	if users == nil {
		users = []*domain.User{}
	}

	return users, rows.Err()
}
