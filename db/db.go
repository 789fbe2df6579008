package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hackhub/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Ping проверяет соединение с БД
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Строка таблицы hackathon
type hackathonRow struct {
	ID                   string         `db:"id"`
	Title                string         `db:"title"`
	College              string         `db:"college"`
	State                string         `db:"state"`
	District             string         `db:"district"`
	StartDate            time.Time      `db:"start_date"`
	EndDate              time.Time      `db:"end_date"`
	RegistrationDeadline time.Time      `db:"registration_deadline"`
	Description          string         `db:"description"`
	Eligibility          string         `db:"eligibility"`
	Prizes               string         `db:"prizes"`
	TeamMin              int            `db:"team_min"`
	TeamMax              int            `db:"team_max"`
	Tags                 pq.StringArray `db:"tags"`
	Website              sql.NullString `db:"website"`
	Image                string         `db:"image"`
	ContactName          string         `db:"contact_name"`
	ContactEmail         string         `db:"contact_email"`
	ContactPhone         string         `db:"contact_phone"`
	IsVerified           bool           `db:"is_verified"`
	Status               string         `db:"status"`
	CreatedAt            time.Time      `db:"created_at"`
}

const hackathonColumns = `id, title, college, state, district, start_date, end_date,
        registration_deadline, description, eligibility, prizes, team_min, team_max,
        tags, website, image, contact_name, contact_email, contact_phone,
        is_verified, status, created_at`

func (r *hackathonRow) toModel() models.Hackathon {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return models.Hackathon{
		ID:                   r.ID,
		Title:                r.Title,
		College:              r.College,
		State:                r.State,
		District:             r.District,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		RegistrationDeadline: r.RegistrationDeadline,
		Description:          r.Description,
		Eligibility:          r.Eligibility,
		Prizes:               r.Prizes,
		TeamSize:             models.TeamSize{Min: r.TeamMin, Max: r.TeamMax},
		Tags:                 tags,
		Website:              r.Website.String,
		Image:                r.Image,
		ContactName:          r.ContactName,
		ContactEmail:         r.ContactEmail,
		ContactPhone:         r.ContactPhone,
		IsVerified:           r.IsVerified,
		Status:               models.Status(r.Status),
		CreatedAt:            r.CreatedAt,
	}
}

func toModels(rows []hackathonRow) []models.Hackathon {
	out := make([]models.Hackathon, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out
}

// CreateHackathon сохраняет новый хакатон, id и created_at проставляются здесь
func (s *Storage) CreateHackathon(ctx context.Context, h *models.Hackathon) error {
	h.ID = uuid.NewString()
	if h.Status == "" {
		h.Status = models.StatusPending
	}
	query := `
        INSERT INTO hackathon
            (id, title, college, state, district, start_date, end_date, registration_deadline,
             description, eligibility, prizes, team_min, team_max, tags, website, image,
             contact_name, contact_email, contact_phone, is_verified, status)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
        RETURNING created_at`
	err := s.db.QueryRowContext(ctx, query,
		h.ID, h.Title, h.College, h.State, h.District, h.StartDate, h.EndDate, h.RegistrationDeadline,
		h.Description, h.Eligibility, h.Prizes, h.TeamSize.Min, h.TeamSize.Max, pq.Array(h.Tags),
		nullString(h.Website), h.Image, h.ContactName, h.ContactEmail, h.ContactPhone,
		h.IsVerified, string(h.Status)).
		Scan(&h.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert hackathon: %w", err)
	}
	return nil
}

// GetHackathon возвращает хакатон по id независимо от статуса
func (s *Storage) GetHackathon(ctx context.Context, id string) (*models.Hackathon, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrNotFound
	}
	var row hackathonRow
	query := `SELECT ` + hackathonColumns + ` FROM hackathon WHERE id=$1`
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get hackathon: %w", err)
	}
	h := row.toModel()
	return &h, nil
}

// GetPublicHackathons - проверенные хакатоны в статусах upcoming/ongoing/completed
func (s *Storage) GetPublicHackathons(ctx context.Context) ([]models.Hackathon, error) {
	query := `SELECT ` + hackathonColumns + ` FROM hackathon
        WHERE is_verified = TRUE AND status IN ('upcoming', 'ongoing', 'completed')
        ORDER BY start_date ASC, created_at ASC`
	rows := []hackathonRow{}
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select public hackathons: %w", err)
	}
	return toModels(rows), nil
}

// GetHackathonsByStatus возвращает все хакатоны с указанным статусом
func (s *Storage) GetHackathonsByStatus(ctx context.Context, status models.Status) ([]models.Hackathon, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown hackathon status %q", status)
	}
	query := `SELECT ` + hackathonColumns + ` FROM hackathon
        WHERE status = $1
        ORDER BY created_at ASC`
	rows := []hackathonRow{}
	if err := s.db.SelectContext(ctx, &rows, query, string(status)); err != nil {
		return nil, fmt.Errorf("select hackathons by status: %w", err)
	}
	return toModels(rows), nil
}

// UpdateModeration переводит хакатон из статуса from в статус to.
// Обновление условное: если текущий статус не from, возвращается
// ErrInvalidTransition, если хакатона нет - ErrNotFound.
func (s *Storage) UpdateModeration(ctx context.Context, id string, from, to models.Status, verified bool) (*models.Hackathon, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrNotFound
	}
	var row hackathonRow
	query := `
        UPDATE hackathon
        SET status = $1, is_verified = $2
        WHERE id = $3 AND status = $4
        RETURNING ` + hackathonColumns
	err := s.db.GetContext(ctx, &row, query, string(to), verified, id, string(from))
	if err == nil {
		h := row.toModel()
		return &h, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update hackathon status: %w", err)
	}

	// Строка не обновилась: различаем отсутствие и неверный исходный статус
	if _, err := s.GetHackathon(ctx, id); err != nil {
		return nil, err
	}
	return nil, models.ErrInvalidTransition
}

// AdvanceToOngoing: upcoming -> ongoing для начавшихся проверенных хакатонов
func (s *Storage) AdvanceToOngoing(ctx context.Context, now time.Time) (int64, error) {
	query := `
        UPDATE hackathon
        SET status = 'ongoing'
        WHERE status = 'upcoming' AND start_date <= $1 AND is_verified = TRUE`
	res, err := s.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("advance to ongoing: %w", err)
	}
	return res.RowsAffected()
}

// AdvanceToCompleted: ongoing -> completed для завершившихся проверенных хакатонов
func (s *Storage) AdvanceToCompleted(ctx context.Context, now time.Time) (int64, error) {
	query := `
        UPDATE hackathon
        SET status = 'completed'
        WHERE status = 'ongoing' AND end_date < $1 AND is_verified = TRUE`
	res, err := s.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("advance to completed: %w", err)
	}
	return res.RowsAffected()
}

// GetPublicColleges - уникальные колледжи публичных хакатонов
func (s *Storage) GetPublicColleges(ctx context.Context) ([]string, error) {
	query := `
        SELECT DISTINCT college FROM hackathon
        WHERE is_verified = TRUE AND status IN ('upcoming', 'ongoing', 'completed')
        ORDER BY college ASC`
	colleges := []string{}
	if err := s.db.SelectContext(ctx, &colleges, query); err != nil {
		return nil, fmt.Errorf("select colleges: %w", err)
	}
	return colleges, nil
}

// GetPublicTags - уникальные теги публичных хакатонов
func (s *Storage) GetPublicTags(ctx context.Context) ([]string, error) {
	query := `
        SELECT DISTINCT unnest(tags) AS tag FROM hackathon
        WHERE is_verified = TRUE AND status IN ('upcoming', 'ongoing', 'completed')
        ORDER BY tag ASC`
	tags := []string{}
	if err := s.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, fmt.Errorf("select tags: %w", err)
	}
	return tags, nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
