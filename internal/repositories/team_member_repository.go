package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/models"
)

type TeamMemberRepository interface {
	Create(ctx context.Context, m *models.TeamMember) error
	GetByProfileAndEmail(ctx context.Context, profileID uuid.UUID, email string) (*models.TeamMember, error)
	ListByProfileID(ctx context.Context, profileID uuid.UUID) ([]*models.TeamMember, error)
}

type teamMemberRepo struct {
	db DB
}

func NewTeamMemberRepository(db DB) TeamMemberRepository {
	return &teamMemberRepo{db: db}
}

func (r *teamMemberRepo) Create(ctx context.Context, m *models.TeamMember) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO team_members (
            id, profile_id, email, role, status, invited_at
        ) VALUES ($1,$2,$3,$4,$5, NOW())
    `, m.ID, m.ProfileID, m.Email, m.Role, m.Status)
	return err
}

func (r *teamMemberRepo) GetByProfileAndEmail(ctx context.Context, profileID uuid.UUID, email string) (*models.TeamMember, error) {
	row := r.db.QueryRow(ctx, baseSelectTeamMember()+
		" WHERE profile_id=$1 AND LOWER(email)=LOWER($2)", profileID, email)
	return scanTeamMember(row)
}

func (r *teamMemberRepo) ListByProfileID(ctx context.Context, profileID uuid.UUID) ([]*models.TeamMember, error) {
	rows, err := r.db.Query(ctx, baseSelectTeamMember()+
		" WHERE profile_id=$1 ORDER BY invited_at", profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func baseSelectTeamMember() string {
	return `
        SELECT id, profile_id, email, role, status, invited_at, accepted_at
        FROM team_members
    `
}

func scanTeamMember(row pgx.Row) (*models.TeamMember, error) {
	var m models.TeamMember
	err := row.Scan(
		&m.ID,
		&m.ProfileID,
		&m.Email,
		&m.Role,
		&m.Status,
		&m.InvitedAt,
		&m.AcceptedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
