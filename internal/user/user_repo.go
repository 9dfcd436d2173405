package user

import (
	"context"
	"database/sql"

	"go-commission/internal/shared/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter ListUsersFilter) ([]User, error)
	Update(ctx context.Context, u *User) error
	ReplaceRoles(ctx context.Context, userID uuid.UUID, roles []string) error
	ReplaceTeams(ctx context.Context, userID uuid.UUID, teamIDs []uuid.UUID) error

	CreateTeam(ctx context.Context, t *Team) error
	FindTeamByID(ctx context.Context, id uuid.UUID) (*Team, error)
	FindAllTeams(ctx context.Context) ([]Team, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
	TeamIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: database.BindTx(r.db, tx)}
}

// Create inserts the user together with its Roles and Memberships.
func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Preload("Memberships").
		First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		First(&u, "LOWER(email) = LOWER(?)", email).Error
	return &u, err
}

func (r *repository) FindAll(ctx context.Context, filter ListUsersFilter) ([]User, error) {
	q := r.db.WithContext(ctx).
		Preload("Roles").
		Preload("Memberships")
	if filter.Role != "" {
		q = q.Where("id IN (?)", r.db.Model(&UserRole{}).Select("user_id").Where("role = ?", filter.Role))
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var users []User
	err := q.Order("name ASC").Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":       u.Name,
			"password":   u.Password,
			"is_active":  u.IsActive,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}

func (r *repository) ReplaceRoles(ctx context.Context, userID uuid.UUID, roles []string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&UserRole{}).Error; err != nil {
		return err
	}
	if len(roles) == 0 {
		return nil
	}
	rows := make([]UserRole, 0, len(roles))
	for _, role := range roles {
		rows = append(rows, UserRole{UserID: userID, Role: role})
	}
	return db.Create(&rows).Error
}

func (r *repository) ReplaceTeams(ctx context.Context, userID uuid.UUID, teamIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&TeamMember{}).Error; err != nil {
		return err
	}
	if len(teamIDs) == 0 {
		return nil
	}
	rows := make([]TeamMember, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		rows = append(rows, TeamMember{TeamID: teamID, UserID: userID})
	}
	return db.Create(&rows).Error
}

func (r *repository) CreateTeam(ctx context.Context, t *Team) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindTeamByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	var t Team
	err := r.db.WithContext(ctx).
		Preload("Members.User").
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindAllTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	err := r.db.WithContext(ctx).
		Preload("Members.User").
		Order("name ASC").
		Find(&teams).Error
	return teams, err
}

func (r *repository) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&TeamMember{TeamID: teamID, UserID: userID}).Error
}

func (r *repository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&TeamMember{}).Error
}

func (r *repository) TeamIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&TeamMember{}).
		Where("user_id = ?", userID).
		Pluck("team_id", &ids).Error
	return ids, err
}
