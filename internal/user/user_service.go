package user

import (
	"context"
	"database/sql"
	"strings"

	"go-commission/internal/access"
	"go-commission/internal/shared/contextutil"
	"go-commission/internal/shared/database"
	usererrors "go-commission/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context, filter ListUsersFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	ResetPassword(ctx context.Context, id, newPassword string) error

	CreateTeam(ctx context.Context, req CreateTeamRequest) (TeamResponse, error)
	GetTeams(ctx context.Context) ([]TeamResponse, error)
	AddMember(ctx context.Context, teamID, userID string) (TeamResponse, error)
	RemoveMember(ctx context.Context, teamID, userID string) (TeamResponse, error)
	TeamIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := s.log(ctx)
	l.Info("creating user", zap.String("email", req.Email), zap.Strings("roles", req.Roles))

	roles, err := access.ParseRoles(req.Roles)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	teamIDs, err := parseUUIDs(req.TeamIDs, usererrors.ErrInvalidTeamID)
	if err != nil {
		return UserResponse{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashedPassword),
		IsActive: true,
	}
	for _, r := range roles {
		u.Roles = append(u.Roles, UserRole{UserID: u.ID, Role: string(r)})
	}
	for _, teamID := range teamIDs {
		u.Memberships = append(u.Memberships, TeamMember{TeamID: teamID, UserID: u.ID})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	for _, teamID := range teamIDs {
		if _, err := qtx.FindTeamByID(ctx, teamID); err != nil {
			return UserResponse{}, mapRepositoryError(err, usererrors.ErrTeamNotFound)
		}
	}

	if err := qtx.Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err, usererrors.ErrUserNotFound)
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	l.Info("user created", zap.String("user_id", u.ID.String()))
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context, filter ListUsersFilter) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.log(ctx).Error("failed to list users", zap.Error(err))
		return nil, err
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, mapToResponse(u))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err, usererrors.ErrUserNotFound)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	l := s.log(ctx)
	userID, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	var roles access.RoleSet
	if req.Roles != nil {
		roles, err = access.ParseRoles(*req.Roles)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidRole
		}
	}
	var teamIDs []uuid.UUID
	if req.TeamIDs != nil {
		teamIDs, err = parseUUIDs(*req.TeamIDs, usererrors.ErrInvalidTeamID)
		if err != nil {
			return UserResponse{}, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	u, err := qtx.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err, usererrors.ErrUserNotFound)
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if err := qtx.Update(ctx, u); err != nil {
		l.Error("failed to update user", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	if req.Roles != nil {
		if err := qtx.ReplaceRoles(ctx, userID, roles.Strings()); err != nil {
			return UserResponse{}, err
		}
	}
	if req.TeamIDs != nil {
		for _, teamID := range teamIDs {
			if _, err := qtx.FindTeamByID(ctx, teamID); err != nil {
				return UserResponse{}, mapRepositoryError(err, usererrors.ErrTeamNotFound)
			}
		}
		if err := qtx.ReplaceTeams(ctx, userID, teamIDs); err != nil {
			return UserResponse{}, err
		}
	}

	updated, err := qtx.FindByID(ctx, userID)
	if err != nil {
		return UserResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	l.Info("user updated", zap.String("user_id", id))
	return mapToResponse(*updated), nil
}

func (s *service) ResetPassword(ctx context.Context, id, newPassword string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return mapRepositoryError(err, usererrors.ErrUserNotFound)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.Password = string(hashed)
	return s.repo.Update(ctx, u)
}

func (s *service) CreateTeam(ctx context.Context, req CreateTeamRequest) (TeamResponse, error) {
	memberIDs, err := parseUUIDs(req.MemberIDs, usererrors.ErrInvalidUserID)
	if err != nil {
		return TeamResponse{}, err
	}

	team := &Team{ID: uuid.New(), Name: strings.TrimSpace(req.Name)}
	for _, userID := range memberIDs {
		team.Members = append(team.Members, TeamMember{TeamID: team.ID, UserID: userID})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	for _, userID := range memberIDs {
		if _, err := qtx.FindByID(ctx, userID); err != nil {
			return TeamResponse{}, mapRepositoryError(err, usererrors.ErrUserNotFound)
		}
	}
	if err := qtx.CreateTeam(ctx, team); err != nil {
		return TeamResponse{}, mapRepositoryError(err, usererrors.ErrTeamNotFound)
	}

	created, err := qtx.FindTeamByID(ctx, team.ID)
	if err != nil {
		return TeamResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TeamResponse{}, err
	}

	s.log(ctx).Info("team created", zap.String("team_id", team.ID.String()), zap.Int("members", len(memberIDs)))
	return mapTeamToResponse(*created), nil
}

func (s *service) GetTeams(ctx context.Context) ([]TeamResponse, error) {
	teams, err := s.repo.FindAllTeams(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		resp = append(resp, mapTeamToResponse(t))
	}
	return resp, nil
}

func (s *service) AddMember(ctx context.Context, teamID, userID string) (TeamResponse, error) {
	return s.changeMembership(ctx, teamID, userID, true)
}

func (s *service) RemoveMember(ctx context.Context, teamID, userID string) (TeamResponse, error) {
	return s.changeMembership(ctx, teamID, userID, false)
}

func (s *service) changeMembership(ctx context.Context, teamID, userID string, add bool) (TeamResponse, error) {
	tid, err := uuid.Parse(teamID)
	if err != nil {
		return TeamResponse{}, usererrors.ErrInvalidTeamID
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return TeamResponse{}, usererrors.ErrInvalidUserID
	}

	if _, err := s.repo.FindTeamByID(ctx, tid); err != nil {
		return TeamResponse{}, mapRepositoryError(err, usererrors.ErrTeamNotFound)
	}
	if _, err := s.repo.FindByID(ctx, uid); err != nil {
		return TeamResponse{}, mapRepositoryError(err, usererrors.ErrUserNotFound)
	}

	if add {
		err = s.repo.AddMember(ctx, tid, uid)
	} else {
		err = s.repo.RemoveMember(ctx, tid, uid)
	}
	if err != nil {
		s.log(ctx).Error("change team membership failed",
			zap.String("team_id", teamID),
			zap.String("user_id", userID),
			zap.Bool("add", add),
			zap.Error(err),
		)
		return TeamResponse{}, err
	}

	team, err := s.repo.FindTeamByID(ctx, tid)
	if err != nil {
		return TeamResponse{}, err
	}
	return mapTeamToResponse(*team), nil
}

func (s *service) TeamIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.TeamIDsForUser(ctx, userID)
}

func parseUUIDs(values []string, invalid error) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(values))
	seen := make(map[uuid.UUID]bool, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, invalid
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func mapRepositoryError(err error, notFound error) error {
	switch {
	case database.IsNotFound(err):
		return notFound
	case database.IsUniqueViolation(err, "uq_users_email", "users.email"):
		return usererrors.ErrUserAlreadyExists
	case database.IsUniqueViolation(err, "uq_teams_name", "teams.name"):
		return usererrors.ErrTeamAlreadyExists
	default:
		return err
	}
}
