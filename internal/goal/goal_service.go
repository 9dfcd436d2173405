package goal

import (
	"context"
	"database/sql"
	"time"

	"go-commission/internal/access"
	goalerrors "go-commission/internal/goal/errors"
	"go-commission/internal/shared/contextutil"
	"go-commission/internal/shared/database"
	"go-commission/internal/shared/dateutil"
	"go-commission/internal/shared/money"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Memberships resolves the teams a user belongs to.
type Memberships interface {
	TeamIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

//go:generate mockgen -source=goal_service.go -destination=mock/goal_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor access.Actor, req GoalRequest) (GoalResponse, error)
	GetAll(ctx context.Context, actor access.Actor) ([]GoalResponse, error)
	GetByID(ctx context.Context, actor access.Actor, id string) (GoalResponse, error)
	Update(ctx context.Context, actor access.Actor, id string, req GoalRequest) (GoalResponse, error)
	Delete(ctx context.Context, actor access.Actor, id string) error
	Progress(ctx context.Context, actor access.Actor) ([]ProgressResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	memberships Memberships
	loc         *time.Location
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, memberships Memberships, logger ...*zap.Logger) Service {
	l := zap.L().Named("goal.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("goal.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		memberships: memberships,
		loc:         dateutil.Location(),
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Create(ctx context.Context, actor access.Actor, req GoalRequest) (GoalResponse, error) {
	if !actor.Roles.CanManage() {
		return GoalResponse{}, goalerrors.ErrManageNotAllowed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GoalResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	g := &Goal{ID: uuid.New()}
	if err := s.applyWith(ctx, qtx, g, req); err != nil {
		return GoalResponse{}, err
	}
	if err := qtx.Create(ctx, g); err != nil {
		return GoalResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return GoalResponse{}, err
	}

	s.log(ctx).Info("sales goal created",
		zap.String("goal_id", g.ID.String()),
		zap.String("scope", string(g.Scope())),
	)
	return s.detail(ctx, g.ID)
}

func (s *service) GetAll(ctx context.Context, actor access.Actor) ([]GoalResponse, error) {
	goals, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	goals, err = s.visible(ctx, actor, goals)
	if err != nil {
		return nil, err
	}

	resp := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, mapToResponse(g))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, actor access.Actor, id string) (GoalResponse, error) {
	goalID, err := uuid.Parse(id)
	if err != nil {
		return GoalResponse{}, goalerrors.ErrInvalidGoalID
	}
	g, err := s.repo.FindByID(ctx, goalID)
	if err != nil {
		return GoalResponse{}, mapRepositoryError(err)
	}
	visible, err := s.visible(ctx, actor, []Goal{*g})
	if err != nil {
		return GoalResponse{}, err
	}
	if len(visible) == 0 {
		return GoalResponse{}, goalerrors.ErrGoalNotFound
	}
	return mapToResponse(*g), nil
}

func (s *service) Update(ctx context.Context, actor access.Actor, id string, req GoalRequest) (GoalResponse, error) {
	if !actor.Roles.CanManage() {
		return GoalResponse{}, goalerrors.ErrManageNotAllowed
	}
	goalID, err := uuid.Parse(id)
	if err != nil {
		return GoalResponse{}, goalerrors.ErrInvalidGoalID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GoalResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	g, err := qtx.FindByID(ctx, goalID)
	if err != nil {
		return GoalResponse{}, mapRepositoryError(err)
	}
	if err := s.applyWith(ctx, qtx, g, req); err != nil {
		return GoalResponse{}, err
	}
	if err := qtx.Update(ctx, g); err != nil {
		return GoalResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return GoalResponse{}, err
	}

	s.log(ctx).Info("sales goal updated", zap.String("goal_id", goalID.String()))
	return s.detail(ctx, goalID)
}

func (s *service) Delete(ctx context.Context, actor access.Actor, id string) error {
	if !actor.Roles.CanManage() {
		return goalerrors.ErrManageNotAllowed
	}
	goalID, err := uuid.Parse(id)
	if err != nil {
		return goalerrors.ErrInvalidGoalID
	}
	if err := s.repo.Delete(ctx, goalID); err != nil {
		return mapRepositoryError(err)
	}
	s.log(ctx).Info("sales goal deleted", zap.String("goal_id", goalID.String()))
	return nil
}

// Progress evaluates every goal active today in the business time zone
// that actor may follow. Nothing is cached; each call sums the sales again.
func (s *service) Progress(ctx context.Context, actor access.Actor) ([]ProgressResponse, error) {
	today := dateutil.OnDate(dateutil.Day(s.now(), s.loc), time.UTC)
	goals, err := s.repo.FindActive(ctx, today)
	if err != nil {
		return nil, err
	}
	goals, err = s.visible(ctx, actor, goals)
	if err != nil {
		return nil, err
	}

	resp := make([]ProgressResponse, 0, len(goals))
	for _, g := range goals {
		from, to := dateutil.Range(dateutil.OnDate(g.StartDate, s.loc), dateutil.OnDate(g.EndDate, s.loc), s.loc)
		progress, err := s.repo.SumProgress(ctx, ProgressQuery{
			SellerID: g.SellerID,
			TeamID:   g.TeamID,
			From:     from,
			To:       to,
		})
		if err != nil {
			return nil, err
		}
		progress = money.Round(progress)

		remaining := g.Target.Sub(progress)
		if remaining.IsNegative() {
			remaining = money.Zero
		}
		resp = append(resp, ProgressResponse{
			GoalResponse: mapToResponse(g),
			Progress:     money.Format(progress),
			Remaining:    money.Format(remaining),
			Percentage:   money.FloorPercent(progress, g.Target),
		})
	}
	return resp, nil
}

// visible keeps the goals actor may follow: staff see all, sellers their
// own, their teams' and company goals.
func (s *service) visible(ctx context.Context, actor access.Actor, goals []Goal) ([]Goal, error) {
	if actor.Roles.IsStaff() {
		return goals, nil
	}
	teamIDs, err := s.memberships.TeamIDsForUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	out := goals[:0:0]
	for _, g := range goals {
		if g.VisibleTo(actor.UserID, teamIDs) {
			out = append(out, g)
		}
	}
	return out, nil
}

// applyWith validates req and copies it onto g, checking referenced seller
// and team and the uniqueness of the period and scope.
func (s *service) applyWith(ctx context.Context, repo Repository, g *Goal, req GoalRequest) error {
	if req.SellerID != "" && req.TeamID != "" {
		return goalerrors.ErrSellerAndTeam
	}
	start, err := time.Parse(dateutil.Layout, req.StartDate)
	if err != nil {
		return goalerrors.ErrInvalidDate
	}
	end, err := time.Parse(dateutil.Layout, req.EndDate)
	if err != nil {
		return goalerrors.ErrInvalidDate
	}
	if start.After(end) {
		return goalerrors.ErrInvalidDateRange
	}
	if req.Target.IsNegative() {
		return goalerrors.ErrNegativeTarget
	}

	g.StartDate = start
	g.EndDate = end
	g.Target = money.Round(req.Target)
	g.SellerID = nil
	g.TeamID = nil
	g.Seller = nil
	g.Team = nil

	if req.SellerID != "" {
		id, err := uuid.Parse(req.SellerID)
		if err != nil {
			return goalerrors.ErrSellerNotFound
		}
		ok, err := repo.SellerExists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return goalerrors.ErrSellerNotFound
		}
		g.SellerID = &id
	}
	if req.TeamID != "" {
		id, err := uuid.Parse(req.TeamID)
		if err != nil {
			return goalerrors.ErrTeamNotFound
		}
		ok, err := repo.TeamExists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return goalerrors.ErrTeamNotFound
		}
		g.TeamID = &id
	}

	dup, err := repo.FindDuplicate(ctx, g)
	if err != nil {
		return err
	}
	if dup {
		return goalerrors.ErrGoalAlreadyExists
	}
	return nil
}

func (s *service) detail(ctx context.Context, id uuid.UUID) (GoalResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return GoalResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*g), nil
}

func mapRepositoryError(err error) error {
	switch {
	case database.IsNotFound(err):
		return goalerrors.ErrGoalNotFound
	case database.IsUniqueViolation(err, ScopeIndex),
		database.IsUniqueViolation(err, "uq_sales_goals_scope", "sales_goals.start_date"):
		return goalerrors.ErrGoalAlreadyExists
	default:
		return err
	}
}
