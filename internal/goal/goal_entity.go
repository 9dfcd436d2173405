package goal

import (
	"time"

	"go-commission/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Scope string

const (
	ScopeCompany Scope = "company"
	ScopeSeller  Scope = "seller"
	ScopeTeam    Scope = "team"
)

// Goal is a sales target over an inclusive date range, for one seller, one
// team or, with neither set, the whole company.
type Goal struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	StartDate time.Time       `gorm:"column:start_date;type:date;not null;uniqueIndex:uq_sales_goals_scope,priority:1"`
	EndDate   time.Time       `gorm:"column:end_date;type:date;not null;uniqueIndex:uq_sales_goals_scope,priority:2"`
	Target    decimal.Decimal `gorm:"column:target;type:decimal(18,2);not null"`
	SellerID  *uuid.UUID      `gorm:"column:seller_id;type:uuid;uniqueIndex:uq_sales_goals_scope,priority:3"`
	TeamID    *uuid.UUID      `gorm:"column:team_id;type:uuid;uniqueIndex:uq_sales_goals_scope,priority:4"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	Seller *user.User `gorm:"foreignKey:SellerID"`
	Team   *user.Team `gorm:"foreignKey:TeamID"`
}

func (Goal) TableName() string {
	return "sales_goals"
}

// ScopeIndex keys goals by period and scope with NULL scopes folded to the
// nil UUID, so two company goals over the same period collide.
const ScopeIndex = "uq_sales_goals_scope_key"

const createScopeIndex = `CREATE UNIQUE INDEX IF NOT EXISTS ` + ScopeIndex + ` ON sales_goals (
	start_date,
	end_date,
	COALESCE(seller_id, '00000000-0000-0000-0000-000000000000'),
	COALESCE(team_id, '00000000-0000-0000-0000-000000000000')
)`

// MigrateScopeIndex creates the expression index AutoMigrate cannot express.
func MigrateScopeIndex(db *gorm.DB) error {
	return db.Exec(createScopeIndex).Error
}

func (g *Goal) Scope() Scope {
	switch {
	case g.SellerID != nil:
		return ScopeSeller
	case g.TeamID != nil:
		return ScopeTeam
	default:
		return ScopeCompany
	}
}

func (g *Goal) Title() string {
	switch g.Scope() {
	case ScopeSeller:
		name := g.SellerID.String()
		if g.Seller != nil {
			name = g.Seller.Name
		}
		return "Individual goal (" + name + ")"
	case ScopeTeam:
		name := g.TeamID.String()
		if g.Team != nil {
			name = g.Team.Name
		}
		return "Team goal (" + name + ")"
	default:
		return "Company goal"
	}
}

// VisibleTo reports whether a seller belonging to teamIDs may follow g.
func (g *Goal) VisibleTo(sellerID uuid.UUID, teamIDs []uuid.UUID) bool {
	switch g.Scope() {
	case ScopeSeller:
		return *g.SellerID == sellerID
	case ScopeTeam:
		for _, id := range teamIDs {
			if id == *g.TeamID {
				return true
			}
		}
		return false
	default:
		return true
	}
}
