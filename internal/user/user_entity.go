package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	Name        string       `gorm:"column:name;type:varchar(255);not null"`
	Email       string       `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password    string       `gorm:"column:password;type:text;not null"`
	IsActive    bool         `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;autoUpdateTime"`
	Roles       []UserRole   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Memberships []TeamMember `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type UserRole struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	Role   string    `gorm:"column:role;type:varchar(20);primaryKey"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

type Team struct {
	ID        uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	Name      string       `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uq_teams_name"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time    `gorm:"column:updated_at;autoUpdateTime"`
	Members   []TeamMember `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

type TeamMember struct {
	TeamID    uuid.UUID `gorm:"column:team_id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	User      *User     `gorm:"foreignKey:UserID"`
}

func (TeamMember) TableName() string {
	return "team_members"
}

func (u User) RoleNames() []string {
	out := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		out = append(out, r.Role)
	}
	return out
}

func (u User) TeamIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(u.Memberships))
	for _, m := range u.Memberships {
		out = append(out, m.TeamID)
	}
	return out
}
