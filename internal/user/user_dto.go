package user

type CreateUserRequest struct {
	Name     string   `json:"name" binding:"required,max=255"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Roles    []string `json:"roles" binding:"required,min=1,dive,oneof=admin manager finance lawyer seller"`
	TeamIDs  []string `json:"team_ids" binding:"omitempty,dive,uuid"`
}

type UpdateUserRequest struct {
	Name     *string   `json:"name" binding:"omitempty,max=255"`
	IsActive *bool     `json:"is_active"`
	Roles    *[]string `json:"roles" binding:"omitempty,min=1,dive,oneof=admin manager finance lawyer seller"`
	TeamIDs  *[]string `json:"team_ids" binding:"omitempty,dive,uuid"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type ListUsersFilter struct {
	Role       string `form:"role" binding:"omitempty,oneof=admin manager finance lawyer seller"`
	ActiveOnly bool   `form:"active_only"`
}

type UserResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	IsActive  bool     `json:"is_active"`
	Roles     []string `json:"roles"`
	TeamIDs   []string `json:"team_ids"`
	CreatedAt string   `json:"created_at"`
}

type CreateTeamRequest struct {
	Name      string   `json:"name" binding:"required,max=100"`
	MemberIDs []string `json:"member_ids" binding:"omitempty,dive,uuid"`
}

type TeamMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type TeamMemberResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type TeamResponse struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Members []TeamMemberResponse `json:"members"`
}

func mapToResponse(u User) UserResponse {
	teamIDs := make([]string, 0, len(u.Memberships))
	for _, id := range u.TeamIDs() {
		teamIDs = append(teamIDs, id.String())
	}
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		IsActive:  u.IsActive,
		Roles:     u.RoleNames(),
		TeamIDs:   teamIDs,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapTeamToResponse(t Team) TeamResponse {
	members := make([]TeamMemberResponse, 0, len(t.Members))
	for _, m := range t.Members {
		member := TeamMemberResponse{UserID: m.UserID.String()}
		if m.User != nil {
			member.Name = m.User.Name
		}
		members = append(members, member)
	}
	return TeamResponse{ID: t.ID.String(), Name: t.Name, Members: members}
}
