package access

type EnforceRequest struct {
	Roles    []string `json:"-"`
	Resource string   `json:"resource" binding:"required"`
	Action   string   `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionResponse struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
