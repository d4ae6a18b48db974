package consts

const (
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
	RoleUser      = "USER"
)

const (
	ContextUserID = "user_id"
	ContextRoles  = "roles"
	ContextStaff  = "is_staff"
	ContextBase   = "base_url"
	ContextToken  = "token"
)

const (
	RecipePageSize      = 10
	RecipeMaxPageSize   = 100
	CategoryPageSize    = 5
	CategoryMaxPageSize = 30
	BestRecipesLimit    = 4
)

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
)

// IsStaff 角色列表中包含管理员或审核员即视为 staff
func IsStaff(roles []string) bool {
	for _, r := range roles {
		if r == RoleAdmin || r == RoleModerator {
			return true
		}
	}
	return false
}
