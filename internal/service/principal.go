package service

// Principal 当前调用者，UserID 为 0 表示匿名
type Principal struct {
	UserID uint64
	Staff  bool
}

func (p Principal) Authenticated() bool {
	return p.UserID != 0
}

// CanManage owner 或 staff 可修改资源
func (p Principal) CanManage(ownerID uint64) bool {
	return p.Staff || (p.Authenticated() && p.UserID == ownerID)
}
