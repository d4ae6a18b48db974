package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// ModerationStatus 菜谱审核状态
type ModerationStatus string

const (
	StatusInProcess ModerationStatus = "in_process"
	StatusApproved  ModerationStatus = "approved"
	StatusRejected  ModerationStatus = "rejected"
)

// ParseModerationStatus 仅接受三种合法取值
func ParseModerationStatus(s string) (ModerationStatus, bool) {
	switch ModerationStatus(s) {
	case StatusInProcess, StatusApproved, StatusRejected:
		return ModerationStatus(s), true
	}
	return "", false
}

var (
	ErrTransitionForbidden = errors.New("only staff can moderate recipes")
	ErrInvalidTransition   = errors.New("status must be one of: approved, rejected")
)

// Transition 审核状态迁移，仅 staff 可执行，目标只能是 approved 或 rejected，任意当前状态均可迁移
func (s ModerationStatus) Transition(target ModerationStatus, staff bool) (ModerationStatus, error) {
	if !staff {
		return s, ErrTransitionForbidden
	}
	if target != StatusApproved && target != StatusRejected {
		return s, ErrInvalidTransition
	}
	return target, nil
}

func (s ModerationStatus) String() string {
	return string(s)
}

// Visible 非 staff 只能看到已通过的菜谱
func (s ModerationStatus) Visible(staff bool) bool {
	return staff || s == StatusApproved
}

// VisibleStatuses 返回调用者可见的状态集合，nil 表示不限制
func VisibleStatuses(staff bool) []ModerationStatus {
	if staff {
		return nil
	}
	return []ModerationStatus{StatusApproved}
}

func (s ModerationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *ModerationStatus) Scan(value any) error {
	switch v := value.(type) {
	case string:
		*s = ModerationStatus(v)
	case []byte:
		*s = ModerationStatus(v)
	case nil:
		*s = ""
	default:
		return fmt.Errorf("unsupported moderation status type %T", value)
	}
	return nil
}
