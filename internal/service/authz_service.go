package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sms-portal/backend/internal/model"
	"sms-portal/backend/internal/repository"
)

// ── 权限引擎 ──
//
// 所有角色规则收敛到这一张能力表，CRUD 服务在触达仓储前先询问引擎。
// 拒绝优先：访问者档案缺失、归属行缺失、目标解析失败一律 DENY，绝不抛错放行。

// ErrNotAuthorized 权限拒绝
var ErrNotAuthorized = errors.New("无权执行该操作")

// Entity 受控实体
type Entity string

const (
	EntityCourse     Entity = "course"
	EntitySubject    Entity = "subject"
	EntityTeacher    Entity = "teacher"
	EntityStudent    Entity = "student"
	EntityParent     Entity = "parent"
	EntityAttendance Entity = "attendance"
	EntityAssignment Entity = "assignment"
	EntityExam       Entity = "exam"
	EntityResult     Entity = "result"
	EntityTimetable  Entity = "timetable"
)

// Action 受控动作
type Action string

const (
	ActionList   Action = "list"
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// AuthzService 权限引擎接口
type AuthzService interface {
	// Authorize 判定访问者能否对目标执行动作；nil 为允许，ErrNotAuthorized 为拒绝。
	// targetID 仅在 view/update 的 owner 规则中参与判定，其余动作可传空串。
	Authorize(ctx context.Context, actorUserID string, entity Entity, action Action, targetID string) error
	// StudentListScope 计算访问者的学生列表行过滤器
	StudentListScope(ctx context.Context, actorUserID string) (*repository.StudentScope, error)
	// ActorRole 解析访问者角色（档案缺失返回 ErrNotAuthorized）
	ActorRole(ctx context.Context, actorUserID string) (model.Role, *model.Profile, error)
}

type authzService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuthzService 创建 AuthzService 实例
func NewAuthzService(repo *repository.Repository, logger *zap.Logger) AuthzService {
	return &authzService{repo: repo, logger: logger}
}

// ActorRole 解析访问者档案与角色
func (s *authzService) ActorRole(ctx context.Context, actorUserID string) (model.Role, *model.Profile, error) {
	if actorUserID == "" {
		return "", nil, ErrNotAuthorized
	}
	profile, err := s.repo.Profile.GetByUserID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrNotAuthorized
		}
		s.logger.Error("解析访问者档案失败", zap.String("user_id", actorUserID), zap.Error(err))
		// 查询故障同样按拒绝处理，不向上层暴露存储错误
		return "", nil, ErrNotAuthorized
	}
	if !profile.Role.Valid() {
		return "", nil, ErrNotAuthorized
	}
	return profile.Role, profile, nil
}

// ────────────────────── Authorize ──────────────────────

func (s *authzService) Authorize(ctx context.Context, actorUserID string, entity Entity, action Action, targetID string) error {
	role, profile, err := s.ActorRole(ctx, actorUserID)
	if err != nil {
		return ErrNotAuthorized
	}

	// 管理员最先短路，覆盖其余所有规则
	if role == model.RoleAdmin {
		return nil
	}

	switch entity {
	case EntityTeacher:
		return s.authorizeTeacher(ctx, role, profile, action, targetID)
	case EntityStudent:
		return s.authorizeStudent(ctx, role, profile, action, targetID)
	default:
		// Course / Subject / Parent / Attendance / Assignment / Exam / Result / Timetable
		// 非管理员一律拒绝
		return ErrNotAuthorized
	}
}

// authorizeTeacher 教师实体规则：
// list 教师角色可见全部；view/update 本人或管理员；create/delete 仅管理员。
func (s *authzService) authorizeTeacher(ctx context.Context, role model.Role, profile *model.Profile, action Action, targetID string) error {
	switch action {
	case ActionList:
		if role == model.RoleTeacher {
			return nil
		}
		return ErrNotAuthorized
	case ActionView, ActionUpdate:
		if role != model.RoleTeacher {
			return ErrNotAuthorized
		}
		target, err := s.repo.Teacher.GetByID(ctx, targetID)
		if err != nil {
			return ErrNotAuthorized
		}
		if target.ProfileID == profile.ProfileID {
			return nil
		}
		return ErrNotAuthorized
	default:
		return ErrNotAuthorized
	}
}

// authorizeStudent 学生实体规则：
// view 教师放行，学生本人、家长自己的孩子放行；
// update 仅本人（管理员已短路）；list 经 StudentListScope 行过滤；create/delete 仅管理员。
func (s *authzService) authorizeStudent(ctx context.Context, role model.Role, profile *model.Profile, action Action, targetID string) error {
	switch action {
	case ActionList:
		// 行级过滤由 StudentListScope 承担，这里放行已知角色
		switch role {
		case model.RoleTeacher, model.RoleStudent, model.RoleParent:
			return nil
		}
		return ErrNotAuthorized
	case ActionView:
		if role == model.RoleTeacher {
			return nil
		}
		return s.authorizeStudentOwner(ctx, role, profile, targetID)
	case ActionUpdate:
		return s.authorizeStudentOwner(ctx, role, profile, targetID)
	default:
		return ErrNotAuthorized
	}
}

// authorizeStudentOwner 学生 owner 规则：本人或孩子
func (s *authzService) authorizeStudentOwner(ctx context.Context, role model.Role, profile *model.Profile, targetID string) error {
	target, err := s.repo.Student.GetByID(ctx, targetID)
	if err != nil {
		return ErrNotAuthorized
	}

	switch role {
	case model.RoleStudent:
		if target.ProfileID == profile.ProfileID {
			return nil
		}
	case model.RoleParent:
		parent, err := s.repo.Parent.GetByProfileID(ctx, profile.ProfileID)
		if err != nil {
			return ErrNotAuthorized
		}
		if target.ParentID != nil && *target.ParentID == parent.ParentID {
			return nil
		}
	}
	return ErrNotAuthorized
}

// ────────────────────── StudentListScope ──────────────────────

func (s *authzService) StudentListScope(ctx context.Context, actorUserID string) (*repository.StudentScope, error) {
	role, profile, err := s.ActorRole(ctx, actorUserID)
	if err != nil {
		// 无法解析访问者：空集，而不是报错
		return &repository.StudentScope{}, nil
	}

	switch role {
	case model.RoleAdmin:
		return &repository.StudentScope{All: true}, nil
	case model.RoleTeacher:
		teacher, err := s.repo.Teacher.GetByProfileID(ctx, profile.ProfileID)
		if err != nil {
			return &repository.StudentScope{}, nil
		}
		return &repository.StudentScope{ClassTeacherID: teacher.TeacherID}, nil
	case model.RoleStudent:
		student, err := s.repo.Student.GetByProfileID(ctx, profile.ProfileID)
		if err != nil {
			return &repository.StudentScope{}, nil
		}
		return &repository.StudentScope{StudentID: student.StudentID}, nil
	case model.RoleParent:
		parent, err := s.repo.Parent.GetByProfileID(ctx, profile.ProfileID)
		if err != nil {
			return &repository.StudentScope{}, nil
		}
		return &repository.StudentScope{ParentID: parent.ParentID}, nil
	default:
		return &repository.StudentScope{}, nil
	}
}
