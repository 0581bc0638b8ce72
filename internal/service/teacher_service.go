package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/model"
	"sms-portal/backend/internal/repository"
	pkgerrors "sms-portal/backend/pkg/errors"
)

// ── 教师模块业务错误 ──

var (
	ErrEmployeeIDExists     = errors.New("工号已存在")
	ErrProfileNotFound      = errors.New("档案不存在")
	ErrProfileRoleMismatch  = errors.New("档案角色与实体类型不匹配")
	ErrProfileAlreadyBound  = errors.New("档案已绑定其他实体")
	ErrTeacherSubjectExists = errors.New("该授课安排已存在")
)

// TeacherService 教师业务接口
type TeacherService interface {
	Create(ctx context.Context, callerID string, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, callerID, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context, callerID string) ([]dto.TeacherResponse, error)
	Update(ctx context.Context, callerID, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, callerID, id string) error
	AddSubject(ctx context.Context, callerID, teacherID string, req *dto.AddTeacherSubjectRequest) (*dto.TeacherSubjectResponse, error)
	ListSubjects(ctx context.Context, callerID, teacherID string) ([]dto.TeacherSubjectResponse, error)
	RemoveSubject(ctx context.Context, callerID, teacherID, subjectID, courseID string) error
}

type teacherService struct {
	repo   *repository.Repository
	authz  AuthzService
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, authz AuthzService, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, authz: authz, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 创建教师
// 档案角色必须已是 teacher（不变式：档案角色与实体类型一致）。
func (s *teacherService) Create(ctx context.Context, callerID string, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityTeacher, ActionCreate, ""); err != nil {
		return nil, err
	}

	profile, err := s.repo.Profile.GetByID(ctx, req.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if profile.Role != model.RoleTeacher {
		return nil, ErrProfileRoleMismatch
	}

	teacher := &model.Teacher{
		ProfileID:      req.ProfileID,
		EmployeeID:     req.EmployeeID,
		Qualification:  req.Qualification,
		Specialization: req.Specialization,
		Department:     req.Department,
	}
	if req.JoiningDate != "" {
		d, err := time.Parse("2006-01-02", req.JoiningDate)
		if err == nil {
			teacher.JoiningDate = &d
		}
	}

	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		if pkgerrors.IsDuplicate(err) {
			// profile_id 与 employee_id 均有唯一索引
			if existing, gerr := s.repo.Teacher.GetByEmployeeID(ctx, req.EmployeeID); gerr == nil && existing != nil {
				return nil, ErrEmployeeIDExists
			}
			return nil, ErrProfileAlreadyBound
		}
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}

	return toTeacherResponse(teacher), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *teacherService) GetByID(ctx context.Context, callerID, id string) (*dto.TeacherResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityTeacher, ActionView, id); err != nil {
		return nil, err
	}

	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTeacherResponse(teacher), nil
}

// ────────────────────── List ──────────────────────

func (s *teacherService) List(ctx context.Context, callerID string) ([]dto.TeacherResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityTeacher, ActionList, ""); err != nil {
		return nil, err
	}

	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, *toTeacherResponse(&teachers[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *teacherService) Update(ctx context.Context, callerID, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityTeacher, ActionUpdate, id); err != nil {
		return nil, err
	}

	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	if req.Qualification != nil {
		teacher.Qualification = *req.Qualification
	}
	if req.Specialization != nil {
		teacher.Specialization = *req.Specialization
	}
	if req.Department != nil {
		teacher.Department = *req.Department
	}

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		s.logger.Error("更新教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTeacherResponse(teacher), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除教师
// courses.class_teacher_id 外键为 SET NULL：其班主任课程自动解绑。
func (s *teacherService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.authz.Authorize(ctx, callerID, EntityTeacher, ActionDelete, id); err != nil {
		return err
	}

	if _, err := s.repo.Teacher.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}

	if err := s.repo.Teacher.Delete(ctx, id); err != nil {
		s.logger.Error("删除教师失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 授课安排 ──────────────────────

func (s *teacherService) AddSubject(ctx context.Context, callerID, teacherID string, req *dto.AddTeacherSubjectRequest) (*dto.TeacherSubjectResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityTeacher, ActionCreate, ""); err != nil {
		return nil, err
	}

	if _, err := s.repo.Teacher.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	subject, err := s.repo.Subject.GetByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	course, err := s.repo.Course.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	ts := &model.TeacherSubject{
		TeacherID: teacherID,
		SubjectID: req.SubjectID,
		CourseID:  req.CourseID,
	}
	if err := s.repo.Teacher.AddSubject(ctx, ts); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrTeacherSubjectExists
		}
		s.logger.Error("新增授课安排失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}

	return &dto.TeacherSubjectResponse{
		ID:          ts.TeacherSubjectID,
		SubjectID:   subject.SubjectID,
		SubjectName: subject.Name,
		CourseID:    course.CourseID,
		CourseName:  course.Name,
	}, nil
}

func (s *teacherService) ListSubjects(ctx context.Context, callerID, teacherID string) ([]dto.TeacherSubjectResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityTeacher, ActionView, teacherID); err != nil {
		return nil, err
	}

	list, err := s.repo.Teacher.ListSubjects(ctx, teacherID)
	if err != nil {
		s.logger.Error("列出授课安排失败", zap.String("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeacherSubjectResponse, 0, len(list))
	for i := range list {
		item := dto.TeacherSubjectResponse{
			ID:        list[i].TeacherSubjectID,
			SubjectID: list[i].SubjectID,
			CourseID:  list[i].CourseID,
		}
		if list[i].Subject != nil {
			item.SubjectName = list[i].Subject.Name
		}
		if list[i].Course != nil {
			item.CourseName = list[i].Course.Name
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *teacherService) RemoveSubject(ctx context.Context, callerID, teacherID, subjectID, courseID string) error {
	if err := s.authz.Authorize(ctx, callerID, EntityTeacher, ActionDelete, teacherID); err != nil {
		return err
	}
	return s.repo.Teacher.RemoveSubject(ctx, teacherID, subjectID, courseID)
}

// ── 内部辅助方法 ──

func toTeacherResponse(teacher *model.Teacher) *dto.TeacherResponse {
	resp := &dto.TeacherResponse{
		ID:             teacher.TeacherID,
		ProfileID:      teacher.ProfileID,
		EmployeeID:     teacher.EmployeeID,
		Qualification:  teacher.Qualification,
		Specialization: teacher.Specialization,
		Department:     teacher.Department,
		CreatedAt:      teacher.CreatedAt.Format(time.RFC3339),
	}
	if teacher.JoiningDate != nil {
		resp.JoiningDate = teacher.JoiningDate.Format("2006-01-02")
	}
	if teacher.Profile != nil && teacher.Profile.User != nil {
		resp.Username = teacher.Profile.User.Username
	}
	return resp
}
