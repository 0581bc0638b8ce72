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

// ── 学生模块业务错误 ──

var (
	ErrStudentNotFound = errors.New("学生不存在")
	ErrStudentNoExists = errors.New("学号或学籍号已存在")
)

// StudentService 学生业务接口
type StudentService interface {
	Create(ctx context.Context, callerID string, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, callerID, id string) (*dto.StudentResponse, error)
	// List 行级过滤由权限引擎的 StudentListScope 决定
	List(ctx context.Context, callerID string, page *dto.PaginationRequest) ([]dto.StudentResponse, int64, error)
	Update(ctx context.Context, callerID, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	Delete(ctx context.Context, callerID, id string) error
}

type studentService struct {
	repo   *repository.Repository
	authz  AuthzService
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, authz AuthzService, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, authz: authz, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 创建学生
// 档案角色必须已是 student；课程必须存在；家长可选。
func (s *studentService) Create(ctx context.Context, callerID string, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityStudent, ActionCreate, ""); err != nil {
		return nil, err
	}

	profile, err := s.repo.Profile.GetByID(ctx, req.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if profile.Role != model.RoleStudent {
		return nil, ErrProfileRoleMismatch
	}

	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if req.ParentID != nil {
		if _, err := s.repo.Parent.GetByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
	}

	student := &model.Student{
		ProfileID:  req.ProfileID,
		StudentNo:  req.StudentNo,
		RollNumber: req.RollNumber,
		CourseID:   req.CourseID,
		Gender:     model.Gender(req.Gender),
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PinCode:    req.PinCode,
		ParentID:   req.ParentID,
		Status:     model.StudentActive,
	}
	if req.DateOfBirth != "" {
		if d, err := time.Parse("2006-01-02", req.DateOfBirth); err == nil {
			student.DateOfBirth = &d
		}
	}
	if req.AdmissionDate != "" {
		if d, err := time.Parse("2006-01-02", req.AdmissionDate); err == nil {
			student.AdmissionDate = &d
		}
	}

	if err := s.repo.Student.Create(ctx, student); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrStudentNoExists
		}
		s.logger.Error("创建学生失败", zap.Error(err))
		return nil, err
	}

	return toStudentResponse(student), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studentService) GetByID(ctx context.Context, callerID, id string) (*dto.StudentResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityStudent, ActionView, id); err != nil {
		return nil, err
	}

	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toStudentResponse(student), nil
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context, callerID string, page *dto.PaginationRequest) ([]dto.StudentResponse, int64, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityStudent, ActionList, ""); err != nil {
		return nil, 0, err
	}

	scope, err := s.authz.StudentListScope(ctx, callerID)
	if err != nil {
		return nil, 0, err
	}

	students, total, err := s.repo.Student.List(ctx, scope, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *toStudentResponse(&students[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, callerID, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityStudent, ActionUpdate, id); err != nil {
		return nil, err
	}

	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	if req.CourseID != nil {
		if _, err := s.repo.Course.GetByID(ctx, *req.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCourseNotFound
			}
			return nil, err
		}
		student.CourseID = *req.CourseID
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.City != nil {
		student.City = *req.City
	}
	if req.State != nil {
		student.State = *req.State
	}
	if req.PinCode != nil {
		student.PinCode = *req.PinCode
	}
	if req.ParentID != nil {
		if *req.ParentID == "" {
			student.ParentID = nil
		} else {
			if _, err := s.repo.Parent.GetByID(ctx, *req.ParentID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrParentNotFound
				}
				return nil, err
			}
			student.ParentID = req.ParentID
		}
	}
	if req.Status != nil {
		student.Status = model.StudentStatus(*req.Status)
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("更新学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toStudentResponse(student), nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.authz.Authorize(ctx, callerID, EntityStudent, ActionDelete, id); err != nil {
		return err
	}

	if _, err := s.repo.Student.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	if err := s.repo.Student.Delete(ctx, id); err != nil {
		s.logger.Error("删除学生失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toStudentResponse(student *model.Student) *dto.StudentResponse {
	resp := &dto.StudentResponse{
		ID:         student.StudentID,
		ProfileID:  student.ProfileID,
		StudentNo:  student.StudentNo,
		RollNumber: student.RollNumber,
		CourseID:   student.CourseID,
		Gender:     string(student.Gender),
		Address:    student.Address,
		City:       student.City,
		State:      student.State,
		PinCode:    student.PinCode,
		Status:     string(student.Status),
		CreatedAt:  student.CreatedAt.Format(time.RFC3339),
	}
	if student.DateOfBirth != nil {
		resp.DateOfBirth = student.DateOfBirth.Format("2006-01-02")
	}
	if student.AdmissionDate != nil {
		resp.AdmissionDate = student.AdmissionDate.Format("2006-01-02")
	}
	if student.ParentID != nil {
		resp.ParentID = *student.ParentID
	}
	if student.Parent != nil {
		resp.ParentName = student.Parent.Name
	}
	if student.Course != nil {
		resp.CourseName = student.Course.Name
	}
	if student.Profile != nil && student.Profile.User != nil {
		resp.Username = student.Profile.User.Username
	}
	return resp
}
