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

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound      = errors.New("课程不存在")
	ErrCourseCodeExists    = errors.New("课程编码已存在")
	ErrCourseHasStudents   = errors.New("课程下仍有学生，无法删除")
	ErrCourseSubjectExists = errors.New("课程已挂载该科目")
	ErrTeacherNotFound     = errors.New("教师不存在")
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, callerID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, callerID, id string) (*dto.CourseResponse, error)
	List(ctx context.Context, callerID string) ([]dto.CourseResponse, error)
	Update(ctx context.Context, callerID, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, callerID, id string) error
	AddSubject(ctx context.Context, callerID, courseID string, req *dto.AddCourseSubjectRequest) (*dto.CourseSubjectResponse, error)
	ListSubjects(ctx context.Context, callerID, courseID string) ([]dto.CourseSubjectResponse, error)
	RemoveSubject(ctx context.Context, callerID, courseID, subjectID string) error
}

type courseService struct {
	repo   *repository.Repository
	authz  AuthzService
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, authz AuthzService, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, authz: authz, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, callerID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityCourse, ActionCreate, ""); err != nil {
		return nil, err
	}

	if req.ClassTeacherID != nil {
		if _, err := s.repo.Teacher.GetByID(ctx, *req.ClassTeacherID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeacherNotFound
			}
			return nil, err
		}
	}

	course := &model.Course{
		Name:           req.Name,
		Code:           req.Code,
		Semester:       req.Semester,
		Section:        req.Section,
		Capacity:       req.Capacity,
		ClassTeacherID: req.ClassTeacherID,
		Description:    req.Description,
	}
	if course.Capacity == 0 {
		course.Capacity = 50
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrCourseCodeExists
		}
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	return s.toCourseResponse(ctx, course), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, callerID, id string) (*dto.CourseResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityCourse, ActionView, id); err != nil {
		return nil, err
	}

	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toCourseResponse(ctx, course), nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, callerID string) ([]dto.CourseResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityCourse, ActionList, ""); err != nil {
		return nil, err
	}

	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *s.toCourseResponse(ctx, &courses[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, callerID, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityCourse, ActionUpdate, id); err != nil {
		return nil, err
	}

	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Semester != nil {
		course.Semester = *req.Semester
	}
	if req.Section != nil {
		course.Section = *req.Section
	}
	if req.Capacity != nil {
		course.Capacity = *req.Capacity
	}
	if req.ClassTeacherID != nil {
		if *req.ClassTeacherID == "" {
			course.ClassTeacherID = nil
		} else {
			if _, err := s.repo.Teacher.GetByID(ctx, *req.ClassTeacherID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrTeacherNotFound
				}
				return nil, err
			}
			course.ClassTeacherID = req.ClassTeacherID
		}
	}
	if req.Description != nil {
		course.Description = *req.Description
	}

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toCourseResponse(ctx, course), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除课程
// students.course_id 外键为 RESTRICT：仍有学生时数据库直接拒绝。
func (s *courseService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.authz.Authorize(ctx, callerID, EntityCourse, ActionDelete, id); err != nil {
		return err
	}

	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	// 先给出友好错误，数据库 RESTRICT 兜底并发窗口
	count, err := s.repo.Student.CountByCourse(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCourseHasStudents
	}

	if err := s.repo.Course.Delete(ctx, id); err != nil {
		if pkgerrors.IsForeignKeyViolated(err) {
			return ErrCourseHasStudents
		}
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 课程-科目关联 ──────────────────────

func (s *courseService) AddSubject(ctx context.Context, callerID, courseID string, req *dto.AddCourseSubjectRequest) (*dto.CourseSubjectResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityCourse, ActionUpdate, courseID); err != nil {
		return nil, err
	}

	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
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

	cs := &model.CourseSubject{
		CourseID:  courseID,
		SubjectID: req.SubjectID,
		Semester:  req.Semester,
	}
	if err := s.repo.Course.AddSubject(ctx, cs); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrCourseSubjectExists
		}
		s.logger.Error("挂载科目失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	return &dto.CourseSubjectResponse{
		ID:          cs.CourseSubjectID,
		SubjectID:   subject.SubjectID,
		SubjectName: subject.Name,
		SubjectCode: subject.Code,
		Semester:    cs.Semester,
	}, nil
}

func (s *courseService) ListSubjects(ctx context.Context, callerID, courseID string) ([]dto.CourseSubjectResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityCourse, ActionView, courseID); err != nil {
		return nil, err
	}

	list, err := s.repo.Course.ListSubjects(ctx, courseID)
	if err != nil {
		s.logger.Error("列出课程科目失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseSubjectResponse, 0, len(list))
	for i := range list {
		item := dto.CourseSubjectResponse{
			ID:        list[i].CourseSubjectID,
			SubjectID: list[i].SubjectID,
			Semester:  list[i].Semester,
		}
		if list[i].Subject != nil {
			item.SubjectName = list[i].Subject.Name
			item.SubjectCode = list[i].Subject.Code
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *courseService) RemoveSubject(ctx context.Context, callerID, courseID, subjectID string) error {
	if err := s.authz.Authorize(ctx, callerID, EntityCourse, ActionUpdate, courseID); err != nil {
		return err
	}
	return s.repo.Course.RemoveSubject(ctx, courseID, subjectID)
}

// ── 内部辅助方法 ──

func (s *courseService) toCourseResponse(ctx context.Context, course *model.Course) *dto.CourseResponse {
	count, _ := s.repo.Student.CountByCourse(ctx, course.CourseID)
	resp := &dto.CourseResponse{
		ID:           course.CourseID,
		Name:         course.Name,
		Code:         course.Code,
		Semester:     course.Semester,
		Section:      course.Section,
		Capacity:     course.Capacity,
		Description:  course.Description,
		StudentCount: count,
		CreatedAt:    course.CreatedAt.Format(time.RFC3339),
	}
	if course.ClassTeacherID != nil {
		resp.ClassTeacherID = *course.ClassTeacherID
	}
	if course.ClassTeacher != nil {
		resp.ClassTeacherName = course.ClassTeacher.EmployeeID
		if course.ClassTeacher.Profile != nil && course.ClassTeacher.Profile.User != nil {
			resp.ClassTeacherName = course.ClassTeacher.Profile.User.Username
		}
	}
	return resp
}
