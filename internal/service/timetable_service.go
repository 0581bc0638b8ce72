package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/model"
	"sms-portal/backend/internal/repository"
	pkgerrors "sms-portal/backend/pkg/errors"
)

// ── 课表模块业务错误 ──

var (
	ErrTimetableNotFound = errors.New("课表条目不存在")
	ErrTimetableSlotUsed = errors.New("该课程此时段已排课")
	ErrInvalidDayOfWeek  = errors.New("非法星期值")
)

// TimetableService 课表业务接口
type TimetableService interface {
	Create(ctx context.Context, callerID string, req *dto.CreateTimetableRequest) (*dto.TimetableResponse, error)
	GetByID(ctx context.Context, callerID, id string) (*dto.TimetableResponse, error)
	ListByCourse(ctx context.Context, callerID, courseID string) ([]dto.TimetableResponse, error)
	Update(ctx context.Context, callerID, id string, req *dto.UpdateTimetableRequest) (*dto.TimetableResponse, error)
	Delete(ctx context.Context, callerID, id string) error
}

type timetableService struct {
	repo   *repository.Repository
	authz  AuthzService
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, authz AuthzService, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, authz: authz, logger: logger}
}

// Create 排课
// (course, day, start_time) 由数据库唯一索引裁决并发抢占：同一时段只有一个写入者成功。
func (s *timetableService) Create(ctx context.Context, callerID string, req *dto.CreateTimetableRequest) (*dto.TimetableResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityTimetable, ActionCreate, ""); err != nil {
		return nil, err
	}

	day := model.DayOfWeek(req.DayOfWeek)
	if !day.Valid() {
		return nil, ErrInvalidDayOfWeek
	}

	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Subject.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Teacher.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	entry := &model.Timetable{
		CourseID:  req.CourseID,
		DayOfWeek: day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
		Room:      req.Room,
	}

	if err := s.repo.Timetable.Create(ctx, entry); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrTimetableSlotUsed
		}
		s.logger.Error("排课失败", zap.Error(err))
		return nil, err
	}
	return toTimetableResponse(entry), nil
}

func (s *timetableService) GetByID(ctx context.Context, callerID, id string) (*dto.TimetableResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityTimetable, ActionView, id); err != nil {
		return nil, err
	}

	entry, err := s.repo.Timetable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		s.logger.Error("查询课表失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTimetableResponse(entry), nil
}

func (s *timetableService) ListByCourse(ctx context.Context, callerID, courseID string) ([]dto.TimetableResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityTimetable, ActionList, ""); err != nil {
		return nil, err
	}

	entries, err := s.repo.Timetable.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出课表失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.TimetableResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toTimetableResponse(&entries[i]))
	}
	return result, nil
}

func (s *timetableService) Update(ctx context.Context, callerID, id string, req *dto.UpdateTimetableRequest) (*dto.TimetableResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityTimetable, ActionUpdate, id); err != nil {
		return nil, err
	}

	entry, err := s.repo.Timetable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		return nil, err
	}

	if req.DayOfWeek != nil {
		day := model.DayOfWeek(*req.DayOfWeek)
		if !day.Valid() {
			return nil, ErrInvalidDayOfWeek
		}
		entry.DayOfWeek = day
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = *req.EndTime
	}
	if req.SubjectID != nil {
		entry.SubjectID = *req.SubjectID
	}
	if req.TeacherID != nil {
		entry.TeacherID = *req.TeacherID
	}
	if req.Room != nil {
		entry.Room = *req.Room
	}

	if err := s.repo.Timetable.Update(ctx, entry); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrTimetableSlotUsed
		}
		s.logger.Error("调整排课失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toTimetableResponse(entry), nil
}

func (s *timetableService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.authz.Authorize(ctx, callerID, EntityTimetable, ActionDelete, id); err != nil {
		return err
	}

	if _, err := s.repo.Timetable.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimetableNotFound
		}
		return err
	}
	return s.repo.Timetable.Delete(ctx, id)
}

// ── 内部辅助方法 ──

func toTimetableResponse(entry *model.Timetable) *dto.TimetableResponse {
	resp := &dto.TimetableResponse{
		ID:        entry.TimetableID,
		CourseID:  entry.CourseID,
		DayOfWeek: string(entry.DayOfWeek),
		StartTime: entry.StartTime,
		EndTime:   entry.EndTime,
		SubjectID: entry.SubjectID,
		TeacherID: entry.TeacherID,
		Room:      entry.Room,
	}
	if entry.Course != nil {
		resp.CourseName = entry.Course.Name
	}
	if entry.Subject != nil {
		resp.SubjectName = entry.Subject.Name
	}
	if entry.Teacher != nil {
		resp.TeacherName = entry.Teacher.EmployeeID
	}
	return resp
}
