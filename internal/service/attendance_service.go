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

// ── 考勤模块业务错误 ──

var (
	ErrAttendanceNotFound = errors.New("考勤记录不存在")
	ErrAttendanceExists   = errors.New("该学生当日该科目的考勤已存在")
)

// AttendanceService 考勤业务接口
type AttendanceService interface {
	Create(ctx context.Context, callerID string, req *dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error)
	GetByID(ctx context.Context, callerID, id string) (*dto.AttendanceResponse, error)
	ListByStudent(ctx context.Context, callerID, studentID string, page *dto.PaginationRequest) ([]dto.AttendanceResponse, int64, error)
	Update(ctx context.Context, callerID, id string, req *dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error)
	Delete(ctx context.Context, callerID, id string) error
}

type attendanceService struct {
	repo   *repository.Repository
	authz  AuthzService
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, authz AuthzService, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, authz: authz, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 录入考勤
// (student, subject, date) 由数据库唯一索引裁决并发重复：
// 第二个写入者收到唯一键冲突，转译为 ErrAttendanceExists。
func (s *attendanceService) Create(ctx context.Context, callerID string, req *dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityAttendance, ActionCreate, ""); err != nil {
		return nil, err
	}

	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Subject.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.AttendanceDate)
	if err != nil {
		return nil, err
	}

	record := &model.Attendance{
		StudentID:      req.StudentID,
		SubjectID:      req.SubjectID,
		AttendanceDate: date,
		Status:         model.AttendanceStatus(req.Status),
		Remarks:        req.Remarks,
	}

	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrAttendanceExists
		}
		s.logger.Error("录入考勤失败", zap.Error(err))
		return nil, err
	}

	return toAttendanceResponse(record), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *attendanceService) GetByID(ctx context.Context, callerID, id string) (*dto.AttendanceResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityAttendance, ActionView, id); err != nil {
		return nil, err
	}

	record, err := s.repo.Attendance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		s.logger.Error("查询考勤失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAttendanceResponse(record), nil
}

// ────────────────────── ListByStudent ──────────────────────

func (s *attendanceService) ListByStudent(ctx context.Context, callerID, studentID string, page *dto.PaginationRequest) ([]dto.AttendanceResponse, int64, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityAttendance, ActionList, ""); err != nil {
		return nil, 0, err
	}

	records, total, err := s.repo.Attendance.ListByStudent(ctx, studentID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出考勤失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		result = append(result, *toAttendanceResponse(&records[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *attendanceService) Update(ctx context.Context, callerID, id string, req *dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityAttendance, ActionUpdate, id); err != nil {
		return nil, err
	}

	record, err := s.repo.Attendance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, err
	}

	if req.Status != nil {
		record.Status = model.AttendanceStatus(*req.Status)
	}
	if req.Remarks != nil {
		record.Remarks = *req.Remarks
	}

	if err := s.repo.Attendance.Update(ctx, record); err != nil {
		s.logger.Error("更新考勤失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toAttendanceResponse(record), nil
}

// ────────────────────── Delete ──────────────────────

func (s *attendanceService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.authz.Authorize(ctx, callerID, EntityAttendance, ActionDelete, id); err != nil {
		return err
	}

	if _, err := s.repo.Attendance.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttendanceNotFound
		}
		return err
	}
	return s.repo.Attendance.Delete(ctx, id)
}

// ── 内部辅助方法 ──

func toAttendanceResponse(record *model.Attendance) *dto.AttendanceResponse {
	resp := &dto.AttendanceResponse{
		ID:             record.AttendanceID,
		StudentID:      record.StudentID,
		SubjectID:      record.SubjectID,
		AttendanceDate: record.AttendanceDate.Format("2006-01-02"),
		Status:         string(record.Status),
		Remarks:        record.Remarks,
		CreatedAt:      record.CreatedAt.Format(time.RFC3339),
	}
	if record.Subject != nil {
		resp.SubjectName = record.Subject.Name
	}
	return resp
}
