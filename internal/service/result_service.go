package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/model"
	"sms-portal/backend/internal/repository"
	pkgerrors "sms-portal/backend/pkg/errors"
)

// ── 成绩模块业务错误 ──

var (
	ErrResultNotFound = errors.New("成绩不存在")
	ErrResultExists   = errors.New("该学生此次考试该科目的成绩已存在")
)

// ResultService 成绩业务接口
type ResultService interface {
	Create(ctx context.Context, callerID string, req *dto.CreateResultRequest) (*dto.ResultResponse, error)
	GetByID(ctx context.Context, callerID, id string) (*dto.ResultResponse, error)
	List(ctx context.Context, callerID string, page *dto.PaginationRequest) ([]dto.ResultResponse, int64, error)
	Update(ctx context.Context, callerID, id string, req *dto.UpdateResultRequest) (*dto.ResultResponse, error)
	Delete(ctx context.Context, callerID, id string) error
}

type resultService struct {
	repo   *repository.Repository
	authz  AuthzService
	logger *zap.Logger
}

// NewResultService 创建 ResultService 实例
func NewResultService(repo *repository.Repository, authz AuthzService, logger *zap.Logger) ResultService {
	return &resultService{repo: repo, authz: authz, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 录入成绩
// 未传百分比时按 marks/total 计算；等级按百分比派生。
// (student, subject, exam) 由数据库唯一索引裁决并发重复。
func (s *resultService) Create(ctx context.Context, callerID string, req *dto.CreateResultRequest) (*dto.ResultResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityResult, ActionCreate, ""); err != nil {
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
	if _, err := s.repo.Exam.GetByID(ctx, req.ExamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	result := &model.Result{
		StudentID:     req.StudentID,
		SubjectID:     req.SubjectID,
		ExamID:        req.ExamID,
		MarksObtained: req.MarksObtained,
		TotalMarks:    req.TotalMarks,
		Percentage:    req.Percentage,
		Remarks:       req.Remarks,
	}
	if result.TotalMarks == 0 {
		result.TotalMarks = 100
	}
	fillDerivedFields(result)

	if err := s.repo.Result.Create(ctx, result); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrResultExists
		}
		s.logger.Error("录入成绩失败", zap.Error(err))
		return nil, err
	}
	return toResultResponse(result), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *resultService) GetByID(ctx context.Context, callerID, id string) (*dto.ResultResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityResult, ActionView, id); err != nil {
		return nil, err
	}

	result, err := s.repo.Result.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		s.logger.Error("查询成绩失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toResultResponse(result), nil
}

// ────────────────────── List ──────────────────────

func (s *resultService) List(ctx context.Context, callerID string, page *dto.PaginationRequest) ([]dto.ResultResponse, int64, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityResult, ActionList, ""); err != nil {
		return nil, 0, err
	}

	results, total, err := s.repo.Result.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出成绩失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.ResultResponse, 0, len(results))
	for i := range results {
		list = append(list, *toResultResponse(&results[i]))
	}
	return list, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *resultService) Update(ctx context.Context, callerID, id string, req *dto.UpdateResultRequest) (*dto.ResultResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityResult, ActionUpdate, id); err != nil {
		return nil, err
	}

	result, err := s.repo.Result.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}

	if req.MarksObtained != nil {
		result.MarksObtained = req.MarksObtained
	}
	if req.TotalMarks != nil {
		result.TotalMarks = *req.TotalMarks
	}
	if req.Percentage != nil {
		result.Percentage = req.Percentage
	} else if req.MarksObtained != nil || req.TotalMarks != nil {
		// 分数变更后百分比按新分数重算
		result.Percentage = nil
	}
	if req.Remarks != nil {
		result.Remarks = *req.Remarks
	}
	fillDerivedFields(result)

	if err := s.repo.Result.Update(ctx, result); err != nil {
		s.logger.Error("更新成绩失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toResultResponse(result), nil
}

// ────────────────────── Delete ──────────────────────

func (s *resultService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.authz.Authorize(ctx, callerID, EntityResult, ActionDelete, id); err != nil {
		return err
	}

	if _, err := s.repo.Result.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResultNotFound
		}
		return err
	}
	return s.repo.Result.Delete(ctx, id)
}

// ── 内部辅助方法 ──

// fillDerivedFields 派生百分比与等级
// 百分比缺失且有分数时按 marks/total 计算（两位小数）；等级阈值 A≥80 B≥70 C≥60 D≥40。
func fillDerivedFields(result *model.Result) {
	if result.Percentage == nil && result.MarksObtained != nil && result.TotalMarks > 0 {
		p := math.Round(float64(*result.MarksObtained)/float64(result.TotalMarks)*100*100) / 100
		result.Percentage = &p
	}
	if result.Percentage != nil {
		result.Grade = deriveGrade(*result.Percentage)
	}
}

func deriveGrade(percentage float64) string {
	switch {
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 40:
		return "D"
	default:
		return "F"
	}
}

func toResultResponse(result *model.Result) *dto.ResultResponse {
	resp := &dto.ResultResponse{
		ID:            result.ResultID,
		StudentID:     result.StudentID,
		SubjectID:     result.SubjectID,
		ExamID:        result.ExamID,
		MarksObtained: result.MarksObtained,
		TotalMarks:    result.TotalMarks,
		Percentage:    result.Percentage,
		Grade:         result.Grade,
		Remarks:       result.Remarks,
		CreatedAt:     result.CreatedAt.Format(time.RFC3339),
	}
	if result.Subject != nil {
		resp.SubjectName = result.Subject.Name
	}
	if result.Exam != nil {
		resp.ExamName = result.Exam.ExamName
	}
	return resp
}
