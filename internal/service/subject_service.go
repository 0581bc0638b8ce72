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

// ── 科目模块业务错误 ──

var (
	ErrSubjectNotFound   = errors.New("科目不存在")
	ErrSubjectCodeExists = errors.New("科目编码已存在")
	ErrSubjectInUse      = errors.New("科目仍被引用，无法删除")
)

// SubjectService 科目业务接口
type SubjectService interface {
	Create(ctx context.Context, callerID string, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, callerID, id string) (*dto.SubjectResponse, error)
	List(ctx context.Context, callerID string) ([]dto.SubjectResponse, error)
	Update(ctx context.Context, callerID, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, callerID, id string) error
}

type subjectService struct {
	repo   *repository.Repository
	authz  AuthzService
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, authz AuthzService, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, authz: authz, logger: logger}
}

func (s *subjectService) Create(ctx context.Context, callerID string, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntitySubject, ActionCreate, ""); err != nil {
		return nil, err
	}

	subject := &model.Subject{
		Name:        req.Name,
		Code:        req.Code,
		Credits:     req.Credits,
		Description: req.Description,
	}
	if subject.Credits == 0 {
		subject.Credits = 3
	}

	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrSubjectCodeExists
		}
		s.logger.Error("创建科目失败", zap.Error(err))
		return nil, err
	}

	return toSubjectResponse(subject), nil
}

func (s *subjectService) GetByID(ctx context.Context, callerID, id string) (*dto.SubjectResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntitySubject, ActionView, id); err != nil {
		return nil, err
	}

	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSubjectResponse(subject), nil
}

func (s *subjectService) List(ctx context.Context, callerID string) ([]dto.SubjectResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntitySubject, ActionList, ""); err != nil {
		return nil, err
	}

	subjects, err := s.repo.Subject.List(ctx)
	if err != nil {
		s.logger.Error("列出科目失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, *toSubjectResponse(&subjects[i]))
	}
	return result, nil
}

func (s *subjectService) Update(ctx context.Context, callerID, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntitySubject, ActionUpdate, id); err != nil {
		return nil, err
	}

	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Credits != nil {
		subject.Credits = *req.Credits
	}
	if req.Description != nil {
		subject.Description = *req.Description
	}

	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Error("更新科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSubjectResponse(subject), nil
}

func (s *subjectService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.authz.Authorize(ctx, callerID, EntitySubject, ActionDelete, id); err != nil {
		return err
	}

	if _, err := s.repo.Subject.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}

	if err := s.repo.Subject.Delete(ctx, id); err != nil {
		if pkgerrors.IsForeignKeyViolated(err) {
			return ErrSubjectInUse
		}
		s.logger.Error("删除科目失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toSubjectResponse(subject *model.Subject) *dto.SubjectResponse {
	return &dto.SubjectResponse{
		ID:          subject.SubjectID,
		Name:        subject.Name,
		Code:        subject.Code,
		Credits:     subject.Credits,
		Description: subject.Description,
		CreatedAt:   subject.CreatedAt.Format(time.RFC3339),
	}
}
