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

// ── 家长模块业务错误 ──

var (
	ErrParentNotFound      = errors.New("家长不存在")
	ErrParentProfileExists = errors.New("该档案已绑定家长")
)

// ParentService 家长业务接口
type ParentService interface {
	Create(ctx context.Context, callerID string, req *dto.CreateParentRequest) (*dto.ParentResponse, error)
	GetByID(ctx context.Context, callerID, id string) (*dto.ParentResponse, error)
	List(ctx context.Context, callerID string) ([]dto.ParentResponse, error)
	Update(ctx context.Context, callerID, id string, req *dto.UpdateParentRequest) (*dto.ParentResponse, error)
	Delete(ctx context.Context, callerID, id string) error
}

type parentService struct {
	repo   *repository.Repository
	authz  AuthzService
	logger *zap.Logger
}

// NewParentService 创建 ParentService 实例
func NewParentService(repo *repository.Repository, authz AuthzService, logger *zap.Logger) ParentService {
	return &parentService{repo: repo, authz: authz, logger: logger}
}

// Create 创建家长
// 家长可无登录档案；绑定档案时角色必须为 parent。
func (s *parentService) Create(ctx context.Context, callerID string, req *dto.CreateParentRequest) (*dto.ParentResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityParent, ActionCreate, ""); err != nil {
		return nil, err
	}

	if req.ProfileID != nil {
		profile, err := s.repo.Profile.GetByID(ctx, *req.ProfileID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
		if profile.Role != model.RoleParent {
			return nil, ErrProfileRoleMismatch
		}
	}

	parent := &model.Parent{
		ProfileID:  req.ProfileID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Relation:   req.Relation,
		Occupation: req.Occupation,
		Address:    req.Address,
	}

	if err := s.repo.Parent.Create(ctx, parent); err != nil {
		if pkgerrors.IsDuplicate(err) {
			return nil, ErrParentProfileExists
		}
		s.logger.Error("创建家长失败", zap.Error(err))
		return nil, err
	}
	return toParentResponse(parent), nil
}

func (s *parentService) GetByID(ctx context.Context, callerID, id string) (*dto.ParentResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityParent, ActionView, id); err != nil {
		return nil, err
	}

	parent, err := s.repo.Parent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		s.logger.Error("查询家长失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toParentResponse(parent), nil
}

func (s *parentService) List(ctx context.Context, callerID string) ([]dto.ParentResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityParent, ActionList, ""); err != nil {
		return nil, err
	}

	parents, err := s.repo.Parent.List(ctx)
	if err != nil {
		s.logger.Error("列出家长失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ParentResponse, 0, len(parents))
	for i := range parents {
		result = append(result, *toParentResponse(&parents[i]))
	}
	return result, nil
}

func (s *parentService) Update(ctx context.Context, callerID, id string, req *dto.UpdateParentRequest) (*dto.ParentResponse, error) {
	if err := s.authz.Authorize(ctx, callerID, EntityParent, ActionUpdate, id); err != nil {
		return nil, err
	}

	parent, err := s.repo.Parent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		parent.Name = *req.Name
	}
	if req.Email != nil {
		parent.Email = *req.Email
	}
	if req.Phone != nil {
		parent.Phone = *req.Phone
	}
	if req.Relation != nil {
		parent.Relation = *req.Relation
	}
	if req.Occupation != nil {
		parent.Occupation = *req.Occupation
	}
	if req.Address != nil {
		parent.Address = *req.Address
	}

	if err := s.repo.Parent.Update(ctx, parent); err != nil {
		s.logger.Error("更新家长失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toParentResponse(parent), nil
}

// Delete 删除家长
// students.parent_id 外键为 SET NULL：孩子记录保留。
func (s *parentService) Delete(ctx context.Context, callerID, id string) error {
	if err := s.authz.Authorize(ctx, callerID, EntityParent, ActionDelete, id); err != nil {
		return err
	}

	if _, err := s.repo.Parent.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentNotFound
		}
		return err
	}

	if err := s.repo.Parent.Delete(ctx, id); err != nil {
		s.logger.Error("删除家长失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toParentResponse(parent *model.Parent) *dto.ParentResponse {
	resp := &dto.ParentResponse{
		ID:         parent.ParentID,
		Name:       parent.Name,
		Email:      parent.Email,
		Phone:      parent.Phone,
		Relation:   parent.Relation,
		Occupation: parent.Occupation,
		Address:    parent.Address,
		CreatedAt:  parent.CreatedAt.Format(time.RFC3339),
	}
	if parent.ProfileID != nil {
		resp.ProfileID = *parent.ProfileID
	}
	return resp
}
