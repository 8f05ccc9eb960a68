package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinimqsz/projeto-eng-software/internal/dto"
	"github.com/vinimqsz/projeto-eng-software/internal/model"
	"github.com/vinimqsz/projeto-eng-software/internal/repository"
)

var (
	ErrDisciplineNotFound  = errors.New("discipline not found")
	ErrDisciplineCodeTaken = errors.New("discipline code already in use")
	ErrDisciplineInactive  = errors.New("discipline is inactive")
)

// DisciplineService discipline business operations
type DisciplineService interface {
	Create(ctx context.Context, req *dto.CreateDisciplineRequest, callerID string) (*dto.DisciplineResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DisciplineResponse, error)
	List(ctx context.Context, req *dto.DisciplineListRequest) ([]dto.DisciplineResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateDisciplineRequest, callerID string) (*dto.DisciplineResponse, error)
	Delete(ctx context.Context, id string) error
}

type disciplineService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDisciplineService creates a DisciplineService.
func NewDisciplineService(repo *repository.Repository, logger *zap.Logger) DisciplineService {
	return &disciplineService{repo: repo, logger: logger}
}

func (s *disciplineService) Create(ctx context.Context, req *dto.CreateDisciplineRequest, callerID string) (*dto.DisciplineResponse, error) {
	d := &model.Discipline{
		Code:          req.Code,
		Name:          req.Name,
		WorkloadHours: req.WorkloadHours,
		IsActive:      true,
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}
	d.CreatedBy = strPtr(callerID)
	d.UpdatedBy = strPtr(callerID)

	if err := s.repo.Discipline.Create(ctx, d); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDisciplineCodeTaken
		}
		s.logger.Error("create discipline failed", zap.Error(err))
		return nil, err
	}
	return toDisciplineResponse(d), nil
}

func (s *disciplineService) GetByID(ctx context.Context, id string) (*dto.DisciplineResponse, error) {
	d, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDisciplineResponse(d), nil
}

func (s *disciplineService) List(ctx context.Context, req *dto.DisciplineListRequest) ([]dto.DisciplineResponse, int64, error) {
	list, total, err := s.repo.Discipline.List(ctx, req.Keyword, req.IncludeInactive, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list disciplines failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.DisciplineResponse, 0, len(list))
	for i := range list {
		result = append(result, *toDisciplineResponse(&list[i]))
	}
	return result, total, nil
}

func (s *disciplineService) Update(ctx context.Context, id string, req *dto.UpdateDisciplineRequest, callerID string) (*dto.DisciplineResponse, error) {
	d, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		d.Code = *req.Code
	}
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.WorkloadHours != nil {
		d.WorkloadHours = *req.WorkloadHours
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}
	d.UpdatedBy = strPtr(callerID)

	if err := s.repo.Discipline.Update(ctx, d); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDisciplineCodeTaken
		}
		s.logger.Error("update discipline failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toDisciplineResponse(d), nil
}

func (s *disciplineService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Discipline.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDisciplineNotFound
		}
		s.logger.Error("delete discipline failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *disciplineService) get(ctx context.Context, id string) (*model.Discipline, error) {
	d, err := s.repo.Discipline.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDisciplineNotFound
		}
		s.logger.Error("get discipline failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return d, nil
}
