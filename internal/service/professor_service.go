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
	ErrProfessorNotFound          = errors.New("professor not found")
	ErrProfessorRegistrationTaken = errors.New("professor registration already in use")
)

// ProfessorService professor business operations
type ProfessorService interface {
	Create(ctx context.Context, req *dto.CreateProfessorRequest, callerID string) (*dto.ProfessorResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProfessorResponse, error)
	List(ctx context.Context, req *dto.ProfessorListRequest) ([]dto.ProfessorResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateProfessorRequest, callerID string) (*dto.ProfessorResponse, error)
	Delete(ctx context.Context, id string) error
}

type professorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProfessorService creates a ProfessorService.
func NewProfessorService(repo *repository.Repository, logger *zap.Logger) ProfessorService {
	return &professorService{repo: repo, logger: logger}
}

func (s *professorService) Create(ctx context.Context, req *dto.CreateProfessorRequest, callerID string) (*dto.ProfessorResponse, error) {
	p := &model.Professor{
		Registration: req.Registration,
		Name:         req.Name,
		Email:        req.Email,
		Department:   req.Department,
		Phone:        req.Phone,
	}
	p.CreatedBy = strPtr(callerID)
	p.UpdatedBy = strPtr(callerID)

	if err := s.repo.Professor.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProfessorRegistrationTaken
		}
		s.logger.Error("create professor failed", zap.Error(err))
		return nil, err
	}
	return toProfessorResponse(p), nil
}

func (s *professorService) GetByID(ctx context.Context, id string) (*dto.ProfessorResponse, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProfessorResponse(p), nil
}

func (s *professorService) List(ctx context.Context, req *dto.ProfessorListRequest) ([]dto.ProfessorResponse, int64, error) {
	list, total, err := s.repo.Professor.List(ctx, req.Keyword, req.Department, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list professors failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ProfessorResponse, 0, len(list))
	for i := range list {
		result = append(result, *toProfessorResponse(&list[i]))
	}
	return result, total, nil
}

func (s *professorService) Update(ctx context.Context, id string, req *dto.UpdateProfessorRequest, callerID string) (*dto.ProfessorResponse, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Registration != nil {
		p.Registration = *req.Registration
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Department != nil {
		p.Department = *req.Department
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	p.UpdatedBy = strPtr(callerID)

	if err := s.repo.Professor.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProfessorRegistrationTaken
		}
		s.logger.Error("update professor failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toProfessorResponse(p), nil
}

func (s *professorService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Professor.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfessorNotFound
		}
		s.logger.Error("delete professor failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *professorService) get(ctx context.Context, id string) (*model.Professor, error) {
	p, err := s.repo.Professor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessorNotFound
		}
		s.logger.Error("get professor failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}
