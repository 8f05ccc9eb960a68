package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinimqsz/projeto-eng-software/internal/dto"
	"github.com/vinimqsz/projeto-eng-software/internal/model"
	"github.com/vinimqsz/projeto-eng-software/internal/repository"
	"github.com/vinimqsz/projeto-eng-software/internal/scheduling"
)

// ── Term errors ──

var (
	ErrTermNotFound    = errors.New("term not found")
	ErrNoActiveTerm    = errors.New("no active term")
	ErrTermDateInvalid = errors.New("term end date must be after start date")
	ErrTermDuplicate   = errors.New("a term with this year and period already exists")
)

// TermService term business operations
type TermService interface {
	Create(ctx context.Context, req *dto.CreateTermRequest, callerID string) (*dto.TermResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TermResponse, error)
	GetCurrent(ctx context.Context) (*dto.TermResponse, error)
	List(ctx context.Context) ([]dto.TermResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTermRequest, callerID string) (*dto.TermResponse, error)
	// Activate makes id the only active term.
	Activate(ctx context.Context, id string, callerID string) (*dto.TermResponse, error)
	Delete(ctx context.Context, id string) error
}

type termService struct {
	repo     *repository.Repository
	manager  *scheduling.TermLifecycleManager
	cache    TermCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTermService creates a TermService. cache may be nil.
func NewTermService(
	repo *repository.Repository,
	policy scheduling.StampPolicy,
	cache TermCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) TermService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &termService{
		repo:     repo,
		manager:  scheduling.NewTermLifecycleManager(repo.Term, policy),
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *termService) Create(ctx context.Context, req *dto.CreateTermRequest, callerID string) (*dto.TermResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrTermDateInvalid
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrTermDateInvalid
	}
	if !time.Time(end).After(time.Time(start)) {
		return nil, ErrTermDateInvalid
	}

	term := &model.Term{
		Year:      req.Year,
		Period:    req.Period,
		StartDate: start,
		EndDate:   end,
		IsActive:  false,
	}
	term.CreatedBy = strPtr(callerID)
	term.UpdatedBy = strPtr(callerID)

	if err := s.repo.Term.Create(ctx, term); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTermDuplicate
		}
		s.logger.Error("create term failed", zap.Error(err))
		return nil, err
	}

	return toTermResponse(term), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *termService) GetByID(ctx context.Context, id string) (*dto.TermResponse, error) {
	term, err := s.getTerm(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTermResponse(term), nil
}

// ────────────────────── GetCurrent ──────────────────────

func (s *termService) GetCurrent(ctx context.Context) (*dto.TermResponse, error) {
	if s.cache != nil {
		if payload, err := s.cache.GetCurrentTerm(ctx); err == nil {
			var cached dto.TermResponse
			if json.Unmarshal(payload, &cached) == nil {
				return &cached, nil
			}
		}
	}

	term, err := s.repo.Term.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveTerm
		}
		s.logger.Error("get current term failed", zap.Error(err))
		return nil, err
	}

	resp := toTermResponse(term)
	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.cache.SetCurrentTerm(ctx, payload, s.cacheTTL); err != nil {
				s.logger.Warn("cache current term failed", zap.Error(err))
			}
		}
	}
	return resp, nil
}

// ────────────────────── List ──────────────────────

func (s *termService) List(ctx context.Context) ([]dto.TermResponse, error) {
	terms, err := s.repo.Term.List(ctx)
	if err != nil {
		s.logger.Error("list terms failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TermResponse, 0, len(terms))
	for i := range terms {
		result = append(result, *toTermResponse(&terms[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *termService) Update(ctx context.Context, id string, req *dto.UpdateTermRequest, callerID string) (*dto.TermResponse, error) {
	term, err := s.getTerm(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Year != nil {
		term.Year = *req.Year
	}
	if req.Period != nil {
		term.Period = *req.Period
	}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, ErrTermDateInvalid
		}
		term.StartDate = d
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, ErrTermDateInvalid
		}
		term.EndDate = d
	}
	if !time.Time(term.EndDate).After(time.Time(term.StartDate)) {
		return nil, ErrTermDateInvalid
	}
	term.UpdatedBy = strPtr(callerID)

	if err := s.repo.Term.Update(ctx, term); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTermDuplicate
		}
		s.logger.Error("update term failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if term.IsActive {
		s.invalidateCurrent(ctx)
	}
	return toTermResponse(term), nil
}

// ────────────────────── Activate ──────────────────────

func (s *termService) Activate(ctx context.Context, id string, callerID string) (*dto.TermResponse, error) {
	if err := s.manager.Activate(ctx, id, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, scheduling.ErrEmptyTermID) {
			return nil, ErrTermNotFound
		}
		s.logger.Error("activate term failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	s.invalidateCurrent(ctx)

	s.logger.Info("term activated", zap.String("term_id", id), zap.String("by", callerID))

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

// Delete removes the term; its bookings go with it (ON DELETE CASCADE).
func (s *termService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Term.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTermNotFound
		}
		s.logger.Error("delete term failed", zap.String("id", id), zap.Error(err))
		return err
	}
	s.invalidateCurrent(ctx)
	return nil
}

// ── helpers ──

func (s *termService) getTerm(ctx context.Context, id string) (*model.Term, error) {
	term, err := s.repo.Term.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		s.logger.Error("get term failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return term, nil
}

func (s *termService) invalidateCurrent(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCurrentTerm(ctx); err != nil {
		s.logger.Warn("invalidate current term cache failed", zap.Error(err))
	}
}
