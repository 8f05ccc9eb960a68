package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinimqsz/projeto-eng-software/internal/dto"
	"github.com/vinimqsz/projeto-eng-software/internal/model"
	"github.com/vinimqsz/projeto-eng-software/internal/repository"
	"github.com/vinimqsz/projeto-eng-software/internal/scheduling"
	pkgerrors "github.com/vinimqsz/projeto-eng-software/pkg/errors"
)

// ── Booking errors ──

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingTimeInvalid = errors.New("time of day must be HH:MM")
	ErrBookingDayInvalid  = errors.New("day_of_week must be between 0 and 6")
	ErrBookingDateInvalid = errors.New("exceptional_shutdown must be YYYY-MM-DD")
	ErrBookingDuplicate   = errors.New("another booking already starts at this time in this room")
	ErrBookingReference   = errors.New("booking references a missing term, room, discipline or professor")
)

// BookingConflictError is a *scheduling.ConflictError enriched with what the
// operator needs to find the colliding bookings.
type BookingConflictError struct {
	Conflicts []dto.ConflictItem
	cause     *scheduling.ConflictError
}

func (e *BookingConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s in %s %s-%s", c.DisciplineCode, c.RoomName, c.StartTime, c.EndTime))
	}
	return "time conflict with " + strings.Join(parts, ", ")
}

func (e *BookingConflictError) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

// BookingService booking business operations
type BookingService interface {
	Create(ctx context.Context, req *dto.BookingRequest, callerID string) (*dto.BookingResponse, error)
	GetByID(ctx context.Context, id string) (*dto.BookingResponse, error)
	List(ctx context.Context, req *dto.BookingListRequest) ([]dto.BookingResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateBookingRequest, callerID string) (*dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	// Check runs validation and conflict detection without writing.
	Check(ctx context.Context, req *dto.BookingRequest) (*dto.CheckResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	detector *scheduling.SlotConflictDetector
	logger   *zap.Logger
}

// NewBookingService creates a BookingService.
func NewBookingService(repo *repository.Repository, logger *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		detector: scheduling.NewSlotConflictDetector(),
		logger:   logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *bookingService) Create(ctx context.Context, req *dto.BookingRequest, callerID string) (*dto.BookingResponse, error) {
	b, err := bookingFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := scheduling.ValidateInterval(model.ToTimeOfDay(b.StartTime), model.ToTimeOfDay(b.EndTime)); err != nil {
		return nil, err
	}
	b.CreatedBy = strPtr(callerID)
	b.UpdatedBy = strPtr(callerID)

	if err := s.resolveRefs(ctx, b); err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if b.IsActive {
			if err := s.checkLocked(ctx, tx, b); err != nil {
				return err
			}
		}
		return tx.Booking.Create(ctx, b)
	})
	if err != nil {
		return nil, s.mapWriteError(err, "create booking failed")
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.BookingID),
		zap.String("room_id", b.RoomID),
		zap.Int("day", b.DayOfWeek),
	)
	return toBookingResponse(b), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *bookingService) GetByID(ctx context.Context, id string) (*dto.BookingResponse, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookingResponse(b), nil
}

// ────────────────────── List ──────────────────────

func (s *bookingService) List(ctx context.Context, req *dto.BookingListRequest) ([]dto.BookingResponse, int64, error) {
	list, total, err := s.repo.Booking.List(ctx, repository.BookingFilter{
		TermID:       req.TermID,
		RoomID:       req.RoomID,
		DisciplineID: req.DisciplineID,
		ProfessorID:  req.ProfessorID,
		Day:          req.DayOfWeek,
		ActiveOnly:   req.ActiveOnly,
	}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list bookings failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.BookingResponse, 0, len(list))
	for i := range list {
		result = append(result, *toBookingResponse(&list[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *bookingService) Update(ctx context.Context, id string, req *dto.UpdateBookingRequest, callerID string) (*dto.BookingResponse, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Version != nil && *req.Version != b.Version {
		return nil, pkgerrors.ErrOptimisticLock
	}

	if err := applyBookingPatch(b, req); err != nil {
		return nil, err
	}
	if err := scheduling.ValidateInterval(model.ToTimeOfDay(b.StartTime), model.ToTimeOfDay(b.EndTime)); err != nil {
		return nil, err
	}
	b.UpdatedBy = strPtr(callerID)
	// stale associations would mask a changed foreign key
	b.Term, b.Room, b.Discipline, b.Professor = nil, nil, nil, nil

	if b.IsActive {
		if err := s.resolveRefs(ctx, b); err != nil {
			return nil, err
		}
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		// a booking being deactivated cannot create a collision
		if b.IsActive {
			if err := s.checkLocked(ctx, tx, b); err != nil {
				return err
			}
		}
		return tx.Booking.Update(ctx, b)
	})
	if err != nil {
		return nil, s.mapWriteError(err, "update booking failed")
	}

	return toBookingResponse(b), nil
}

// ────────────────────── Delete ──────────────────────

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("delete booking failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Check ──────────────────────

func (s *bookingService) Check(ctx context.Context, req *dto.BookingRequest) (*dto.CheckResponse, error) {
	b, err := bookingFromRequest(req)
	if err != nil {
		return nil, err
	}
	b.BookingID = req.BookingID
	if err := scheduling.ValidateInterval(model.ToTimeOfDay(b.StartTime), model.ToTimeOfDay(b.EndTime)); err != nil {
		return nil, err
	}
	if err := s.resolveRefs(ctx, b); err != nil {
		return nil, err
	}

	resp := &dto.CheckResponse{Conflicts: []dto.ConflictItem{}}
	err = s.detect(ctx, s.repo, b)
	var conflict *BookingConflictError
	switch {
	case err == nil:
	case errors.As(err, &conflict):
		resp.Conflict = true
		resp.Conflicts = conflict.Conflicts
	default:
		return nil, err
	}
	return resp, nil
}

// ── helpers ──

func (s *bookingService) get(ctx context.Context, id string) (*model.Booking, error) {
	b, err := s.repo.Booking.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("get booking failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return b, nil
}

// resolveRefs loads the referenced rows and attaches them to b.
func (s *bookingService) resolveRefs(ctx context.Context, b *model.Booking) error {
	term, err := s.repo.Term.GetByID(ctx, b.TermID)
	if err != nil {
		return s.notFound(err, ErrTermNotFound)
	}
	room, err := s.repo.Room.GetByID(ctx, b.RoomID)
	if err != nil {
		return s.notFound(err, ErrRoomNotFound)
	}
	if !room.IsActive && b.IsActive {
		return ErrRoomInactive
	}
	disc, err := s.repo.Discipline.GetByID(ctx, b.DisciplineID)
	if err != nil {
		return s.notFound(err, ErrDisciplineNotFound)
	}
	if !disc.IsActive && b.IsActive {
		return ErrDisciplineInactive
	}
	prof, err := s.repo.Professor.GetByID(ctx, b.ProfessorID)
	if err != nil {
		return s.notFound(err, ErrProfessorNotFound)
	}

	b.Term, b.Room, b.Discipline, b.Professor = term, room, disc, prof
	return nil
}

func (s *bookingService) notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	s.logger.Error("resolve booking reference failed", zap.Error(err))
	return err
}

// checkLocked serialises writers of the same room, then detects conflicts.
func (s *bookingService) checkLocked(ctx context.Context, tx *repository.Repository, b *model.Booking) error {
	if _, err := tx.Room.LockByID(ctx, b.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return s.detect(ctx, tx, b)
}

func (s *bookingService) detect(ctx context.Context, repo *repository.Repository, b *model.Booking) error {
	existing, err := repo.Booking.ListBucket(ctx, b.TermID, b.RoomID, b.DayOfWeek, b.BookingID)
	if err != nil {
		return err
	}

	slots := make([]scheduling.Slot, 0, len(existing))
	byID := make(map[string]*model.Booking, len(existing))
	for i := range existing {
		slots = append(slots, existing[i].Slot())
		byID[existing[i].BookingID] = &existing[i]
	}

	proposed := b.Slot()
	result, err := s.detector.CheckConflict(proposed, slots)
	if err != nil {
		return err
	}
	if !result.HasConflict() {
		return nil
	}

	cause := result.Err(proposed).(*scheduling.ConflictError)
	items := make([]dto.ConflictItem, 0, len(result.Conflicts))
	for _, c := range result.Conflicts {
		item := dto.ConflictItem{
			BookingID: c.ID,
			DayOfWeek: int(c.Day),
			StartTime: c.Start.String(),
			EndTime:   c.End.String(),
		}
		if b.Room != nil {
			item.RoomName = b.Room.Name
		}
		if other := byID[c.ID]; other != nil {
			if d, err := repo.Discipline.GetByID(ctx, other.DisciplineID); err == nil {
				item.DisciplineCode = d.Code
			}
		}
		items = append(items, item)
	}
	return &BookingConflictError{Conflicts: items, cause: cause}
}

func (s *bookingService) mapWriteError(err error, msg string) error {
	var conflict *BookingConflictError
	switch {
	case errors.As(err, &conflict),
		errors.Is(err, ErrRoomNotFound),
		errors.Is(err, pkgerrors.ErrOptimisticLock):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrBookingDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrBookingReference
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}

func bookingFromRequest(req *dto.BookingRequest) (*model.Booking, error) {
	b := &model.Booking{
		TermID:       req.TermID,
		RoomID:       req.RoomID,
		DisciplineID: req.DisciplineID,
		ProfessorID:  req.ProfessorID,
		StudentCount: req.StudentCount,
		IsActive:     true,
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if req.DayOfWeek == nil {
		return nil, ErrBookingDayInvalid
	}
	if err := setDay(b, *req.DayOfWeek); err != nil {
		return nil, err
	}
	if err := setTimes(b, &req.StartTime, &req.EndTime); err != nil {
		return nil, err
	}
	if req.ExceptionalShutdown != nil {
		if err := setShutdown(b, *req.ExceptionalShutdown); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func applyBookingPatch(b *model.Booking, req *dto.UpdateBookingRequest) error {
	if req.TermID != nil {
		b.TermID = *req.TermID
	}
	if req.RoomID != nil {
		b.RoomID = *req.RoomID
	}
	if req.DisciplineID != nil {
		b.DisciplineID = *req.DisciplineID
	}
	if req.ProfessorID != nil {
		b.ProfessorID = *req.ProfessorID
	}
	if req.DayOfWeek != nil {
		if err := setDay(b, *req.DayOfWeek); err != nil {
			return err
		}
	}
	if err := setTimes(b, req.StartTime, req.EndTime); err != nil {
		return err
	}
	if req.StudentCount != nil {
		b.StudentCount = *req.StudentCount
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if req.ExceptionalShutdown != nil {
		if *req.ExceptionalShutdown == "" {
			b.ExceptionalShutdown = nil
		} else if err := setShutdown(b, *req.ExceptionalShutdown); err != nil {
			return err
		}
	}
	return nil
}

func setDay(b *model.Booking, day int) error {
	if !scheduling.Weekday(day).Valid() {
		return ErrBookingDayInvalid
	}
	b.DayOfWeek = day
	return nil
}

func setTimes(b *model.Booking, start, end *string) error {
	if start != nil {
		t, err := scheduling.ParseTimeOfDay(*start)
		if err != nil {
			return ErrBookingTimeInvalid
		}
		b.StartTime = model.FromTimeOfDay(t)
	}
	if end != nil {
		t, err := scheduling.ParseTimeOfDay(*end)
		if err != nil {
			return ErrBookingTimeInvalid
		}
		b.EndTime = model.FromTimeOfDay(t)
	}
	return nil
}

func setShutdown(b *model.Booking, s string) error {
	d, err := parseDate(s)
	if err != nil {
		return ErrBookingDateInvalid
	}
	b.ExceptionalShutdown = &d
	return nil
}
