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

// ── Room errors ──

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomNameTaken = errors.New("room name already in use")
	ErrRoomInactive  = errors.New("room is inactive")
)

// RoomService room business operations
type RoomService interface {
	Create(ctx context.Context, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RoomResponse, error)
	List(ctx context.Context, req *dto.RoomListRequest) ([]dto.RoomResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
}

type roomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoomService creates a RoomService.
func NewRoomService(repo *repository.Repository, logger *zap.Logger) RoomService {
	return &roomService{repo: repo, logger: logger}
}

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	room := &model.Room{
		Name:     req.Name,
		Kind:     req.Kind,
		Capacity: req.Capacity,
		Floor:    req.Floor,
		Location: req.Location,
		IsActive: true,
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}
	room.CreatedBy = strPtr(callerID)
	room.UpdatedBy = strPtr(callerID)

	if err := s.repo.Room.Create(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomNameTaken
		}
		s.logger.Error("create room failed", zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := s.getRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) List(ctx context.Context, req *dto.RoomListRequest) ([]dto.RoomResponse, int64, error) {
	rooms, total, err := s.repo.Room.List(ctx, repository.RoomFilter{
		Kind:            req.Kind,
		MinCapacity:     req.MinCapacity,
		Search:          req.Keyword,
		IncludeInactive: req.IncludeInactive,
	}, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list rooms failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, *toRoomResponse(&rooms[i]))
	}
	return result, total, nil
}

func (s *roomService) Update(ctx context.Context, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	room, err := s.getRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Kind != nil {
		room.Kind = *req.Kind
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Location != nil {
		room.Location = *req.Location
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}
	room.UpdatedBy = strPtr(callerID)

	if err := s.repo.Room.Update(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomNameTaken
		}
		s.logger.Error("update room failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toRoomResponse(room), nil
}

// Delete removes the room and, by cascade, its bookings.
func (s *roomService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Room.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("delete room failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *roomService) getRoom(ctx context.Context, id string) (*model.Room, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("get room failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return room, nil
}
