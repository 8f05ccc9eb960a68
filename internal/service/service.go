package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vinimqsz/projeto-eng-software/config"
	"github.com/vinimqsz/projeto-eng-software/internal/repository"
	"github.com/vinimqsz/projeto-eng-software/internal/scheduling"
	"github.com/vinimqsz/projeto-eng-software/pkg/jwt"
	"github.com/vinimqsz/projeto-eng-software/pkg/redis"
)

// TermCache caches the active term. *redis.Client satisfies it.
type TermCache interface {
	GetCurrentTerm(ctx context.Context) ([]byte, error)
	SetCurrentTerm(ctx context.Context, payload []byte, ttl time.Duration) error
	InvalidateCurrentTerm(ctx context.Context) error
}

// TokenBlacklist revokes access tokens. *redis.Client satisfies it.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// Service aggregates every service.
type Service struct {
	Auth       AuthService
	Term       TermService
	Room       RoomService
	Discipline DisciplineService
	Professor  ProfessorService
	Booking    BookingService
	Export     ExportService
}

// NewService wires every service. rdb may be nil; the term cache and token
// revocation are then disabled.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) (*Service, error) {
	policy, err := scheduling.ParseStampPolicy(cfg.Scheduling.StampPolicy)
	if err != nil {
		return nil, err
	}

	var (
		cache     TermCache
		blacklist TokenBlacklist
	)
	if rdb != nil {
		cache = rdb
		blacklist = rdb
	}

	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		Term:       NewTermService(repo, policy, cache, cfg.Redis.TermCacheTTL, logger),
		Room:       NewRoomService(repo, logger),
		Discipline: NewDisciplineService(repo, logger),
		Professor:  NewProfessorService(repo, logger),
		Booking:    NewBookingService(repo, logger),
		Export:     NewExportService(repo, logger),
	}, nil
}
