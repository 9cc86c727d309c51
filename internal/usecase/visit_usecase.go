package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pompa-press/internal/entity"
	"pompa-press/internal/repo/persistent"
	"pompa-press/pkg/config"
	"pompa-press/pkg/logger"
	"pompa-press/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const rankingCacheTTL = time.Minute

type VisitUseCase interface {
	RecordVisit(contentID, ip string) (*entity.VisitResult, error)
	MostVisited(limit int) ([]*entity.Content, error)
	MostRead(limit int) ([]*entity.Content, error)
	ResetCounters(contentID string) error
	ResetCountersBulk(contentIDs []string) (int, error)
	SweepStaleWindows() (int, error)
}

type visitUseCase struct {
	contentRepo persistent.ContentRepository
	redisClient *redis.Client
	cfg         *config.Config
	logger      *logger.Logger
}

// NewVisitUseCase builds the visit counter. redisClient may be nil; rankings
// are then served straight from the database.
func NewVisitUseCase(contentRepo persistent.ContentRepository, redisClient *redis.Client, cfg *config.Config, logger *logger.Logger) VisitUseCase {
	return &visitUseCase{
		contentRepo: contentRepo,
		redisClient: redisClient,
		cfg:         cfg,
		logger:      logger,
	}
}

// RecordVisit applies the counting policy in order: expire the rolling
// window if it is stale, then drop the visit if the same IP was counted
// within the dedup interval, otherwise append the audit row and bump both
// counters in one statement.
func (uc *visitUseCase) RecordVisit(contentID, ip string) (*entity.VisitResult, error) {
	content, err := uc.contentRepo.GetByID(contentID)
	if err != nil {
		return nil, err
	}

	windowCutoff := time.Now().Add(-uc.cfg.VisitWindow)
	if content.UltimoReseteo.Before(windowCutoff) {
		if _, err := uc.contentRepo.ResetWindowIfStale(contentID, windowCutoff); err != nil {
			return nil, err
		}
	}

	if ip != "" {
		seen, err := uc.contentRepo.VisitExistsSince(contentID, ip, time.Now().Add(-uc.cfg.VisitDedupInterval))
		if err != nil {
			return nil, err
		}
		if seen {
			refreshed, err := uc.contentRepo.GetByID(contentID)
			if err != nil {
				return nil, err
			}
			return &entity.VisitResult{
				Counted:              false,
				ContadorVisitas:      refreshed.ContadorVisitas,
				ContadorVisitasTotal: refreshed.ContadorVisitasTotal,
			}, nil
		}
	}

	visit := &entity.Visit{ContenidoID: contentID, Fecha: time.Now(), IPAddress: ip}
	if err := uc.contentRepo.CreateVisit(visit); err != nil {
		return nil, err
	}
	if err := uc.contentRepo.IncrementVisitas(contentID); err != nil {
		return nil, err
	}
	metrics.VisitsCounted.Inc()

	refreshed, err := uc.contentRepo.GetByID(contentID)
	if err != nil {
		return nil, err
	}
	return &entity.VisitResult{
		Counted:              true,
		ContadorVisitas:      refreshed.ContadorVisitas,
		ContadorVisitasTotal: refreshed.ContadorVisitasTotal,
	}, nil
}

func (uc *visitUseCase) MostVisited(limit int) ([]*entity.Content, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return uc.cachedRanking("mas_visitados", limit, uc.contentRepo.MostVisited)
}

func (uc *visitUseCase) MostRead(limit int) ([]*entity.Content, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return uc.cachedRanking("mas_leidos", limit, uc.contentRepo.MostRead)
}

// cachedRanking serves a projection from redis for a minute before going
// back to the database. Cache failures fall through to the query.
func (uc *visitUseCase) cachedRanking(name string, limit int, query func(int) ([]*entity.Content, error)) ([]*entity.Content, error) {
	if uc.redisClient == nil {
		return query(limit)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	key := fmt.Sprintf("rankings:%s:%d", name, limit)
	if cached, err := uc.redisClient.Get(ctx, key).Result(); err == nil {
		var contents []*entity.Content
		if err := json.Unmarshal([]byte(cached), &contents); err == nil {
			return contents, nil
		}
	}

	contents, err := query(limit)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(contents); err == nil {
		if err := uc.redisClient.Set(ctx, key, payload, rankingCacheTTL).Err(); err != nil {
			uc.logger.Warn("Could not cache ranking %s: %v", key, err)
		}
	}
	return contents, nil
}

func (uc *visitUseCase) ResetCounters(contentID string) error {
	return uc.contentRepo.ResetCounters(contentID)
}

// ResetCountersBulk zeroes both counters for every listed content and
// returns how many rows were actually reset. Unknown ids are skipped.
func (uc *visitUseCase) ResetCountersBulk(contentIDs []string) (int, error) {
	reset := 0
	for _, id := range contentIDs {
		if err := uc.contentRepo.ResetCounters(id); err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				continue
			}
			return reset, err
		}
		reset++
	}
	return reset, nil
}

// SweepStaleWindows resets the rolling counter of every content whose window
// expired, so rankings decay even for pages nobody visits anymore.
func (uc *visitUseCase) SweepStaleWindows() (int, error) {
	cutoff := time.Now().Add(-uc.cfg.VisitWindow)
	ids, err := uc.contentRepo.ListStaleWindows(cutoff)
	if err != nil {
		return 0, err
	}

	reset := 0
	for _, id := range ids {
		ok, err := uc.contentRepo.ResetWindowIfStale(id, cutoff)
		if err != nil {
			uc.logger.Warn("Could not reset visit window for %s: %v", id, err)
			continue
		}
		if ok {
			reset++
		}
	}
	if reset > 0 {
		uc.logger.Info("Visit window sweep reset %d counters", reset)
	}
	return reset, nil
}
