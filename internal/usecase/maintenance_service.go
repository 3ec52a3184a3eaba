package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/statsrecord/stats-api/internal/domain/teamstats"
	"github.com/statsrecord/stats-api/internal/platform/logging"
)

const (
	defaultRecomputeWorkers = 4
	maxRecomputeWorkers     = 16
)

type RecomputeInput struct {
	// TeamID and SeasonID narrow the repair to one scope; both empty means
	// every (team, season) pair with stats rows.
	TeamID     string
	SeasonID   string
	MaxWorkers int
}

type RecomputeTaskResult struct {
	TeamID     string `json:"teamId"`
	SeasonID   string `json:"seasonId"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

type RecomputeResult struct {
	TaskCount    int                   `json:"taskCount"`
	WorkerCount  int                   `json:"workerCount"`
	SuccessCount int                   `json:"successCount"`
	FailedCount  int                   `json:"failedCount"`
	Tasks        []RecomputeTaskResult `json:"tasks"`
}

// MaintenanceService re-runs aggregate recomputation across stored team
// stats. It exists to repair drift after manual data surgery; normal writes
// keep totals consistent on their own.
type MaintenanceService struct {
	statsRepo teamstats.Repository
	logger    *logging.Logger
}

func NewMaintenanceService(statsRepo teamstats.Repository, logger *logging.Logger) *MaintenanceService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MaintenanceService{
		statsRepo: statsRepo,
		logger:    logger,
	}
}

func (s *MaintenanceService) RecomputeTeamTotals(ctx context.Context, input RecomputeInput) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "MaintenanceService.RecomputeTeamTotals")
	defer span.End()

	scopes, err := s.resolveScopes(ctx, input)
	if err != nil {
		return RecomputeResult{}, err
	}

	workerCount := normalizeRecomputeWorkerCount(input.MaxWorkers, len(scopes))
	result := RecomputeResult{
		TaskCount:   len(scopes),
		WorkerCount: workerCount,
		Tasks:       make([]RecomputeTaskResult, 0, len(scopes)),
	}
	if len(scopes) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan RecomputeTaskResult, len(scopes))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, scope := range scopes {
		scope := scope
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RecomputeTaskResult{
				TeamID:   scope.TeamID,
				SeasonID: scope.SeasonID,
				Status:   "success",
			}

			if err := s.statsRepo.Recompute(ctx, scope); err != nil {
				row.Status = "failed"
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			workers.Done()
			return RecomputeResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].TeamID != result.Tasks[j].TeamID {
			return result.Tasks[i].TeamID < result.Tasks[j].TeamID
		}
		return result.Tasks[i].SeasonID < result.Tasks[j].SeasonID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "team totals recompute finished",
		"task_count", result.TaskCount, "success", result.SuccessCount, "failed", result.FailedCount)
	return result, nil
}

func (s *MaintenanceService) resolveScopes(ctx context.Context, input RecomputeInput) ([]teamstats.TeamSeason, error) {
	if input.TeamID != "" && input.SeasonID != "" {
		return []teamstats.TeamSeason{{TeamID: input.TeamID, SeasonID: input.SeasonID}}, nil
	}

	all, err := s.statsRepo.ListTeamSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team seasons: %w", err)
	}

	if input.TeamID == "" && input.SeasonID == "" {
		return all, nil
	}

	scopes := make([]teamstats.TeamSeason, 0, len(all))
	for _, scope := range all {
		if input.TeamID != "" && scope.TeamID != input.TeamID {
			continue
		}
		if input.SeasonID != "" && scope.SeasonID != input.SeasonID {
			continue
		}
		scopes = append(scopes, scope)
	}
	return scopes, nil
}

func normalizeRecomputeWorkerCount(requested, taskCount int) int {
	count := requested
	if count <= 0 {
		count = defaultRecomputeWorkers
	}
	if count > maxRecomputeWorkers {
		count = maxRecomputeWorkers
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	if count < 1 {
		count = 1
	}
	return count
}
