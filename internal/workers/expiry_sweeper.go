package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hostmarket_backend/internal/logger"
	"hostmarket_backend/internal/metrics"
	"hostmarket_backend/internal/repositories"
)

const defaultSweepBatch = 100

// SweepResult - итог одного прохода
type SweepResult struct {
	Scanned int
	Held    int
	Skipped int // строку уже перевели, пока шел проход
	Failed  int
}

func (r *SweepResult) add(o SweepResult) {
	r.Scanned += o.Scanned
	r.Held += o.Held
	r.Skipped += o.Skipped
	r.Failed += o.Failed
}

// expirable - общее у офферов и предложений
type expirable interface {
	FindExpiredPending(db *gorm.DB, before time.Time, limit int) ([]string, error)
	HoldIfPending(db *gorm.DB, id string, at time.Time) (bool, error)
}

type sweepTarget struct {
	entity string
	repo   expirable
}

// ExpirySweeper переводит pending с истекшим replyDeadline в hold.
// Истекшим считается дедлайн раньше начала текущих суток в заданной зоне.
type ExpirySweeper struct {
	db        *gorm.DB
	targets   []sweepTarget
	loc       *time.Location
	batchSize int
	now       func() time.Time
}

func NewExpirySweeper(db *gorm.DB, offers repositories.OfferRepository, proposals repositories.ProposalRepository, loc *time.Location) *ExpirySweeper {
	if loc == nil {
		loc = time.Local
	}
	return &ExpirySweeper{
		db: db,
		targets: []sweepTarget{
			{entity: "offer", repo: offers},
			{entity: "proposal", repo: proposals},
		},
		loc:       loc,
		batchSize: defaultSweepBatch,
		now:       time.Now,
	}
}

// Cutoff - начало сегодняшнего дня в зоне свипера
func (s *ExpirySweeper) Cutoff() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// RunOnce - один полный проход. Повторный запуск ничего не меняет.
func (s *ExpirySweeper) RunOnce(ctx context.Context) SweepResult {
	started := time.Now()
	cutoff := s.Cutoff()
	at := s.now()

	var total SweepResult
	for _, target := range s.targets {
		res, err := s.sweep(ctx, target, cutoff, at)
		total.add(res)

		metrics.RecordSweep(target.entity, "held", res.Held)
		metrics.RecordSweep(target.entity, "skipped", res.Skipped)
		metrics.RecordSweep(target.entity, "failed", res.Failed)
		logger.WorkerLog("expiry_sweeper", "sweep_"+target.entity, err,
			"cutoff", cutoff.Format(time.RFC3339),
			"scanned", res.Scanned,
			"held", res.Held,
			"skipped", res.Skipped,
			"failed", res.Failed,
		)
	}
	metrics.ObserveSweep(time.Since(started))
	return total
}

func (s *ExpirySweeper) sweep(ctx context.Context, target sweepTarget, cutoff, at time.Time) (SweepResult, error) {
	var res SweepResult
	seen := make(map[string]struct{})

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		ids, err := target.repo.FindExpiredPending(s.tx(ctx), cutoff, s.batchSize)
		if err != nil {
			return res, err
		}

		fresh := 0
		held := 0
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			fresh++
			res.Scanned++

			ok, err := target.repo.HoldIfPending(s.tx(ctx), id, at)
			switch {
			case err != nil:
				res.Failed++
				logger.Warn("expiry hold failed", "entity", target.entity, "id", id, "error", err)
			case ok:
				held++
				res.Held++
			default:
				res.Skipped++
			}
		}

		// неудачные строки вернутся в следующей выборке, повторно их не трогаем
		if len(ids) < s.batchSize || fresh == 0 || held == 0 {
			return res, nil
		}
	}
}

func (s *ExpirySweeper) tx(ctx context.Context) *gorm.DB {
	if s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx)
}
