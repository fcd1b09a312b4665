package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/tenderbase/internal/clock"
	"github.com/smallbiznis/tenderbase/internal/config"
	"github.com/smallbiznis/tenderbase/internal/portfolio/domain"
	"github.com/smallbiznis/tenderbase/internal/portfolio/stats"
	tenderdomain "github.com/smallbiznis/tenderbase/internal/tender/domain"
	"github.com/smallbiznis/tenderbase/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// pageSize matches the list endpoint's hard cap so the report walks the same
// pages a client would.
const pageSize = pagination.MaxLimit

type Params struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	Tenders   tenderdomain.Service
	Reporting *config.ReportingConfigHolder
}

type Service struct {
	log       *zap.Logger
	clock     clock.Clock
	tenders   tenderdomain.Service
	reporting *config.ReportingConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("portfolio.service"),
		clock:     p.Clock,
		tenders:   p.Tenders,
		reporting: p.Reporting,
	}
}

func (s *Service) Report(ctx context.Context) (*domain.Report, error) {
	summaries, err := s.collectSummaries(ctx)
	if err != nil {
		return nil, err
	}

	cfg := s.reporting.Get()
	dist := stats.MarginDistribution(summaries)
	total := len(summaries)

	top := stats.TopPerforming(summaries, cfg.RankingSize)
	worst := stats.WorstPerforming(summaries, cfg.RankingSize)
	maxAbs := stats.MaxAbsoluteMargin(append(append([]tenderdomain.TenderSummary{}, top...), worst...))

	report := &domain.Report{
		TenderCount:   total,
		ProductCount:  stats.TotalProducts(summaries),
		TotalMargin:   stats.TotalMargin(summaries),
		AverageMargin: stats.AverageMargin(summaries),
		Distribution: domain.DistributionReport{
			Profitable:        dist.Positive,
			ProfitablePercent: roundPercent(stats.PercentageOf(dist.Positive, total), cfg.PercentPrecision),
			ProfitableValue:   dist.PositiveValue,
			Losing:            dist.Negative,
			LosingPercent:     roundPercent(stats.PercentageOf(dist.Negative, total), cfg.PercentPrecision),
			LosingValue:       dist.NegativeValue,
			BreakEven:         dist.Zero,
			BreakEvenPercent:  roundPercent(stats.PercentageOf(dist.Zero, total), cfg.PercentPrecision),
		},
		Top:         rankedRows(top, maxAbs),
		Worst:       rankedRows(worst, maxAbs),
		HasLosses:   dist.Negative > 0,
		GeneratedAt: s.clock.Now(),
	}

	s.log.Debug("portfolio report generated",
		zap.Int("tender_count", report.TenderCount),
		zap.String("total_margin", report.TotalMargin.String()),
	)
	return report, nil
}

func (s *Service) collectSummaries(ctx context.Context) ([]tenderdomain.TenderSummary, error) {
	var all []tenderdomain.TenderSummary
	for skip := 0; ; skip += pageSize {
		page, err := s.tenders.ListSummaries(ctx, tenderdomain.ListRequest{
			Pagination: pagination.Pagination{Skip: skip, Limit: pageSize},
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

func rankedRows(tenders []tenderdomain.TenderSummary, maxAbs decimal.Decimal) []domain.RankedTender {
	rows := make([]domain.RankedTender, 0, len(tenders))
	for _, t := range tenders {
		rows = append(rows, domain.RankedTender{
			ID:          t.ID,
			Client:      t.Client,
			AwardDate:   t.AwardDate,
			TotalMargin: t.TotalMargin,
			BarWidth:    stats.BarWidth(t.TotalMargin, maxAbs),
		})
	}
	return rows
}

func roundPercent(pct decimal.Decimal, precision int32) decimal.Decimal {
	return pct.Round(precision)
}
