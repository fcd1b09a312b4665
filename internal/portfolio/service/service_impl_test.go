package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/tenderbase/internal/clock"
	"github.com/smallbiznis/tenderbase/internal/config"
	orderdomain "github.com/smallbiznis/tenderbase/internal/order/domain"
	orderrepository "github.com/smallbiznis/tenderbase/internal/order/repository"
	productdomain "github.com/smallbiznis/tenderbase/internal/product/domain"
	productrepository "github.com/smallbiznis/tenderbase/internal/product/repository"
	tenderdomain "github.com/smallbiznis/tenderbase/internal/tender/domain"
	tenderrepository "github.com/smallbiznis/tenderbase/internal/tender/repository"
	tenderservice "github.com/smallbiznis/tenderbase/internal/tender/service"
	"github.com/smallbiznis/tenderbase/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	svc  *Service
	db   *gorm.DB
	node *snowflake.Node
}

func newTestEnv(t *testing.T, reporting config.ReportingConfig) *testEnv {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&productdomain.Product{},
		&tenderdomain.Tender{},
		&orderdomain.Order{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	tenders := tenderservice.New(tenderservice.Params{
		DB:          dbConn,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clock.NewSystemClock(),
		Repo:        tenderrepository.Provide(),
		OrderRepo:   orderrepository.Provide(),
		ProductRepo: productrepository.Provide(),
	})

	svc := New(Params{
		Log:       zap.NewNop(),
		Clock:     clock.NewSystemClock(),
		Tenders:   tenders,
		Reporting: config.NewStaticReportingConfigHolder(reporting),
	}).(*Service)

	return &testEnv{svc: svc, db: dbConn, node: node}
}

// seedTender creates one tender with a single order whose margin is exactly
// the given amount (unit margin of `margin`, quantity 1).
func (e *testEnv) seedTender(t *testing.T, client string, margin int64) {
	t.Helper()
	ctx := context.Background()

	p := &productdomain.Product{
		ID:            e.node.Generate().Int64(),
		Name:          client,
		SKU:           client,
		UnitSalePrice: decimal.NewFromInt(1000 + margin),
		UnitCost:      decimal.NewFromInt(1000),
	}
	require.NoError(t, productrepository.Provide().Create(ctx, e.db, p))

	tender := &tenderdomain.Tender{ID: e.node.Generate().Int64(), Client: client}
	require.NoError(t, tenderrepository.Provide().Create(ctx, e.db, tender))

	o := &orderdomain.Order{
		ID:              e.node.Generate().Int64(),
		TenderID:        tender.ID,
		ProductID:       p.ID,
		AwardedQuantity: 1,
	}
	require.NoError(t, orderrepository.Provide().Create(ctx, e.db, o))
}

func TestReportEmptyPortfolio(t *testing.T) {
	env := newTestEnv(t, config.DefaultReportingConfig())

	report, err := env.svc.Report(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, report.TenderCount)
	require.True(t, report.TotalMargin.IsZero())
	require.True(t, report.AverageMargin.IsZero())
	require.Empty(t, report.Top)
	require.Empty(t, report.Worst)
	require.False(t, report.HasLosses)
}

func TestReportAggregates(t *testing.T) {
	env := newTestEnv(t, config.DefaultReportingConfig())

	for _, tc := range []struct {
		client string
		margin int64
	}{
		{"Alpha", 100},
		{"Beta", -50},
		{"Gamma", 0},
		{"Delta", 200},
		{"Epsilon", -10},
	} {
		env.seedTender(t, tc.client, tc.margin)
	}

	report, err := env.svc.Report(context.Background())
	require.NoError(t, err)

	require.Equal(t, 5, report.TenderCount)
	require.Equal(t, 5, report.ProductCount)
	require.True(t, report.TotalMargin.Equal(decimal.NewFromInt(240)))
	require.True(t, report.AverageMargin.Equal(decimal.NewFromInt(48)))

	require.Equal(t, 2, report.Distribution.Profitable)
	require.Equal(t, 2, report.Distribution.Losing)
	require.Equal(t, 1, report.Distribution.BreakEven)
	require.True(t, report.Distribution.ProfitablePercent.Equal(decimal.NewFromInt(40)))
	require.True(t, report.Distribution.BreakEvenPercent.Equal(decimal.NewFromInt(20)))
	require.True(t, report.Distribution.ProfitableValue.Equal(decimal.NewFromInt(300)))
	require.True(t, report.Distribution.LosingValue.Equal(decimal.NewFromInt(-60)))

	require.True(t, report.HasLosses)
	require.Len(t, report.Top, 5)
	require.Equal(t, "Delta", report.Top[0].Client)
	require.Equal(t, "Beta", report.Worst[0].Client)

	// Bars share one scale: the largest |margin| across both rankings.
	require.True(t, report.Top[0].BarWidth.Equal(decimal.NewFromInt(100)))
	require.True(t, report.Worst[0].BarWidth.Equal(decimal.NewFromInt(25)))
}

func TestReportRankingSizeFromConfig(t *testing.T) {
	env := newTestEnv(t, config.ReportingConfig{RankingSize: 2, PercentPrecision: 0})

	for i, margin := range []int64{10, 20, 30, 40} {
		env.seedTender(t, string(rune('A'+i)), margin)
	}

	report, err := env.svc.Report(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Top, 2)
	require.Len(t, report.Worst, 2)
	require.False(t, report.HasLosses)
}

func TestReportPercentPrecision(t *testing.T) {
	env := newTestEnv(t, config.ReportingConfig{RankingSize: 5, PercentPrecision: 1})

	env.seedTender(t, "Alpha", 10)
	env.seedTender(t, "Beta", 20)
	env.seedTender(t, "Gamma", -5)

	report, err := env.svc.Report(context.Background())
	require.NoError(t, err)
	require.True(t, report.Distribution.ProfitablePercent.Equal(decimal.RequireFromString("66.7")),
		"got %s", report.Distribution.ProfitablePercent)
	require.True(t, report.Distribution.LosingPercent.Equal(decimal.RequireFromString("33.3")))
}
