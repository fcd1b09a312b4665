package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	tenderdomain "github.com/smallbiznis/tenderbase/internal/tender/domain"
	"github.com/stretchr/testify/require"
)

func summaries(margins ...int64) []tenderdomain.TenderSummary {
	out := make([]tenderdomain.TenderSummary, 0, len(margins))
	for i, m := range margins {
		out = append(out, tenderdomain.TenderSummary{
			ID:          string(rune('a' + i)),
			Client:      "client",
			TotalMargin: decimal.NewFromInt(m),
		})
	}
	return out
}

func TestTotalAndAverage(t *testing.T) {
	ts := summaries(100, -50, 0, 200, -10)

	require.True(t, TotalMargin(ts).Equal(decimal.NewFromInt(240)))
	require.True(t, AverageMargin(ts).Equal(decimal.NewFromInt(48)))
}

func TestAverageEmpty(t *testing.T) {
	require.True(t, AverageMargin(nil).IsZero())
	require.True(t, TotalMargin(nil).IsZero())
}

func TestMarginDistribution(t *testing.T) {
	ts := summaries(100, -50, 0, 200, -10)

	d := MarginDistribution(ts)
	require.Equal(t, 2, d.Positive)
	require.Equal(t, 2, d.Negative)
	require.Equal(t, 1, d.Zero)
	require.Equal(t, len(ts), d.Positive+d.Negative+d.Zero)
	require.True(t, d.PositiveValue.Equal(decimal.NewFromInt(300)))
	require.True(t, d.NegativeValue.Equal(decimal.NewFromInt(-60)))
}

func TestMarginDistributionEmpty(t *testing.T) {
	d := MarginDistribution(nil)
	require.True(t, d.PositiveValue.IsZero())
	require.True(t, d.NegativeValue.IsZero())
}

func TestTotalProducts(t *testing.T) {
	ts := summaries(100, -50, 0)
	for i := range ts {
		ts[i].ProductCount = i + 1
	}

	require.Equal(t, 6, TotalProducts(ts))
	require.Equal(t, 0, TotalProducts(nil))
}

func TestPercentageOf(t *testing.T) {
	require.True(t, PercentageOf(2, 5).Equal(decimal.NewFromInt(40)))
	require.True(t, PercentageOf(1, 3).Round(1).Equal(decimal.RequireFromString("33.3")))
	require.True(t, PercentageOf(3, 0).IsZero())
}

func TestTopPerforming(t *testing.T) {
	ts := summaries(100, -50, 0, 200, -10)

	top := TopPerforming(ts, 3)
	require.Len(t, top, 3)
	require.True(t, top[0].TotalMargin.Equal(decimal.NewFromInt(200)))
	require.True(t, top[1].TotalMargin.Equal(decimal.NewFromInt(100)))
	require.True(t, top[2].TotalMargin.Equal(decimal.NewFromInt(0)))
}

func TestWorstPerforming(t *testing.T) {
	ts := summaries(100, -50, 0, 200, -10)

	worst := WorstPerforming(ts, 2)
	require.Len(t, worst, 2)
	require.True(t, worst[0].TotalMargin.Equal(decimal.NewFromInt(-50)))
	require.True(t, worst[1].TotalMargin.Equal(decimal.NewFromInt(-10)))
}

func TestRankingDefaultSize(t *testing.T) {
	ts := summaries(1, 2, 3, 4, 5, 6, 7)

	require.Len(t, TopPerforming(ts, 0), 5)
	require.Len(t, WorstPerforming(ts, -1), 5)
}

func TestRankingShorterThanK(t *testing.T) {
	ts := summaries(5, -3)

	require.Len(t, TopPerforming(ts, 10), 2)
}

func TestRankingTiesKeepInputOrder(t *testing.T) {
	ts := summaries(50, 50, 50)

	top := TopPerforming(ts, 2)
	require.Equal(t, ts[0].ID, top[0].ID)
	require.Equal(t, ts[1].ID, top[1].ID)
}

func TestRankingDoesNotMutateInput(t *testing.T) {
	ts := summaries(1, 3, 2)

	_ = TopPerforming(ts, 3)
	require.True(t, ts[0].TotalMargin.Equal(decimal.NewFromInt(1)))
	require.True(t, ts[1].TotalMargin.Equal(decimal.NewFromInt(3)))
}

func TestMaxAbsoluteMargin(t *testing.T) {
	ts := summaries(-200, 50, 150)

	require.True(t, MaxAbsoluteMargin(ts).Equal(decimal.NewFromInt(200)))
	require.True(t, MaxAbsoluteMargin(nil).IsZero())
}

func TestBarWidth(t *testing.T) {
	maxAbs := decimal.NewFromInt(200)

	require.True(t, BarWidth(decimal.NewFromInt(-200), maxAbs).Equal(decimal.NewFromInt(100)))
	require.True(t, BarWidth(decimal.NewFromInt(50), maxAbs).Equal(decimal.NewFromInt(25)))
	require.True(t, BarWidth(decimal.NewFromInt(150), maxAbs).Equal(decimal.NewFromInt(75)))
	require.True(t, BarWidth(decimal.NewFromInt(10), decimal.Zero).IsZero())
}
