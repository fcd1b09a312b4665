package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/tenderbase/internal/clock"
	"github.com/smallbiznis/tenderbase/internal/order/domain"
	"github.com/smallbiznis/tenderbase/internal/order/repository"
	productdomain "github.com/smallbiznis/tenderbase/internal/product/domain"
	productrepository "github.com/smallbiznis/tenderbase/internal/product/repository"
	tenderdomain "github.com/smallbiznis/tenderbase/internal/tender/domain"
	tenderrepository "github.com/smallbiznis/tenderbase/internal/tender/repository"
	"github.com/smallbiznis/tenderbase/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	svc       domain.Service
	db        *gorm.DB
	node      *snowflake.Node
	tenderID  string
	productID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&productdomain.Product{},
		&tenderdomain.Tender{},
		&domain.Order{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	ctx := context.Background()
	tender := &tenderdomain.Tender{ID: node.Generate().Int64(), Client: "City Council"}
	require.NoError(t, tenderrepository.Provide().Create(ctx, dbConn, tender))

	product := &productdomain.Product{
		ID:            node.Generate().Int64(),
		Name:          "Office Chair",
		SKU:           "CHAIR-001",
		UnitSalePrice: decimal.NewFromInt(150),
		UnitCost:      decimal.NewFromInt(100),
	}
	require.NoError(t, productrepository.Provide().Create(ctx, dbConn, product))

	svc := New(Params{
		DB:          dbConn,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clock.NewSystemClock(),
		Repo:        repository.Provide(),
		TenderRepo:  tenderrepository.Provide(),
		ProductRepo: productrepository.Provide(),
	})

	return &testEnv{
		svc:       svc,
		db:        dbConn,
		node:      node,
		tenderID:  snowflake.ID(tender.ID).String(),
		productID: snowflake.ID(product.ID).String(),
	}
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Create(context.Background(), domain.CreateRequest{
		TenderID:        env.tenderID,
		ProductID:       env.productID,
		AwardedQuantity: 10,
	})
	require.NoError(t, err)
	require.Equal(t, env.tenderID, resp.TenderID)
	require.Equal(t, int64(10), resp.AwardedQuantity)
}

func TestCreateOrderInvalidQuantity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, quantity := range []int64{0, -5} {
		_, err := env.svc.Create(ctx, domain.CreateRequest{
			TenderID:        env.tenderID,
			ProductID:       env.productID,
			AwardedQuantity: quantity,
		})
		require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

func TestCreateOrderUnknownReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	missing := snowflake.ID(env.node.Generate().Int64()).String()

	_, err := env.svc.Create(ctx, domain.CreateRequest{
		TenderID:        missing,
		ProductID:       env.productID,
		AwardedQuantity: 1,
	})
	require.ErrorIs(t, err, domain.ErrTenderNotFound)

	_, err = env.svc.Create(ctx, domain.CreateRequest{
		TenderID:        env.tenderID,
		ProductID:       missing,
		AwardedQuantity: 1,
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateOrderAllowsDuplicateProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := env.svc.Create(ctx, domain.CreateRequest{
			TenderID:        env.tenderID,
			ProductID:       env.productID,
			AwardedQuantity: 5,
		})
		require.NoError(t, err)
	}

	orders, err := env.svc.List(ctx, domain.ListRequest{TenderID: env.tenderID})
	require.NoError(t, err)
	require.Len(t, orders, 2)
}

func TestUpdateOrderQuantity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, domain.CreateRequest{
		TenderID:        env.tenderID,
		ProductID:       env.productID,
		AwardedQuantity: 10,
	})
	require.NoError(t, err)

	bad := int64(0)
	_, err = env.svc.Update(ctx, domain.UpdateRequest{ID: created.ID, AwardedQuantity: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	next := int64(25)
	updated, err := env.svc.Update(ctx, domain.UpdateRequest{ID: created.ID, AwardedQuantity: &next})
	require.NoError(t, err)
	require.Equal(t, int64(25), updated.AwardedQuantity)
}

func TestDeleteOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, domain.CreateRequest{
		TenderID:        env.tenderID,
		ProductID:       env.productID,
		AwardedQuantity: 10,
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(ctx, created.ID))

	_, err = env.svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
