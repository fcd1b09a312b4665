// Package seed loads a small demo catalog so a fresh install has data to
// explore. Seeding is idempotent: rows are keyed by SKU and client name and
// never duplicated on restart.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/tenderbase/internal/clock"
	orderdomain "github.com/smallbiznis/tenderbase/internal/order/domain"
	productdomain "github.com/smallbiznis/tenderbase/internal/product/domain"
	tenderdomain "github.com/smallbiznis/tenderbase/internal/tender/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sampleProduct struct {
	name  string
	sku   string
	price int64
	cost  int64
}

type sampleOrder struct {
	sku      string
	quantity int64
}

type sampleTender struct {
	client string
	orders []sampleOrder
}

var sampleProducts = []sampleProduct{
	{name: "Office Chair", sku: "CHAIR-001", price: 150, cost: 100},
	{name: "Laptop", sku: "LAPTOP-001", price: 1200, cost: 800},
	{name: "Desk", sku: "DESK-001", price: 300, cost: 200},
}

var sampleTenders = []sampleTender{
	{
		client: "Ministry of Education",
		orders: []sampleOrder{
			{sku: "CHAIR-001", quantity: 100},
			{sku: "DESK-001", quantity: 50},
		},
	},
	{
		client: "Department of Health",
		orders: []sampleOrder{
			{sku: "LAPTOP-001", quantity: 25},
		},
	},
	{
		client: "City Council",
		orders: []sampleOrder{
			{sku: "CHAIR-001", quantity: 40},
			{sku: "LAPTOP-001", quantity: 10},
			{sku: "DESK-001", quantity: 20},
		},
	},
}

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Seeder struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

func New(p Params) *Seeder {
	return &Seeder{
		db:    p.DB,
		log:   p.Log.Named("seed"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

var Module = fx.Module("seed",
	fx.Provide(New),
)

// Run inserts the sample catalog, skipping anything already present.
func (s *Seeder) Run(ctx context.Context) error {
	if s.db == nil {
		return errors.New("seed database handle is required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := s.ensureProducts(ctx, tx)
		if err != nil {
			return err
		}

		for _, sample := range sampleTenders {
			if err := s.ensureTender(ctx, tx, sample, products); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Seeder) ensureProducts(ctx context.Context, tx *gorm.DB) (map[string]int64, error) {
	bySKU := make(map[string]int64, len(sampleProducts))
	now := s.clock.Now()

	for _, sample := range sampleProducts {
		var existing productdomain.Product
		err := tx.WithContext(ctx).
			Where("sku = ?", sample.sku).
			Limit(1).
			Find(&existing).Error
		if err != nil {
			return nil, err
		}
		if existing.ID != 0 {
			bySKU[sample.sku] = existing.ID
			continue
		}

		p := productdomain.Product{
			ID:            s.genID.Generate().Int64(),
			Name:          sample.name,
			SKU:           sample.sku,
			UnitSalePrice: decimal.NewFromInt(sample.price),
			UnitCost:      decimal.NewFromInt(sample.cost),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.WithContext(ctx).Create(&p).Error; err != nil {
			return nil, err
		}
		bySKU[sample.sku] = p.ID
		s.log.Info("seeded product", zap.String("sku", sample.sku))
	}
	return bySKU, nil
}

func (s *Seeder) ensureTender(ctx context.Context, tx *gorm.DB, sample sampleTender, products map[string]int64) error {
	var existing tenderdomain.Tender
	err := tx.WithContext(ctx).
		Where("client = ?", sample.client).
		Limit(1).
		Find(&existing).Error
	if err != nil {
		return err
	}
	if existing.ID != 0 {
		return nil
	}

	now := s.clock.Now()
	t := tenderdomain.Tender{
		ID:        s.genID.Generate().Int64(),
		Client:    sample.client,
		AwardDate: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&t).Error; err != nil {
		return err
	}

	for _, line := range sample.orders {
		productID, ok := products[line.sku]
		if !ok {
			continue
		}
		o := orderdomain.Order{
			ID:              s.genID.Generate().Int64(),
			TenderID:        t.ID,
			ProductID:       productID,
			AwardedQuantity: line.quantity,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.WithContext(ctx).Create(&o).Error; err != nil {
			return err
		}
	}

	s.log.Info("seeded tender", zap.String("client", sample.client), zap.Int("orders", len(sample.orders)))
	return nil
}
