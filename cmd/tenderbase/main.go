package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tenderbase/internal/clock"
	"github.com/smallbiznis/tenderbase/internal/config"
	"github.com/smallbiznis/tenderbase/internal/migration"
	"github.com/smallbiznis/tenderbase/internal/observability"
	"github.com/smallbiznis/tenderbase/internal/seed"
	"github.com/smallbiznis/tenderbase/internal/server"
	"github.com/smallbiznis/tenderbase/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		seed.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
