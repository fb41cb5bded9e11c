package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/udyamworks/billbook/internal/config"
	"github.com/udyamworks/billbook/internal/migration"
	"github.com/udyamworks/billbook/internal/server"
	"github.com/udyamworks/billbook/pkg/db"
	"github.com/udyamworks/billbook/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
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
