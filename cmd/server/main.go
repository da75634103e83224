package main

import (
	"github.com/rankwise/semgraph/internal/server"
	"github.com/rankwise/semgraph/internal/util"
	"github.com/rankwise/semgraph/pkg/logger"
	"github.com/rankwise/semgraph/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
