package main

import (
	"fmt"
	"net"
	"strconv"

	pchttp "github.com/fwojciec/parsecompare/http"
)

// Config returns the startup configuration described by the flags.
func (c *ServeCmd) Config() Config {
	port := c.Port
	if port < 0 {
		port = DefaultPort
	}
	return Config{Port: port, StaticDir: c.StaticDir}
}

// Run executes the serve command. It blocks until deps.Ctx is done.
func (c *ServeCmd) Run(deps *Dependencies) error {
	cfg := c.Config()

	server := pchttp.NewServer()
	server.Addr = net.JoinHostPort("", strconv.Itoa(cfg.Port))
	server.StaticDir = cfg.StaticDir
	server.ComparisonService = deps.Comparer
	server.Logger = deps.Logger

	if err := server.Open(); err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", cfg.Port, err)
	}
	deps.Logger.Info("parser comparison server running", "url", server.URL())

	<-deps.Ctx.Done()

	deps.Logger.Info("shutting down")
	return server.Close()
}
