package main

import (
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer"
	"shareit/app/gateway"
	"shareit/config"
	"shareit/util/httpx"
)

func main() {

	cfg := config.LoadGateway()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	g := &gateway.Controller{
		ServerURL: cfg.ServerURL,
		Client:    httpx.Client(),
		V:         validator.New(),
		Log:       log,
	}

	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e)

	gateway.Register(e, g)

	log.Info("starting gateway", "port", cfg.Port, "server_url", cfg.ServerURL)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
