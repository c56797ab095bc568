package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "estate-backoffice/internal/adapter/http"
	idemp "estate-backoffice/internal/adapter/middleware"
	"estate-backoffice/internal/adapter/repository/mysql"
	"estate-backoffice/internal/config"
	"estate-backoffice/internal/domain/auth"
	"estate-backoffice/internal/infrastructure/cache"
	"estate-backoffice/internal/infrastructure/db"
	"estate-backoffice/internal/infrastructure/events"
	clientlinkUC "estate-backoffice/internal/usecase/clientlink"
	contractUC "estate-backoffice/internal/usecase/contract"
	stageUC "estate-backoffice/internal/usecase/stage"
)

// allowAll stands in for the host platform's permission oracle. The
// back office deploys this API behind the platform's own auth layer,
// which swaps in its real Authorizer here.
type allowAll struct{}

func (allowAll) Can(context.Context, auth.Capability) bool { return true }

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	var (
		authz = allowAll{}
		sink  = events.NewRedisSink(rdb, cfg.EventChannel)

		contracts = mysql.NewContractRepository(gdb)
		guow      = mysql.NewGormUoW(gdb)

		contractsUsecase = contractUC.NewUsecase(contracts, guow, authz, sink)
		stagesUsecase    = stageUC.NewUsecase(guow, authz, sink)
		linksUsecase     = clientlinkUC.NewUsecase(guow, authz)
	)

	h := httpadp.NewHandler()
	ch := httpadp.NewContractHandler(contractsUsecase)
	sh := httpadp.NewStageHandler(stagesUsecase)
	lh := httpadp.NewLinkHandler(linksUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)
	e.POST("/contracts", ch.CreateContract)
	e.GET("/contracts", ch.SearchContracts)
	e.GET("/contracts/:id", ch.GetContract)
	e.PUT("/contracts/:id", ch.UpdateContract)
	e.DELETE("/contracts/:id", ch.DeleteContract)
	e.POST("/contracts/:id/stages", sh.AddStage)
	e.POST("/contracts/:id/clients", lh.LinkClient)
	e.PUT("/contracts/:id/clients", lh.ReplaceLinks)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
