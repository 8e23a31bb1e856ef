package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"reserva-admin/internal/config"
	"reserva-admin/internal/database"
	"reserva-admin/internal/handler"
	"reserva-admin/internal/middleware"
	"reserva-admin/internal/queue"
	"reserva-admin/internal/repository"
	"reserva-admin/internal/router"
	"reserva-admin/internal/service"
)

func main() {
	// Load .env when present; in containers the variables arrive from the
	// environment and the file is absent.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables rate limiting and caching.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	restaurantes := repository.NewRestauranteRepo(db)
	eventos := repository.NewEventoRepo(db)
	reservas := repository.NewReservaRepo(db)
	marcacoes := repository.NewMarcacaoRepo(db)
	regras := repository.NewRegraRepo(db)
	dashboard := repository.NewDashboardRepo(db)

	associacao := service.NewAssociacaoService(
		db, marcacoes, eventos, reservas, restaurantes, regras,
		func(ctx context.Context, ev queue.MarcacaoCriadaEvent) error {
			return queue.PublishMarcacaoCriada(ctx, ev)
		},
	)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterAdmin(e, router.AdminHandlers{
		Restaurantes: handler.NewRestauranteHandler(restaurantes),
		Eventos:      handler.NewEventoHandler(eventos, associacao),
		Reservas:     handler.NewReservaHandler(reservas),
		Marcacoes:    handler.NewMarcacaoHandler(marcacoes, associacao),
		Dashboard:    handler.NewDashboardHandler(dashboard),
		Regras:       handler.NewRegraHandler(regras),
	}, cfg.JWTSecret,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)

	// Consumer mirrors created associations into logs/marcacoes.log and
	// reconnects on broker failure.
	go func() {
		if err := queue.StartMarcacaoConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
