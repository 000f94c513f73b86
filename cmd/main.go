package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ferrastock/config"
	"ferrastock/internal/pkg/cache"
	"ferrastock/internal/pkg/database"
	"ferrastock/internal/pkg/logger"
	"ferrastock/internal/pkg/token"

	"ferrastock/internal/api/dashboard"
	"ferrastock/internal/api/item"
	"ferrastock/internal/api/stock"
	"ferrastock/internal/api/supplier"
	"ferrastock/internal/api/user"
	"ferrastock/internal/domain"
	"ferrastock/internal/repository/dashboardrepo"
	"ferrastock/internal/repository/itemrepo"
	"ferrastock/internal/repository/stockrepo"
	"ferrastock/internal/repository/supplierrepo"
	"ferrastock/internal/repository/userrepo"
	"ferrastock/internal/router"
	"ferrastock/internal/service/dashboardservice"
	"ferrastock/internal/service/itemservice"
	"ferrastock/internal/service/stockservice"
	"ferrastock/internal/service/supplierservice"
	"ferrastock/internal/service/userservice"
)

// @title Ferrastock API
// @version 1.0
// @description API de controle de estoque de ferramentas.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 0. .env é opcional: em Docker as variáveis vêm do ambiente.
	envErr := godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuração inválida: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewLogger(cfg.LogLevel, cfg.Environment)
	if envErr != nil {
		log.Warn("Arquivo .env não encontrado; usando apenas o ambiente do sistema.", nil)
	}
	log.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "db_driver": cfg.DBDriver})

	// 1. Infraestrutura
	db, err := database.NewPostgresDB(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	cacheClient := newCache(cfg, log)

	// 2. Repository -> Service -> Handler
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	userSvc := userservice.NewService(userRepo, tokenSvc, log)

	supplierRepo := supplierrepo.NewSupplierRepository(db, cfg.DBTimeout, log)
	supplierSvc := supplierservice.NewService(supplierRepo, log)

	itemRepo := itemrepo.NewItemRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	itemSvc := itemservice.NewService(itemRepo, log)

	stockRepo := stockrepo.NewStockRepository(db, cfg.DBTimeout, cfg.DBLockTimeout, log)
	stockSvc := stockservice.NewService(stockRepo, stockRepo, itemRepo, log)

	dashboardRepo := dashboardrepo.NewDashboardRepository(db, cfg.DBTimeout, log)
	dashboardSvc := dashboardservice.NewService(dashboardRepo, stockRepo, cfg.RecentMovementsLimit, log)

	if err := ensureAdmin(cfg, userSvc, log); err != nil {
		log.Fatal("Falha ao garantir o administrador inicial.", err)
	}

	// 3. Roteador e servidor
	handler := router.NewRouter(router.Handlers{
		Stock:     stock.NewHandler(stockSvc, log),
		Item:      item.NewHandler(itemSvc, log),
		Supplier:  supplier.NewHandler(supplierSvc, log),
		Dashboard: dashboard.NewHandler(dashboardSvc, log),
		User:      user.NewHandler(userSvc, log),
	}, router.Config{
		Resolver:        tokenSvc,
		Cache:           cacheClient,
		RateLimitMax:    cfg.RateLimitMaxRequests,
		RateLimitPeriod: cfg.RateLimitPeriod,
		Logger:          log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Execução e Graceful Shutdown
	if err := listenAndServe(server, log); err != nil {
		log.Error("Servidor encerrado com erro.", err)
	}

	if closer, ok := cacheClient.(io.Closer); ok {
		closer.Close()
	}
	if err := db.Close(); err != nil {
		log.Error("Falha ao fechar o banco de dados.", err)
	}
	log.Info("Servidor encerrado com sucesso.", nil)
}

// newCache conecta ao Redis; sem REDIS_ADDR, ou com o Redis fora do ar, a API segue sem cache.
func newCache(cfg *config.Config, log logger.Logger) cache.Client {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR vazio; cache e rate limit desativados.", nil)
		return cache.NoopClient{}
	}
	client, err := cache.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		log.Warn("Redis indisponível; seguindo sem cache.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		return cache.NoopClient{}
	}
	log.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": cfg.RedisAddr})
	return client
}

func ensureAdmin(cfg *config.Config, svc *userservice.UserService, log logger.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
	defer cancel()

	created, err := svc.EnsureAdmin(ctx, domain.UserRegistration{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return err
	}
	if created {
		log.Info("Administrador inicial criado.", map[string]interface{}{"email": cfg.AdminEmail})
	}
	return nil
}

func listenAndServe(server *http.Server, log logger.Logger) error {
	shutdownCtx, shutdownCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(func() error {
		log.Info("Servidor ferrastock ouvindo na porta", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("falha ao iniciar o servidor: %w", err)
		}
		return nil
	})

	errGrp.Go(func() error {
		<-shutdownCtx.Done()
		log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("desligamento forçado: %w", err)
		}
		return nil
	})

	return errGrp.Wait()
}
