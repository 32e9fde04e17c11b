package main

import (
	"context"
	"net/http"

	"app/internal/cart"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/middleware"
	"app/internal/payment"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.PaymentSetting{},
	); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	settingRepo := infraRepo.NewPaymentSettingGormRepository(gormDB)

	//カートのKV（Redisが無ければインメモリ）
	var kv cart.KV
	if cfg.RedisAddr != "" {
		kv = cart.NewRedisKV(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		logger.Warn("REDIS_ADDR not set, carts will not survive restarts")
		kv = cart.NewMemoryKV()
	}
	carts := cart.NewManager(kv, logger)

	//既知プロバイダの設定行が無ければ無効状態で用意しておく
	if err := payment.EnsureDefaultSettings(context.Background(), settingRepo, logger); err != nil {
		logger.Fatal("payment settings seed failed", zap.Error(err))
	}

	//決済プロバイダは起動時に設定行から組み立てる（設定不備はここで落ちる）
	registry, err := payment.BuildRegistry(context.Background(), settingRepo, logger)
	if err != nil {
		logger.Fatal("payment settings invalid", zap.Error(err))
	}
	if len(registry.Methods()) == 0 {
		logger.Warn("no payment method enabled")
	}

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(carts, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(registry, orderRepo, cfg.Currency, logger)
	orderUC := usecase.NewOrderUsecase(orderRepo, logger)

	//Handler生成
	e := echo.New()
	e.HideBanner = true

	//決済エンドポイントはブラウザから直接叩くので寛容なCORS（OPTIONS込み）
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, handler.SessionHeader},
	}))
	e.Use(middleware.OptionalAuthJWT(cfg))

	handler.NewProductHandler(productUC).RegisterRoutes(e)
	handler.NewCartHandler(cartUC).RegisterRoutes(e)
	handler.NewPaymentHandler(checkoutUC).RegisterRoutes(e)
	handler.NewOrderHandler(orderUC).RegisterRoutes(e)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	logger.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
