package main

import (
	"time"

	"ecshop/internal/config"
	"ecshop/internal/domain/model"
	"ecshop/internal/handler"
	"ecshop/internal/infra/db"
	infraRepo "ecshop/internal/infra/repository"
	"ecshop/internal/server"
	"ecshop/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(user model.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config load failed")
	}

	if cfg.GoEnv == "prod" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	//金額は数値のままJSONに出す
	decimal.MarshalJSONWithoutQuotes = true

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logrus.WithError(err).Fatal("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Announcement{},
	); err != nil {
		logrus.WithError(err).Fatal("migrate failed")
	}
	if err := db.Seed(gormDB); err != nil {
		logrus.WithError(err).Fatal("seed failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	announcementRepo := infraRepo.NewAnnouncementGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 24 * time.Hour,
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, hasher, issuer, clock)
	productUC := usecase.NewProductUsecase(productRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	announcementUC := usecase.NewAnnouncementUsecase(announcementRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo)
	dashboardUC := usecase.NewDashboardUsecase(txManager, userRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		Order:        handler.NewOrderHandler(orderUC),
		Announcement: handler.NewAnnouncementHandler(announcementUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:    handler.NewAdminUserHandler(adminUserUC, dashboardUC),
	}

	//Server起動
	e := server.New(cfg)
	server.RegisterRoutes(e, cfg, handlers)

	addr := ":" + cfg.Port
	logrus.WithField("addr", addr).Info("starting api server")
	if err := e.Start(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
