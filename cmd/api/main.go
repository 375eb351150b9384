package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jr777pal/PetNest-India/internal/config"
	"github.com/jr777pal/PetNest-India/internal/domain/catalog"
	"github.com/jr777pal/PetNest-India/internal/domain/model"
	"github.com/jr777pal/PetNest-India/internal/handler"
	"github.com/jr777pal/PetNest-India/internal/infra/db"
	"github.com/jr777pal/PetNest-India/internal/infra/localstore"
	"github.com/jr777pal/PetNest-India/internal/infra/mailer"
	infraRepo "github.com/jr777pal/PetNest-India/internal/infra/repository"
	"github.com/jr777pal/PetNest-India/internal/infra/storage"
	"github.com/jr777pal/PetNest-India/internal/repository"
	"github.com/jr777pal/PetNest-India/internal/server"
	"github.com/jr777pal/PetNest-India/internal/usecase"
	"github.com/jr777pal/PetNest-India/internal/validator"
	"github.com/jr777pal/PetNest-India/internal/wishlist"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	logger := log.New("petnest")
	logger.SetHeader(`{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}"}`)

	//.envは無くてもよい（本番は環境変数）
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Fatalf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	logger.SetLevel(parseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatalf("db migrate: %v", err)
	}
	if err := db.SeedCoupons(gormDB, db.DefaultCoupons); err != nil {
		logger.Fatalf("seed coupons: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	roleRepo := infraRepo.NewUserRoleGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	resetRepo := infraRepo.NewPasswordResetRepository(gormDB)
	petRepo := infraRepo.NewPetGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	couponRepo := infraRepo.NewCouponGormRepository(gormDB)
	adoptionRepo := infraRepo.NewAdoptionRequestGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	bootstrapAdmins(ctx, userRepo, roleRepo, cfg.AdminEmails, logger)

	featured, err := catalog.LoadFeatured()
	if err != nil {
		logger.Fatalf("featured pets: %v", err)
	}

	//お気に入りはローカルSQLite
	if err := os.MkdirAll(filepath.Dir(cfg.WishlistDBPath), 0o755); err != nil {
		logger.Fatalf("wishlist dir: %v", err)
	}
	kv, err := localstore.Open(cfg.WishlistDBPath)
	if err != nil {
		logger.Fatalf("wishlist store: %v", err)
	}
	defer func() { _ = kv.Close() }()

	//画像置き場。バケット未設定なら nil のまま（アップロードURLは503）
	var images usecase.ImageStorage
	if cfg.ImageBucket != "" {
		awsCfg, err := storage.LoadAWSConfig(ctx, cfg.AWSRegion, cfg.S3AccessKey, cfg.S3SecretKey)
		if err != nil {
			logger.Fatalf("aws config: %v", err)
		}
		images = storage.NewS3ImageStorage(awsCfg, storage.S3Options{
			Bucket:        cfg.ImageBucket,
			Region:        cfg.AWSRegion,
			PublicBaseURL: cfg.ImagePublicBaseURL,
			Endpoint:      cfg.S3Endpoint,
		})
	}

	//Validator / Usecase生成
	authValidator := validator.NewAuthValidator(userRepo)
	addressValidator := validator.NewAddressValidator()

	authUC := usecase.NewAuthUsecase(cfg, userRepo, roleRepo, rtRepo, resetRepo, authValidator, mailer.NewLogMailer(logger), logger)
	catalogUC := usecase.NewCatalogUsecase(petRepo, featured, logger)
	wishlistUC := usecase.NewWishlistUsecase(wishlist.New(kv), logger)
	addressUC := usecase.NewAddressUsecase(addressRepo, addressValidator, logger)
	checkoutUC := usecase.NewCheckoutUsecase(txm, couponRepo, featured, addressValidator, logger)
	orderUC := usecase.NewOrderUsecase(orderRepo, logger)
	adoptionUC := usecase.NewAdoptionUsecase(adoptionRepo, logger)
	adminPetUC := usecase.NewAdminPetUsecase(petRepo, txm, images, logger)
	adminStatsUC := usecase.NewAdminStatsUsecase(petRepo, orderRepo, userRepo, logger)
	adminOrderUC := usecase.NewAdminOrderUsecase(txm, logger)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, roleRepo, rtRepo, auditRepo, logger)

	//Handler生成
	e := server.New(cfg, logger)
	server.RegisterRoutes(e, cfg, userRepo, roleRepo, server.Handlers{
		Auth:       handler.NewAuthHandler(authUC, usecase.RefreshTokenTTL, cfg.CookieSecure),
		Pet:        handler.NewPetHandler(catalogUC),
		Wishlist:   handler.NewWishlistHandler(wishlistUC),
		Address:    handler.NewAddressHandler(addressUC),
		Checkout:   handler.NewCheckoutHandler(checkoutUC),
		Order:      handler.NewOrderHandler(orderUC),
		Adoption:   handler.NewAdoptionHandler(adoptionUC),
		AdminPet:   handler.NewAdminPetHandler(adminPetUC, adminStatsUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:  handler.NewAdminUserHandler(adminUserUC),
	})

	//Server起動
	addr := cfg.Port
	if !strings.HasPrefix(addr, ":") {
		addr = ":" + addr
	}
	logger.Infof("listening on %s", addr)
	if err := server.Start(ctx, e, addr); err != nil {
		logger.Fatalf("server: %v", err)
	}
}

// ADMIN_EMAILSのうち登録済みのユーザーにadminを付与
func bootstrapAdmins(ctx context.Context, users repository.UserRepository, roles repository.UserRoleRepository, emails []string, logger *log.Logger) {
	for _, email := range emails {
		u, err := users.FindByEmail(ctx, email)
		if err != nil {
			logger.Warnf("bootstrap admin %s: %v", email, err)
			continue
		}
		if u == nil {
			logger.Warnf("bootstrap admin %s: user not registered yet", email)
			continue
		}
		if err := roles.Grant(ctx, u.ID, model.RoleAdmin); err != nil {
			logger.Warnf("bootstrap admin %s: %v", email, err)
		}
	}
}

func parseLevel(s string) log.Lvl {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return log.DEBUG
	case "WARN":
		return log.WARN
	case "ERROR":
		return log.ERROR
	case "OFF":
		return log.OFF
	default:
		return log.INFO
	}
}
