package handlers

import (
	"log"

	"github.com/jmoiron/sqlx"

	"shopline/internal/config"
	"shopline/internal/repos"
	"shopline/internal/services"
	"shopline/internal/storage"
)

type Deps struct {
	UserHandler    *UserHandler
	ProductHandler *ProductHandler
	OrderHandler   *OrderHandler
	UploadHandler  *UploadHandler
	Auth           *services.AuthService
}

func NewDeps(db *sqlx.DB, cfg config.Config) (*Deps, error) {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := services.NewAuthService(userRepo, []byte(cfg.JWTSecret))
	catalogSvc := services.NewCatalogService(prodRepo, reviewRepo)
	orderSvc := services.NewOrderService(orderRepo)

	disk, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	var s3 storage.Store
	if cfg.S3Bucket != "" {
		s3, err = storage.NewS3Store(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			return nil, err
		}
	} else {
		log.Printf("[uploads] S3_BUCKET not set, /api/uploads/s3 disabled")
	}

	return &Deps{
		UserHandler:    &UserHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc},
		UploadHandler:  &UploadHandler{Disk: disk, S3: s3},
		Auth:           authSvc,
	}, nil
}
