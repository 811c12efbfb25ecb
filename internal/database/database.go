package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"selta_back_end/internal/config"
	"selta_back_end/internal/models"
)

// Deps bundles every external connection the handlers need. It is built once
// at startup and passed down explicitly; there is no package-level state.
type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Elastic *elasticsearch.Client
	MinIO   *minio.Client
}

func Connect(cfg config.Config) (*Deps, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := connectPostgres(cfg)
	if err != nil {
		return nil, err
	}

	deps := &Deps{DB: db}

	deps.Redis, err = connectRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Elasticsearch and MinIO are optional in development; the handlers that
	// need them degrade with a logged warning instead.
	deps.Elastic = connectElastic(cfg)
	deps.MinIO = connectMinIO(ctx, cfg)

	log.Println("✅ All datastores connected")
	return deps, nil
}

// Close releases the connections that have an explicit shutdown.
func (d *Deps) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			log.Println("⚠️ Redis close:", err)
		}
	}
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Println("⚠️ Postgres close:", err)
			}
		}
	}
	log.Println("🔌 Datastore connections closed")
}

func connectPostgres(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError:       true,
		FullSaveAssociations: false,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.UserAddress{},
		&models.Order{},
		&models.OrderItem{},
		&models.Banner{},
		&models.Testimonial{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	log.Println("✅ Connected to Postgres")
	return db, nil
}

func connectRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.Println("✅ Connected to Redis")
	return client, nil
}

func connectElastic(cfg config.Config) *elasticsearch.Client {
	if cfg.ElasticURL == "" {
		log.Println("⚠️ ELASTIC_URL not set, product search disabled")
		return nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
		Username:  cfg.ElasticUser,
		Password:  cfg.ElasticPassword,
	})
	if err != nil {
		log.Println("⚠️ Elasticsearch client error:", err)
		return nil
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch unreachable:", err)
		return nil
	}
	defer res.Body.Close()

	log.Println("✅ Connected to Elasticsearch")
	return client
}

func connectMinIO(ctx context.Context, cfg config.Config) *minio.Client {
	if cfg.MinioEndpoint == "" {
		log.Println("⚠️ MINIO_ENDPOINT not set, image upload disabled")
		return nil
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		log.Println("⚠️ MinIO connection failed:", err)
		return nil
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		log.Println("⚠️ MinIO bucket check failed:", err)
		return nil
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			log.Println("⚠️ MinIO bucket creation failed:", err)
			return nil
		}
		log.Println("🪣 Bucket created:", cfg.MinioBucket)
	}

	log.Println("✅ Connected to MinIO:", cfg.MinioEndpoint)
	return client
}
