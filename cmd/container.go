package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chalkhire/chalkboard/listings/job"
	"github.com/chalkhire/chalkboard/listings/job/jobapi"
	"github.com/chalkhire/chalkboard/listings/job/jobinfra"
	"github.com/chalkhire/chalkboard/listings/job/jobsrv"
	"github.com/chalkhire/chalkboard/listings/school/schoolapi"
	"github.com/chalkhire/chalkboard/listings/school/schoolinfra"
	"github.com/chalkhire/chalkboard/listings/school/schoolsrv"
	"github.com/chalkhire/chalkboard/pkg/fsx"
	"github.com/chalkhire/chalkboard/pkg/fsx/fsxs3"
	"github.com/chalkhire/chalkboard/pkg/iam/auth"
	"github.com/chalkhire/chalkboard/pkg/logx"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/panjf2000/ants/v2"
)

const facetCacheTTL = 60 * time.Second

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	WorkerPool *ants.Pool

	// Services
	JobService    *jobsrv.JobService
	SchoolService *schoolsrv.SchoolService

	// API Handlers
	JobHandlers    *jobapi.Handlers
	SchoolHandlers *schoolapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

// Close releases long-lived resources
func (c *Container) Close() {
	if c.WorkerPool != nil {
		c.WorkerPool.Release()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")

	// 4. Worker Pool for result enrichment
	poolSize := 32
	if raw := os.Getenv("ENRICH_POOL_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			poolSize = n
		}
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		logx.Fatalf("Failed to create worker pool: %v", err)
	}
	c.WorkerPool = pool

	// 5. Auth Middleware
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}
	c.AuthMiddleware = auth.NewTokenMiddleware(jwtSecret)
}

func (c *Container) initServices() {
	// --- Repositories ---
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	schoolRepo := schoolinfra.NewPostgresSchoolRepository(c.DB)

	var facetCache job.FacetCache
	if c.Redis != nil {
		facetCache = jobinfra.NewRedisFacetCache(c.Redis, facetCacheTTL)
	}

	// --- Domain Services ---
	c.JobService = jobsrv.NewJobService(jobRepo, schoolRepo, facetCache, c.WorkerPool)
	c.SchoolService = schoolsrv.NewSchoolService(schoolRepo, c.FileSystem)

	// --- Handlers ---
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.SchoolHandlers = schoolapi.NewHandlers(c.SchoolService)
}
