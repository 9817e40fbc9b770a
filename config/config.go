package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vrent/models"
)

var (
	DB         *gorm.DB
	Cloudinary *cloudinary.Cloudinary
	Ctx        = context.Background()
)

func LoadEnv() error {
	return godotenv.Load()
}

func ConnectDB() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		panic("DATABASE_URL is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}

	if err := db.AutoMigrate(&models.User{}, &models.Vehicle{}, &models.Review{}, &models.Booking{}); err != nil {
		panic("Failed to migrate tables: " + err.Error())
	}

	DB = db
}

func ConnectRedis() (*redis.Client, error) {
	dbIndex := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		dbIndex = parsed
	}

	client := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbIndex,
	})

	if err := client.Ping(Ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

func ConnectCloudinary() {
	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		panic("Failed to connect to Cloudinary: " + err.Error())
	}
	Cloudinary = cld
}
