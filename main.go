package main

import (
	"os"

	"vrent/config"
	_ "vrent/docs"
	"vrent/routes"

	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Vehicle Rental API
// @version 1.0
// @description REST API for the vehicle-rental marketplace.
// @BasePath /api/v1
func main() {
	router := gin.Default()

	if err := config.LoadEnv(); err != nil {
		println("No .env file found, relying on the environment")
	}

	config.ConnectDB()

	config.ConnectCloudinary()

	redisCli, err := config.ConnectRedis()
	if err != nil {
		panic("Failed to connect to Redis!")
	}

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}

	router.Use(cors.New(configCors))

	routes.SetupRoutes(router, config.DB, redisCli, config.Cloudinary)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}
	router.Run(":" + port)
}
