package main

import (
	"log"

	"github.com/joho/godotenv"

	"pricelens/adapters/excel"
	appsvc "pricelens/app"
	"pricelens/internal/config"
	"pricelens/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	service := appsvc.NewCompareService(excel.NewDataReader(), excel.NewReportWriter())

	server, err := ui.NewApp(appConfig, service)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("🚗 Starting PriceLens server on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
