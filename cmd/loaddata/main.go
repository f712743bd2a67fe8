package main

import (
	"database/sql"
	"flag"
	"log"

	"github.com/ecomai/backend-go/internal/config"
	"github.com/ecomai/backend-go/internal/loader"

	_ "github.com/lib/pq" // PostgreSQL driver
)

func main() {
	var dataDir = flag.String("data", "", "Directory containing CSV files (defaults to configured loader.data_dir)")
	flag.Parse()

	// 初始化配置
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dir := config.AppConfig.Loader.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}

	// 连接数据库
	db, err := sql.Open("postgres", config.AppConfig.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Printf("Loading CSV data from %s", dir)
	if err := loader.New(db).LoadAll(dir); err != nil {
		log.Fatalf("Data load failed: %v", err)
	}
	log.Println("Data load completed successfully")
}
