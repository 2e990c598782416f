package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/lib/pq"

	"price-alerts/internal/infrastructure/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "組態檔路徑")
	dir := flag.String("dir", "db/migrations", "migration 檔案目錄")
	flag.Parse()

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		log.Fatalf("讀取組態失敗: %v", err)
	}
	if cfg.DB.DSN == "" {
		log.Fatal("未設定 DB_DSN，無法執行 migration")
	}

	files, err := filepath.Glob(filepath.Join(*dir, "*.sql"))
	if err != nil {
		log.Fatalf("列舉 migration 檔案失敗: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("目錄 %s 中沒有 migration 檔案", *dir)
	}
	sort.Strings(files)

	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		log.Fatalf("連線資料庫失敗: %v", err)
	}
	defer db.Close()

	for _, file := range files {
		log.Printf("執行 migration: %s", file)
		script, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("讀取 %s 失敗: %v", file, err)
		}
		if _, err := db.Exec(string(script)); err != nil {
			log.Fatalf("執行 %s 失敗: %v", file, err)
		}
	}
	log.Println("Migration 完成")
}
