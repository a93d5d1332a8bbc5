package app

import (
	"log"

	"gorm.io/gorm"

	"loanledger/config"
	"loanledger/db"
)

// App 聚合各依赖
type App struct {
	Config config.Config
	DB     *gorm.DB
	Repo   *db.Repo
}

func MustNew() *App {
	cfg := config.FromEnv()

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	log.Printf("store connected (%s)", cfg.Driver)

	return &App{Config: cfg, DB: conn, Repo: db.NewRepo(conn)}
}

func (a *App) Close() {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
