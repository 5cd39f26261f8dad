package main

import (
	"log"

	"github.com/familyfit/internal/config"
	"github.com/familyfit/internal/db"
	"github.com/familyfit/internal/router"
)

func main() {
	cfg := config.Load()

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 可选的管理员引导账号
	if err := db.EnsureAdmin(cfg.RootAdminUserName, cfg.RootAdminPassword); err != nil {
		log.Fatalf("failed to ensure admin user: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg, db.DB)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
