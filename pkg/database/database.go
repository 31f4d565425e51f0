package database

import (
	"fmt"
	"linguacert_backend/internal/config"
	"linguacert_backend/internal/model"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.Question{},
		&model.Result{},
		&model.Visit{},
		&model.Schedule{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认管理员账号（仅在空表时插入）
	var count int64
	db.Model(&model.Admin{}).Count(&count)
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("change-me"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		db.Create(&model.Admin{
			Email:    "admin@linguacert.local",
			Password: string(hashed),
		})
	}

	return db, nil
}
