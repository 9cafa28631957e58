package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Saran-k-ece/Forensync/config"
	"github.com/Saran-k-ece/Forensync/models"
)

var instance *gorm.DB

func Connect() (*gorm.DB, error) {
	if instance != nil {
		return instance, nil
	}

	dsn := config.GetDSN()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Surface unique-key violations as gorm.ErrDuplicatedKey so the
		// store can report id collisions as conflicts.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(60 * time.Minute)

	if err := db.AutoMigrate(&models.Evidence{}); err != nil {
		return nil, err
	}

	instance = db
	return instance, nil
}

func GetDB() *gorm.DB {
	if instance == nil {
		log.Fatal("DB not initialized. Call db.Connect() first.")
	}
	return instance
}
