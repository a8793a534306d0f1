package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/htkhoa/k12-curriculum-backend/models"
)

var DB *gorm.DB

func InitDB() {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbHost, dbUser, dbPass, dbName, dbPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatal("cannot connect to database:", err)
	}

	DB = db

	// Grab *sql.DB to configure connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("cannot get sql.DB from gorm:", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	err = DB.AutoMigrate(
		&models.Subject{},
		&models.Framework{},
		&models.ContentArea{},
		&models.Standard{},
		&models.SubLesson{},
		&models.OfficialStandard{},
		&models.TeachingStrategy{},
		&models.BenchmarkActivity{},
		&models.CommonMisconception{},
		&models.CurriculumDocument{},
		&models.ChatMessage{},
	)
	if err != nil {
		log.Fatal("autoMigrate error: ", err)
	}
	log.Println("postgreSQL connected & migrated successfully!")
}
