package database

import (
	"fmt"
	"strconv"

	"github.com/ecoradom4/cine-backend/config"
	"github.com/ecoradom4/cine-backend/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	p := config.ConfigDefault("DB_PORT", "5432")
	port, err := strconv.ParseUint(p, 10, 32)

	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		panic("failed to connect database")
	}

	fmt.Println("Connection Opened to Database")
	DB.AutoMigrate(
		&model.User{},
		&model.Branch{},
		&model.RoomType{},
		&model.SeatType{},
		&model.Room{},
		&model.Movie{},
		&model.Showtime{},
		&model.SeatReservation{},
		&model.PricingRule{},
		&model.Promotion{},
		&model.Invoice{},
		&model.Booking{},
	)
	fmt.Println("Database Migrated")

	// khởi tạo dữ liệu
	SeedData(DB)
}
