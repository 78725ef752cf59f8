package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ecoradom4/cine-backend/helper"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// buildSeatMap sinh sơ đồ ghế: các hàng cuối là VIP
func buildSeatMap(rows []string, columns int, vipRows int) model.SeatMap {
	sm := model.SeatMap{}
	for i, r := range rows {
		seatType := "standard"
		if i >= len(rows)-vipRows {
			seatType = "vip"
		}
		for c := 1; c <= columns; c++ {
			sm[fmt.Sprintf("%s%d", r, c)] = model.SeatSpec{Type: seatType}
		}
	}
	return sm
}

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cn"), 10)
	hashPassword := string(bytes)
	if err != nil {
		hashPassword = "123456cn"
	}
	users := []model.User{
		{Name: "Administration", Email: "admin@cine.local", Password: hashPassword, Role: "admin"},
	}
	for _, user := range users {
		if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed data for user:", user.Email, "error:", err)
		}
	}

	seatTypes := []model.SeatType{
		{Name: "standard", PriceMultiplier: 1},
		{Name: "vip", PriceMultiplier: 1.5},
		{Name: "couple", PriceMultiplier: 2},
	}
	for _, st := range seatTypes {
		if err := db.Where(model.SeatType{Name: st.Name}).FirstOrCreate(&st).Error; err != nil {
			log.Println("failed to seed seat type:", st.Name, "error:", err)
		}
	}

	roomTypes := []model.RoomType{
		{Name: "Standard", BasePrice: 45, Description: "Phòng chiếu thường"},
		{Name: "VIP", BasePrice: 70, Description: "Phòng chiếu VIP"},
		{Name: "IMAX", BasePrice: 90, Description: "Màn hình IMAX"},
		{Name: "4DX", BasePrice: 110, Description: "Ghế chuyển động 4DX"},
	}
	for _, rt := range roomTypes {
		if err := db.Where(model.RoomType{Name: rt.Name}).FirstOrCreate(&rt).Error; err != nil {
			log.Println("failed to seed room type:", rt.Name, "error:", err)
		}
	}

	branch := model.Branch{Name: "Cine Central", Address: "12 Av. Principal", City: "Guatemala", Phone: "2222-0000"}
	if err := db.Where(model.Branch{Name: branch.Name}).First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			branch.Slug = helper.GenerateUniqueBranchSlug(db, branch.Name)
			if err := db.Create(&branch).Error; err != nil {
				log.Println("failed to seed branch:", err)
			}
		} else {
			log.Println("failed to seed branch:", err)
		}
	}

	var standardType, imaxType model.RoomType
	db.Where("name = ?", "Standard").First(&standardType)
	db.Where("name = ?", "IMAX").First(&imaxType)

	rooms := []model.Room{
		{
			Name:       "Sala 1",
			Capacity:   80,
			SeatMap:    buildSeatMap([]string{"A", "B", "C", "D", "E", "F", "G", "H"}, 10, 2),
			RoomTypeId: standardType.ID,
			BranchId:   branch.ID,
		},
		{
			Name:       "Sala IMAX",
			Capacity:   60,
			SeatMap:    buildSeatMap([]string{"A", "B", "C", "D", "E", "F"}, 10, 2),
			RoomTypeId: imaxType.ID,
			BranchId:   branch.ID,
		},
	}
	for _, room := range rooms {
		if err := db.Where(model.Room{Name: room.Name, BranchId: branch.ID}).FirstOrCreate(&room).Error; err != nil {
			log.Println("failed to seed room:", room.Name, "error:", err)
		}
	}

	movies := []model.Movie{
		{Title: "Interstellar", Genre: "Sci-Fi", Duration: 169, Rating: "PG-13", ReleaseYear: 2014},
		{Title: "Coco", Genre: "Animation", Duration: 105, Rating: "PG", ReleaseYear: 2017},
	}
	for _, movie := range movies {
		if err := db.Where(model.Movie{Title: movie.Title}).First(&movie).Error; err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("failed to seed movie:", movie.Title, "error:", err)
			continue
		}
		movie.Slug = helper.GenerateUniqueMovieSlug(db, movie.Title)
		if err := db.Create(&movie).Error; err != nil {
			log.Println("failed to seed movie:", movie.Title, "error:", err)
		}
	}

	var seededRooms []model.Room
	db.Preload("RoomType").Where("branch_id = ?", branch.ID).Find(&seededRooms)
	var seededMovies model.Movies
	db.Find(&seededMovies)

	if len(seededRooms) > 0 && len(seededMovies) > 0 {
		var count int64
		db.Model(&model.Showtime{}).Count(&count)
		if count == 0 {
			base := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)
			for i, movie := range seededMovies {
				room := seededRooms[i%len(seededRooms)]
				start := base.Add(time.Duration(i*3) * time.Hour)
				showtime := model.Showtime{
					PublicCode:     "SHW-" + uuid.New().String()[:8],
					StartTime:      start,
					EndTime:        start.Add(time.Duration(movie.Duration) * time.Minute),
					Status:         "scheduled",
					Format:         "2D",
					AudioType:      "subtitulada",
					SeatsAvailable: room.Capacity,
					MovieId:        movie.ID,
					RoomId:         room.ID,
				}
				if err := db.Create(&showtime).Error; err != nil {
					log.Println("failed to seed showtime:", err)
				}
			}
		}
	}

	weekend := 6
	weekendMultiplier := 1.2
	rules := []model.PricingRule{
		{Name: "Cuối tuần phụ thu", RoomTypeId: standardType.ID, DayOfWeek: &weekend, Multiplier: &weekendMultiplier, IsActive: true},
	}
	for _, rule := range rules {
		if err := db.Where(model.PricingRule{Name: rule.Name}).FirstOrCreate(&rule).Error; err != nil {
			log.Println("failed to seed pricing rule:", rule.Name, "error:", err)
		}
	}

	maxDiscount := 30.0
	promotions := model.Promotions{
		{
			Code:        "10OFF",
			Name:        "Giảm 10%",
			Type:        "percentage",
			Value:       10,
			MinPurchase: 50,
			MaxDiscount: &maxDiscount,
			ValidFrom:   time.Now().UTC().AddDate(0, -1, 0),
			ValidUntil:  time.Now().UTC().AddDate(0, 6, 0),
			UsageLimit:  0,
			IsActive:    true,
		},
		{
			Code:       "2X1MARTES",
			Name:       "Mua 1 tặng 1 thứ Ba",
			Type:       "bogo",
			Value:      0,
			ValidFrom:  time.Now().UTC().AddDate(0, -1, 0),
			ValidUntil: time.Now().UTC().AddDate(0, 3, 0),
			UsageLimit: 500,
			IsActive:   true,
		},
	}
	for _, promo := range promotions {
		if err := db.Where(model.Promotion{Code: promo.Code}).FirstOrCreate(&promo).Error; err != nil {
			log.Println("failed to seed promotion:", promo.Code, "error:", err)
		}
	}
}
