package database

import (
	"campus_queue/constants"
	"campus_queue/model"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cq"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456cq"
	}
	users := []model.User{
		{Username: "Administration", Password: HashPassword, IsActive: true, Role: constants.ROLE_ADMIN},
	}

	for _, user := range users {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.User{Username: user.Username}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed data for user:", user.Username, "error:", err)
		}
	}

	// Requester cố định cho quick queue tại quầy
	walkInPriority := false
	walkIns := []any{
		&model.NewEnrollee{QrId: constants.WalkInEnrolleeQrId, Name: "Walk-in Enrollee", Priority: &walkInPriority},
		&model.Guest{QrId: constants.WalkInGuestQrId, Name: "Walk-in Guest", Priority: &walkInPriority},
	}
	for _, w := range walkIns {
		switch v := w.(type) {
		case *model.NewEnrollee:
			if err := db.Where(model.NewEnrollee{QrId: v.QrId}).FirstOrCreate(v).Error; err != nil {
				log.Println("failed to seed walk-in enrollee:", err)
			}
		case *model.Guest:
			if err := db.Where(model.Guest{QrId: v.QrId}).FirstOrCreate(v).Error; err != nil {
				log.Println("failed to seed walk-in guest:", err)
			}
		}
	}
}
