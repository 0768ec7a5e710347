package config

import (
	"log"

	"campus-keyledger/internal/adapters/persistence/models"
	"campus-keyledger/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedReferenceData seeds the lookup tables and the initial admin account.
// Safe to run on every startup; existing rows are left alone.
func SeedReferenceData(db *gorm.DB) error {
	if err := seedRoomTypes(db); err != nil {
		return err
	}
	if err := seedFaculties(db); err != nil {
		return err
	}
	if err := seedWorkplaces(db); err != nil {
		return err
	}
	if err := seedAuthorizationOrigins(db); err != nil {
		return err
	}
	if err := seedAdminUser(db); err != nil {
		return err
	}

	log.Println("Reference data seeded")
	return nil
}

func seedRoomTypes(db *gorm.DB) error {
	roomTypes := []models.RoomType{
		{Name: "office"},
		{Name: "laboratory"},
		{Name: "lecture hall"},
		{Name: "seminar room"},
		{Name: "storage"},
	}

	for _, rt := range roomTypes {
		if err := db.Where("name = ?", rt.Name).FirstOrCreate(&models.RoomType{}, rt).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedFaculties(db *gorm.DB) error {
	faculties := []models.Faculty{
		{Abbreviation: "FIT", Name: "Faculty of Information Technology"},
		{Abbreviation: "FEE", Name: "Faculty of Electrical Engineering"},
		{Abbreviation: "FME", Name: "Faculty of Mechanical Engineering"},
	}

	for _, f := range faculties {
		if err := db.Where("abbreviation = ?", f.Abbreviation).FirstOrCreate(&models.Faculty{}, f).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedWorkplaces(db *gorm.DB) error {
	workplaces := []models.Workplace{
		{Abbreviation: "DCS", Name: "Department of Computer Systems"},
		{Abbreviation: "DIS", Name: "Department of Information Systems"},
		{Abbreviation: "FAC", Name: "Facility Management"},
	}

	for _, w := range workplaces {
		if err := db.Where("abbreviation = ?", w.Abbreviation).FirstOrCreate(&models.Workplace{}, w).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedAuthorizationOrigins seeds origins in ascending trust order. The
// prioritized authorization ranking orders by origin id descending, so
// later rows outrank earlier ones.
func seedAuthorizationOrigins(db *gorm.DB) error {
	origins := []models.AuthorizationOrigin{
		{ID: models.OriginAdmin, Name: "admin"},
		{ID: models.OriginDeansWrit, Name: "dean's office"},
		{ID: models.OriginRectorate, Name: "rectorate"},
	}

	for _, o := range origins {
		if err := db.Where("id = ?", o.ID).FirstOrCreate(&models.AuthorizationOrigin{}, o).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedAdminUser creates the initial superuser when no user exists yet.
// The credentials come from ADMIN_USERNAME / ADMIN_PASSWORD.
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := getEnv("ADMIN_USERNAME", "admin")
	plaintext := getEnv("ADMIN_PASSWORD", "")
	if plaintext == "" {
		log.Println("Warning: no users exist and ADMIN_PASSWORD is unset, skipping admin seed")
		return nil
	}

	hashed, err := password.Hash(plaintext)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:    username,
		Password:    hashed,
		IsSuperuser: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded initial superuser %q", username)
	return nil
}
