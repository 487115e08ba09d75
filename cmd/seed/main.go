package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"servicedir/internal/database"
	"servicedir/internal/domain"
	"servicedir/internal/modules/catalog"
	"servicedir/internal/repository"
)

func main() {
	db, err := database.Connect("directory.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM service_items")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM categories")

	ctx := context.Background()
	categoryRepo := repository.NewCategoryRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	log.Println("Creating categories...")
	categories := []struct {
		name, icon string
	}{
		{"Stomatologie", "🦷"},
		{"Service Auto", "🚗"},
		{"Frizerii & Saloane", "💇"},
		{"Curățenie", "🧹"},
		{"Instalații", "🔧"},
		{"Electricieni", "⚡"},
	}
	catIDs := map[string]string{}
	for _, c := range categories {
		cat := domain.Category{
			ID:       uuid.NewString(),
			Name:     c.name,
			Slug:     catalog.Slugify(c.name),
			Icon:     c.icon,
			IsActive: true,
		}
		if err := categoryRepo.Create(ctx, &cat); err != nil {
			log.Fatal("category seed failed:", err)
		}
		catIDs[cat.Slug] = cat.ID
	}

	log.Println("Creating listings...")
	now := time.Now()
	listings := []domain.Service{
		{
			Name:        "Dent Smile Studio",
			CategoryID:  catIDs["stomatologie"],
			City:        "București",
			Address:     "Str. Victoriei 123, Sector 1",
			Phone:       "0721234567",
			Email:       "contact@dentsmile.ro",
			Website:     "https://dentsmile.ro",
			Description: "Clinică stomatologică modernă.",
			IsPremium:   true,
			IsVerified:  true,
			IsActive:    true,
			Items: []domain.ServiceItem{
				{ID: uuid.NewString(), Name: "Consultație", Price: "100 lei", Duration: "30 min"},
				{ID: uuid.NewString(), Name: "Detartraj", Price: "250 lei", Duration: "45 min"},
			},
		},
		{
			Name:        "Auto Expert Service",
			CategoryID:  catIDs["service-auto"],
			City:        "Cluj-Napoca",
			Address:     "Str. Fabricii 45",
			Phone:       "0722345678",
			Email:       "service@autoexpert.ro",
			Description: "Service auto complet.",
			IsPremium:   true,
			IsVerified:  true,
			IsActive:    true,
		},
		{
			Name:        "Elegant Hair Studio",
			CategoryID:  catIDs["frizerii-saloane"],
			City:        "Timișoara",
			Address:     "Bd. Revoluției 78",
			Phone:       "0723456789",
			Email:       "hello@eleganthair.ro",
			Description: "Salon premium.",
			IsPremium:   false,
			IsVerified:  true,
			IsActive:    true,
		},
	}

	ids := make([]string, 0, len(listings))
	for i := range listings {
		svc := &listings[i]
		svc.ID = uuid.NewString()
		svc.Slug = catalog.Slugify(svc.Name)
		svc.Schedule = domain.DefaultSchedule()
		svc.CreatedAt = now
		svc.UpdatedAt = now
		if err := serviceRepo.Create(ctx, svc); err != nil {
			log.Fatal("listing seed failed:", err)
		}
		ids = append(ids, svc.ID)
	}

	log.Println("Creating reviews...")
	for _, rv := range []domain.Review{
		{ServiceID: ids[0], UserName: "Maria P.", Rating: 5, Text: "Personal foarte amabil."},
		{ServiceID: ids[0], UserName: "Andrei I.", Rating: 4, Text: "Programare rapidă."},
		{ServiceID: ids[1], UserName: "Vlad C.", Rating: 5, Text: "Diagnoză corectă din prima."},
	} {
		rv.ID = uuid.NewString()
		rv.UserID = domain.GuestUserID
		rv.CreatedAt = now
		if _, err := reviewRepo.CreateAndRecompute(ctx, &rv); err != nil {
			log.Fatal("review seed failed:", err)
		}
	}

	log.Println("Refreshing category counts...")
	if err := categoryRepo.RecountAll(ctx); err != nil {
		log.Fatal("recount failed:", err)
	}

	log.Println("Done.")
}
