package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"reelvault/internal/config"
	"reelvault/internal/database"
	"reelvault/internal/domain/video"
)

// Demo assets that exist on every Cloudinary account's "demo" cloud.
var demoRecords = []video.Record{
	{Title: "Dog", Description: "A dog running on the beach", PublicID: "dog", OriginalSize: "10485760", CompressedSize: "3145728"},
	{Title: "Elephants", Description: "Elephants walking in the savanna", PublicID: "elephants", OriginalSize: "52428800", CompressedSize: "15728640"},
	{Title: "Sea Turtle", Description: "Sea turtle swimming", PublicID: "sea_turtle", OriginalSize: "20971520", CompressedSize: "7340032"},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	db, err := database.Connect(cfg.DB.URL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer database.Close(db)

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(&video.Video{}); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	repo := video.NewRepository(db)
	ctx := context.Background()
	durations := []float64{13.0, 23.4, 17.9}

	log.Println("Creating demo videos...")
	created := 0
	for i, rec := range demoRecords {
		d := durations[i]
		rec.Duration = &d
		rec.UserID = "demo_user"

		v, err := rec.ToVideo()
		if err != nil {
			log.Fatalf("invalid demo record %q: %v", rec.PublicID, err)
		}
		v.CreatedAt = time.Now().Add(-time.Duration(len(demoRecords)-i) * time.Hour)

		if err := repo.Create(ctx, v); err != nil {
			if errors.Is(err, video.ErrDuplicatePublicID) {
				log.Printf("skip %s: already seeded", rec.PublicID)
				continue
			}
			log.Fatalf("create %s failed: %v", rec.PublicID, err)
		}
		created++
	}

	log.Printf("seed completed: videos=%d", created)
}
