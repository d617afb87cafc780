package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tcfprep/backend/internal/config"
	"github.com/tcfprep/backend/internal/database"
	"github.com/tcfprep/backend/internal/logger"
	"github.com/tcfprep/backend/internal/model"
	"github.com/tcfprep/backend/internal/repository"
)

// seedEntry mirrors the catalog JSON export format. Entries without an
// explicit id get one derived from source_test and ordinal.
type seedEntry struct {
	ID           string              `json:"id"`
	Skill        string              `json:"skill"`
	Weight       int                 `json:"weight"`
	Alternatives []model.Alternative `json:"alternatives"`
	MediaRef     string              `json:"media_ref"`
	Passage      string              `json:"passage"`
	SourceTest   string              `json:"source_test"`
	Ordinal      int                 `json:"ordinal"`
}

func main() {
	var seedFile string
	flag.StringVar(&seedFile, "file", "catalog.json", "Path to catalog JSON file")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", seedFile).Msg("Failed to read catalog file")
	}

	var entries []seedEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse catalog file")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	catalogRepo := repository.NewCatalogRepository(pool)

	fmt.Printf("=== Seeding %d Questions ===\n", len(entries))

	successCount := 0
	for i, entry := range entries {
		skill, ok := model.ParseSkill(entry.Skill)
		if !ok {
			fmt.Printf("Entry %d: unknown skill %q, skipped\n", i+1, entry.Skill)
			continue
		}

		id := entry.ID
		if id == "" {
			id = model.DeriveID(entry.SourceTest, entry.Ordinal)
		}

		q := &model.Question{
			ID:           id,
			Skill:        skill,
			Weight:       entry.Weight,
			Alternatives: entry.Alternatives,
			MediaRef:     entry.MediaRef,
			Passage:      entry.Passage,
			SourceTest:   entry.SourceTest,
			Ordinal:      entry.Ordinal,
		}
		if err := q.Validate(); err != nil {
			fmt.Printf("Entry %d: %v, skipped\n", i+1, err)
			continue
		}

		if err := catalogRepo.Insert(ctx, q); err != nil {
			fmt.Printf("Error inserting question %s: %v\n", q.ID, err)
		} else {
			successCount++
			if successCount%50 == 0 {
				fmt.Printf("Inserted %d questions...\n", successCount)
			}
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d questions.\n", successCount, len(entries))
}
