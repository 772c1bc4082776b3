// Command seed_materials loads study-material chunks from a JSON file into
// the material_chunks table. The file holds one entry per subject/unit with
// its ordered chunk texts:
//
//	[
//	  {"subject_id": 1, "unit_id": 2, "chunks": ["...", "..."]}
//	]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"dcet-prep/internal/config"
	"dcet-prep/internal/database"
	"dcet-prep/internal/logger"
	"dcet-prep/internal/repository"

	"go.uber.org/zap"
)

type seedEntry struct {
	SubjectID int64    `json:"subject_id"`
	UnitID    int64    `json:"unit_id"`
	Chunks    []string `json:"chunks"`
}

func main() {
	seedFile := flag.String("file", "configs/seed_data/materials.json", "path to the seed file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	raw, err := os.ReadFile(*seedFile)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFile), zap.Error(err))
	}

	var entries []seedEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatal("Failed to parse seed file", zap.String("path", *seedFile), zap.Error(err))
	}

	materialRepo := repository.NewSQLXMaterialRepository(db)

	total := 0
	for _, entry := range entries {
		if len(entry.Chunks) == 0 {
			continue
		}
		if err := materialRepo.SaveChunks(ctx, entry.SubjectID, entry.UnitID, entry.Chunks); err != nil {
			log.Fatal("Failed to save material chunks",
				zap.Int64("subject_id", entry.SubjectID),
				zap.Int64("unit_id", entry.UnitID),
				zap.Error(err))
		}
		total += len(entry.Chunks)
		log.Info("Seeded material chunks",
			zap.Int64("subject_id", entry.SubjectID),
			zap.Int64("unit_id", entry.UnitID),
			zap.Int("chunks", len(entry.Chunks)))
	}

	log.Info("Seeding completed", zap.Int("total_chunks", total))
}
