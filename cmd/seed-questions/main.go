package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/istadem2077/turanmath-backend/internal/config"
	"github.com/istadem2077/turanmath-backend/internal/database"
	"github.com/istadem2077/turanmath-backend/internal/logger"
	"github.com/istadem2077/turanmath-backend/internal/model"
	"github.com/istadem2077/turanmath-backend/internal/repository"
)

// seedQuestion mirrors model.Question but keeps the correct option key
// readable from JSON, which the API model deliberately hides.
type seedQuestion struct {
	Category         string                 `json:"category"`
	Difficulty       int                    `json:"difficulty"`
	Content          string                 `json:"content"`
	Options          []model.QuestionOption `json:"options"`
	CorrectOptionKey string                 `json:"correct_option_key"`
}

func main() {
	var bankFile string
	flag.StringVar(&bankFile, "file", "questions.json", "Path to question bank JSON file")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	raw, err := os.ReadFile(bankFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", bankFile).Msg("Failed to read question bank")
	}

	var seeds []seedQuestion
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse question bank")
	}
	if len(seeds) == 0 {
		fmt.Println("Question bank is empty, nothing to do")
		return
	}

	for i, s := range seeds {
		if s.Category == "" || s.Content == "" || s.CorrectOptionKey == "" || len(s.Options) < 2 {
			log.Fatal().Int("index", i).Msg("Invalid question entry: category, content, correct_option_key and at least 2 options are required")
		}
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)

	questions := make([]model.Question, 0, len(seeds))
	for _, s := range seeds {
		questions = append(questions, model.Question{
			Category:         s.Category,
			Difficulty:       s.Difficulty,
			Content:          s.Content,
			Options:          s.Options,
			CorrectOptionKey: s.CorrectOptionKey,
		})
	}

	fmt.Printf("=== Seeding %d Questions ===\n", len(questions))

	if err := questionRepo.CreateBulk(ctx, questions); err != nil {
		log.Fatal().Err(err).Msg("Failed to insert questions")
	}

	fmt.Printf("\nSeed completed! Inserted %d questions.\n", len(questions))
}
