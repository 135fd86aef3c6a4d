package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"wikiquiz/app"
	"wikiquiz/config"
	"wikiquiz/logging"
	"wikiquiz/models"
	"wikiquiz/services"

	"go.uber.org/zap"
)

// seedhistory generates a quiz for every URL given as an argument, or one per
// line on stdin, and stores it in the configured history.
func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	urls := os.Args[1:]
	if len(urls) == 0 {
		urls, err = readURLs(os.Stdin)
		if err != nil {
			logger.Fatalf("Failed to read URLs from stdin: %v", err)
		}
	}
	if len(urls) == 0 {
		logger.Fatalf("No URLs provided")
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg, logger, services.WithDelay(0))
	if err != nil {
		logger.Fatalf("Failed to initialize services: %v", err)
	}
	defer application.Close()

	failed := seed(ctx, application.Quizzes, urls, os.Stdout, logger)
	logger.Infof("Seeding finished: %d succeeded, %d failed", len(urls)-failed, failed)
	if failed > 0 {
		application.Close()
		logger.Sync()
		os.Exit(1)
	}
}

type quizGenerator interface {
	Generate(ctx context.Context, rawURL string) (*models.Quiz, error)
}

func seed(ctx context.Context, quizzes quizGenerator, urls []string, out io.Writer, logger *zap.SugaredLogger) int {
	failed := 0
	for i, rawURL := range urls {
		logger.Infof("Generating quiz %d/%d for %s", i+1, len(urls), rawURL)

		quiz, err := quizzes.Generate(ctx, rawURL)
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", rawURL, err)
			continue
		}
		fmt.Fprintf(out, "OK   %s -> %s (%q, %d questions)\n", rawURL, quiz.ID, quiz.Title, len(quiz.Questions))
	}
	return failed
}

func readURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
