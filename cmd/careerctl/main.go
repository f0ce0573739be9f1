// Package main provides careerctl, an operator CLI for the scoring service.
package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"readiness-backend/internal/scoring"
)

const defaultScoringURL = "http://localhost:8000"

var (
	apiURL     string
	apiTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "careerctl",
	Short:        "Career readiness scoring CLI",
	Long:         "careerctl talks to the career readiness scoring service: catalogs, certificate and resume scans, and offline scoring runs from an intake file.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Scoring service base URL (overrides SCORING_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&apiTimeout, "timeout", 60*time.Second, "Request timeout")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newClient() *scoring.Client {
	base := strings.TrimSpace(apiURL)
	if base == "" {
		base = strings.TrimSpace(os.Getenv("SCORING_API_URL"))
	}
	if base == "" {
		base = defaultScoringURL
	}
	return scoring.NewClient(base, &http.Client{Timeout: apiTimeout})
}
