package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"mpesarelay/internal/services/apiclient"
	"mpesarelay/internal/store/postgres"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Provisions a gateway client in DB_DSN and prints its API key once.
func main() {
	name := flag.String("name", "", "client name")
	keyName := flag.String("key-name", "", "key label (default \"default\")")
	clientID := flag.Int64("client", 0, "issue an extra key for this existing client id instead")
	flag.Parse()

	_ = godotenv.Load()
	viper.AutomaticEnv()
	dsn := viper.GetString("DB_DSN")
	if dsn == "" {
		log.Fatal().Msg("DB_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.Open(ctx, dsn, 10*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer pool.Close()
	svc := apiclient.NewService(postgres.NewRepo(pool))

	var out any
	if *clientID != 0 {
		key, label, err := svc.IssueKey(ctx, *clientID, *keyName)
		if err != nil {
			log.Fatal().Err(err).Msg("issue key")
		}
		out = apiclient.OnboardingResponse{ClientID: *clientID, APIKey: key, APIKeyName: label}
	} else {
		resp, err := svc.Onboard(ctx, apiclient.OnboardingRequest{Name: *name, APIKeyName: *keyName})
		if err != nil {
			log.Fatal().Err(err).Msg("onboard client")
		}
		out = resp
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}
