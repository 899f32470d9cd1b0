// Package main - entry point for the lender-quote API server
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lender-quote/adapters/cache"
	"lender-quote/adapters/lead"
	"lender-quote/api"
	"lender-quote/core/engine"
	"lender-quote/core/ratetable"
	"lender-quote/internal/logging"
)

const version = "1.0.0"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("LISTEN_ADDR", ":8080"), "Server address")
	ratesFile := flag.String("rates", os.Getenv("RATES_FILE"), "HCL rate override file")
	webhookURL := flag.String("webhook", os.Getenv("WEBHOOK_URL"), "Lead delivery webhook URL")
	redisAddr := flag.String("redis", os.Getenv("REDIS_ADDR"), "Redis address for the quote cache")
	flag.Parse()

	var tables *ratetable.Tables
	var err error
	if *ratesFile != "" {
		tables, err = ratetable.Load(*ratesFile)
	} else {
		tables = ratetable.Default()
	}
	if err != nil {
		log.Fatalf("loading rate tables: %v", err)
	}

	eng, err := engine.New(tables)
	if err != nil {
		log.Fatalf("building engine: %v", err)
	}

	var quoteCache cache.Cache = cache.NewMemory()
	if *redisAddr != "" {
		r := cache.NewRedis(*redisAddr, os.Getenv("REDIS_PASSWORD"), envInt("REDIS_DB"))
		if err := r.Ping(context.Background()); err != nil {
			logging.Warn("redis unavailable, using in-process cache", zap.Error(err))
		} else {
			quoteCache = r
		}
	}

	server := api.NewServer(version, eng, quoteCache, lead.New(*webhookURL))

	fmt.Printf("lender-quote API v%s listening on %s\n", version, *addr)
	if err := server.ListenAndServe(*addr); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string) int {
	n, _ := strconv.Atoi(os.Getenv(key))
	return n
}
