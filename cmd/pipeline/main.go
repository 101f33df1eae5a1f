package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"portfolio_insight/pkg/core/config"
	"portfolio_insight/pkg/core/extract"
	"portfolio_insight/pkg/core/ingest"
	"portfolio_insight/pkg/core/query"
	"portfolio_insight/pkg/core/reconcile"
	"portfolio_insight/pkg/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "path to a statement file (plain text, markdown or HTML)")
		tablesPath = flag.String("tables", "", "optional path to a JSON tables sidecar")
		format     = flag.String("format", "auto", "input format: text, markdown, html or auto")
		mode       = flag.String("mode", "strict", "reconciliation mode: strict or relaxed")
		question   = flag.String("question", "", "optional question to answer against the extracted data")
	)
	flag.Parse()

	godotenv.Load()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: pipeline -input statement.txt [-tables tables.json] [-question \"...\"]")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *inputPath, err)
	}

	doc, err := ingest.FromPayload(string(raw), ingest.Format(*format))
	if err != nil {
		log.Fatalf("Failed to parse input: %v", err)
	}

	tbls := doc.Tables
	if *tablesPath != "" {
		sidecarRaw, err := os.ReadFile(*tablesPath)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *tablesPath, err)
		}
		sidecar, err := ingest.ParseTablesSidecar(string(sidecarRaw))
		if err != nil {
			log.Fatalf("Failed to parse tables sidecar: %v", err)
		}
		tbls = append(tbls, sidecar...)
	}

	data := extract.ExtractFinancialData(doc.Text, tbls)

	rates, err := config.LoadRates("config/rates.hjson")
	if err != nil {
		log.Printf("[Config] Rate table unusable, falling back to defaults: %v", err)
		rates = nil
	}
	checker := reconcile.NewChecker(rates, reconcile.Mode(*mode))
	report := checker.Check(data)

	result := models.ExtractionResult{
		ID:             uuid.New(),
		Data:           data,
		Reconciliation: &report,
		ExtractedAt:    time.Now().UTC(),
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))

	if *question != "" {
		router := query.NewRouter()
		answer := router.Answer(query.Input{Data: data, Tables: tbls, Text: doc.Text}, *question)
		fmt.Println()
		fmt.Println(answer)
	}
}
