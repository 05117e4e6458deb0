package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Navya123445/RAG-project/internal/config"
	"github.com/Navya123445/RAG-project/internal/core/domain"
	"github.com/Navya123445/RAG-project/internal/infrastructure/report/excelreport"
	"github.com/Navya123445/RAG-project/internal/infrastructure/repository/postgres"
	"github.com/Navya123445/RAG-project/internal/observability/logging"
)

const serviceName = "spa-report"

// Renders every ready document plus its fused entities into an XLSX
// workbook for manual review.
func main() {
	output := flag.String("o", "annotations.xlsx", "output workbook path")
	status := flag.String("status", string(domain.StatusReady), "document status to export")
	flag.Parse()

	cfg := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		logger.Error("open postgres failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	repo := postgres.NewDocumentRepository(db)

	docs, err := repo.ListByStatus(ctx, domain.DocumentStatus(*status))
	if err != nil {
		logger.Error("list documents failed", "error", err)
		os.Exit(1)
	}

	records := make(map[string][]domain.AnnotationRecord, len(docs))
	for _, doc := range docs {
		pages, err := repo.GetAnnotations(ctx, doc.ID)
		if err != nil {
			logger.Warn("skipping document without annotations", "document_id", doc.ID, "error", err)
			continue
		}
		records[doc.ID] = pages
	}

	f, err := os.Create(*output)
	if err != nil {
		logger.Error("create output failed", "path", *output, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := excelreport.New().Write(docs, records, f); err != nil {
		logger.Error("write workbook failed", "error", err)
		os.Exit(1)
	}

	logger.Info("report written", "path", *output, "documents", len(docs))
}
