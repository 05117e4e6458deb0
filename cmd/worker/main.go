package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Navya123445/RAG-project/internal/bootstrap"
	"github.com/Navya123445/RAG-project/internal/config"
	"github.com/Navya123445/RAG-project/internal/observability/logging"
	"github.com/Navya123445/RAG-project/internal/observability/metrics"
)

const serviceName = "spa-worker"

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		logger.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	app.ProcessUC.ReportIssues = func(documentID string, pageNumber int, issues []string) {
		workerMetrics.RecordFusionIssues(serviceName, len(issues))
		logger.Warn("fusion degraded",
			"document_id", documentID,
			"page", pageNumber,
			"issues", issues,
		)
	}

	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		logger.Info("metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentIngested(ctx, func(handlerCtx context.Context, documentID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		observeQueueLag(processCtx, app, workerMetrics, documentID)

		workerMetrics.StartDocument()
		start := time.Now()
		processErr := app.ProcessUC.ProcessByID(processCtx, documentID)
		workerMetrics.FinishDocument(serviceName, time.Since(start), processErr)

		if processErr != nil {
			logger.Error("document processing failed", "document_id", documentID, "error", processErr)
			return processErr
		}

		recordBackendWin(processCtx, app, workerMetrics, logger, documentID)
		return nil
	})
	if err != nil {
		logger.Error("worker subscribe failed", "error", err)
		os.Exit(1)
	}
}

func observeQueueLag(ctx context.Context, app *bootstrap.App, m *metrics.WorkerMetrics, documentID string) {
	doc, err := app.Repo.GetByID(ctx, documentID)
	if err != nil {
		return
	}
	m.ObserveQueueLag(serviceName, time.Since(doc.CreatedAt))
}

func recordBackendWin(ctx context.Context, app *bootstrap.App, m *metrics.WorkerMetrics, logger *slog.Logger, documentID string) {
	doc, err := app.Repo.GetByID(ctx, documentID)
	if err != nil {
		return
	}
	m.RecordBackendWin(serviceName, doc.ExtractionMethod)
	logger.Info("document processed",
		"document_id", documentID,
		"backend", doc.ExtractionMethod,
		"pages", doc.PageCount,
		"confidence", doc.Confidence,
		"color_integration", doc.ColorIntegration,
	)
}
