package bootstrap

import (
	"context"
	"fmt"

	"github.com/Navya123445/RAG-project/internal/config"
	"github.com/Navya123445/RAG-project/internal/core/annotate"
	"github.com/Navya123445/RAG-project/internal/core/ports"
	"github.com/Navya123445/RAG-project/internal/core/usecase"
	"github.com/Navya123445/RAG-project/internal/infrastructure/chunking"
	"github.com/Navya123445/RAG-project/internal/infrastructure/extractor/colormark"
	"github.com/Navya123445/RAG-project/internal/infrastructure/extractor/pdffallback"
	"github.com/Navya123445/RAG-project/internal/infrastructure/extractor/pdfplain"
	neo4jgraph "github.com/Navya123445/RAG-project/internal/infrastructure/graph/neo4j"
	"github.com/Navya123445/RAG-project/internal/infrastructure/llm/ollama"
	"github.com/Navya123445/RAG-project/internal/infrastructure/queue/nats"
	"github.com/Navya123445/RAG-project/internal/infrastructure/recognizer/spacyhttp"
	"github.com/Navya123445/RAG-project/internal/infrastructure/repository/postgres"
	"github.com/Navya123445/RAG-project/internal/infrastructure/resilience"
	"github.com/Navya123445/RAG-project/internal/infrastructure/storage/localfs"
	"github.com/Navya123445/RAG-project/internal/infrastructure/vector/qdrant"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	IngestUC ports.DocumentIngestor
	QueryUC  ports.DocumentQueryService

	// ProcessUC stays concrete so the worker can attach its issue
	// reporter before subscribing.
	ProcessUC *usecase.ProcessDocumentUseCase

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel)
	embedder := ollama.NewEmbedder(ollamaClient)
	generator := ollama.NewGenerator(ollamaClient)

	vectorDB := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection)
	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)

	// Backend order decides score ties: the color-aware backend wins
	// over the plain extractors when both produce equal text.
	backends := []ports.ExtractionBackend{
		colormark.NewExtractor(storage),
		pdfplain.NewExtractor(storage),
		pdffallback.NewExtractor(storage),
	}

	engine, err := buildAnnotationEngine(cfg)
	if err != nil {
		return nil, err
	}

	var graph ports.EntityGraph
	var closeGraph func()
	if cfg.Neo4jURI != "" {
		g, err := neo4jgraph.New(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
		if err != nil {
			return nil, fmt.Errorf("init entity graph: %w", err)
		}
		graph = g
		closeGraph = func() { _ = g.Close(context.Background()) }
	}

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, backends, engine, chunker, embedder, vectorDB, graph)
	queryUC := usecase.NewQueryUseCase(embedder, vectorDB, generator)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		QueryUC:   queryUC,

		closeFn: func() {
			queue.Close()
			if closeGraph != nil {
				closeGraph()
			}
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func buildAnnotationEngine(cfg config.Config) (*annotate.Engine, error) {
	patterns := annotate.DefaultPatterns()
	if cfg.PatternsPath != "" {
		loaded, err := annotate.LoadPatterns(cfg.PatternsPath)
		if err != nil {
			return nil, fmt.Errorf("load annotation patterns: %w", err)
		}
		patterns = loaded
	}

	var recognizer ports.EntityRecognizer
	if cfg.NERServiceURL != "" {
		recognizer = spacyhttp.New(cfg.NERServiceURL, resilience.NewExecutor(resilience.DefaultConfig()))
	}

	return annotate.NewEngine(patterns, recognizer), nil
}
