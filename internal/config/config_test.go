package config

import "testing"

func TestLoadIncludesChunkingDefaults(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "")
	t.Setenv("CHUNK_OVERLAP", "")
	t.Setenv("RAG_TOP_K", "")

	cfg := Load()
	if cfg.ChunkSize != 4000 {
		t.Fatalf("expected default chunk size 4000, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap != 800 {
		t.Fatalf("expected default chunk overlap 800, got %d", cfg.ChunkOverlap)
	}
	if cfg.RAGTopK != 5 {
		t.Fatalf("expected default top k 5, got %d", cfg.RAGTopK)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "2500")
	t.Setenv("NER_SERVICE_URL", "http://ner:8000")
	t.Setenv("NEO4J_URI", "bolt://neo4j:7687")
	t.Setenv("API_RATE_LIMIT_RPS", "50")

	cfg := Load()
	if cfg.ChunkSize != 2500 {
		t.Fatalf("expected chunk size override 2500, got %d", cfg.ChunkSize)
	}
	if cfg.NERServiceURL != "http://ner:8000" {
		t.Fatalf("expected ner url override, got %q", cfg.NERServiceURL)
	}
	if cfg.Neo4jURI != "bolt://neo4j:7687" {
		t.Fatalf("expected neo4j uri override, got %q", cfg.Neo4jURI)
	}
	if cfg.APIRateLimitRPS != 50 {
		t.Fatalf("expected rate limit override 50, got %d", cfg.APIRateLimitRPS)
	}
}

func TestLoadIgnoresMalformedIntegers(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "not-a-number")

	cfg := Load()
	if cfg.ChunkSize != 4000 {
		t.Fatalf("expected fallback chunk size 4000, got %d", cfg.ChunkSize)
	}
}
