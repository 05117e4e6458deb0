package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Navya123445/RAG-project/internal/core/domain"
)

// Graph records party-to-document edges so parties recurring across
// agreements can be found without replaying annotations. Strictly best
// effort: the processing pipeline tolerates any error from here.
type Graph struct {
	driver   neo4j.DriverWithContext
	database string
}

func New(ctx context.Context, uri, user, password, database string) (*Graph, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return &Graph{driver: driver, database: database}, nil
}

const indexPartiesCypher = `
MERGE (d:Document {id: $docID})
SET d.filename = $filename
WITH d
UNWIND $parties AS party
MERGE (p:Party {name: party.name})
MERGE (p)-[r:NAMED_IN]->(d)
SET r.confidence = party.confidence, r.source = party.source
`

func (g *Graph) IndexParties(ctx context.Context, doc *domain.Document, parties []domain.FusedEntity) error {
	if len(parties) == 0 {
		return nil
	}

	params := make([]map[string]any, 0, len(parties))
	for _, party := range parties {
		params = append(params, map[string]any{
			"name":       party.Text,
			"confidence": party.Confidence,
			"source":     string(party.Provenance),
		})
	}

	_, err := neo4j.ExecuteQuery(ctx, g.driver, indexPartiesCypher,
		map[string]any{
			"docID":    doc.ID,
			"filename": doc.Filename,
			"parties":  params,
		},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(g.database),
	)
	if err != nil {
		return fmt.Errorf("index parties: %w", err)
	}
	return nil
}

func (g *Graph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}
