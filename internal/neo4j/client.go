package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"terraform-modviz/internal/formatter"
	"terraform-modviz/internal/graph"
)

// Client handles the connection and communication with a Neo4j database.
type Client struct {
	Driver neo4j.DriverWithContext
}

// NewClient creates a new Neo4j client and establishes a connection.
func NewClient(uri, user, pass string) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, pass, ""))
	if err != nil {
		return nil, fmt.Errorf("could not create neo4j driver: %w", err)
	}
	return &Client{Driver: driver}, nil
}

// Close gracefully shuts down the driver.
func (c *Client) Close(ctx context.Context) error {
	return c.Driver.Close(ctx)
}

// VerifyConnectivity checks if a connection can be established.
func (c *Client) VerifyConnectivity(ctx context.Context) error {
	return c.Driver.VerifyConnectivity(ctx)
}

// Sync makes the database mirror the given trees: Resource and Module
// nodes that no longer exist are removed, everything current is
// upserted, all in one write transaction.
func (c *Client) Sync(ctx context.Context, trees []*graph.Tree) error {
	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		if err := c.pruneObsolete(ctx, tx, "Resource", currentResourceIDs(trees)); err != nil {
			return nil, err
		}
		if err := c.pruneObsolete(ctx, tx, "Module", currentModuleIDs(trees)); err != nil {
			return nil, err
		}

		query, params := formatter.ToCypherTransaction(trees)
		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert graph: %w", err)
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to sync graph: %w", err)
	}
	return nil
}

// currentResourceIDs collects the node identifiers present in the trees.
func currentResourceIDs(trees []*graph.Tree) map[string]bool {
	ids := make(map[string]bool)
	for _, t := range trees {
		t.Walk(func(s *graph.Scope) {
			for _, n := range s.Nodes {
				ids[n.Name] = true
			}
		})
	}
	return ids
}

// currentModuleIDs collects the scope names present in the trees.
func currentModuleIDs(trees []*graph.Tree) map[string]bool {
	ids := make(map[string]bool)
	for _, t := range trees {
		t.Walk(func(s *graph.Scope) {
			ids[s.Name] = true
		})
	}
	return ids
}

// pruneObsolete deletes nodes of the given label whose id is not in
// keep, relationships included.
func (c *Client) pruneObsolete(ctx context.Context, tx neo4j.ManagedTransaction, label string, keep map[string]bool) error {
	query := fmt.Sprintf("MATCH (n:%s) RETURN n.id AS id", label)
	result, err := tx.Run(ctx, query, nil)
	if err != nil {
		return fmt.Errorf("failed to query existing %s nodes: %w", label, err)
	}

	var obsolete []string
	for result.Next(ctx) {
		if id, ok := result.Record().Get("id"); ok {
			if idStr, ok := id.(string); ok && !keep[idStr] {
				obsolete = append(obsolete, idStr)
			}
		}
	}
	if err := result.Err(); err != nil {
		return fmt.Errorf("failed to iterate existing %s nodes: %w", label, err)
	}

	if len(obsolete) == 0 {
		return nil
	}

	del := fmt.Sprintf("UNWIND $obsoleteIds AS obsoleteId MATCH (n:%s {id: obsoleteId}) DETACH DELETE n", label)
	params := map[string]interface{}{"obsoleteIds": obsolete}
	if _, err := tx.Run(ctx, del, params); err != nil {
		return fmt.Errorf("failed to delete obsolete %s nodes: %w", label, err)
	}
	return nil
}
