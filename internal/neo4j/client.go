package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"terraform-archviz/internal/graph"
	"terraform-archviz/internal/render"
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

// VerifyConnectivity checks if a connection can be established with the database.
func (c *Client) VerifyConnectivity(ctx context.Context) error {
	return c.Driver.VerifyConnectivity(ctx)
}

// UpdateGraph synchronizes the Neo4j database with the current architecture
// graph. It removes obsolete components and relationships, then upserts the
// current ones.
func (c *Client) UpdateGraph(ctx context.Context, g *graph.Graph) error {
	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		existingIDs, err := c.fetchExistingComponentIDs(ctx, tx)
		if err != nil {
			return nil, err
		}

		if err := c.deleteObsoleteComponents(ctx, tx, existingIDs, g); err != nil {
			return nil, err
		}

		return c.upsertGraph(ctx, tx, g)
	})

	if err != nil {
		return fmt.Errorf("failed to update graph: %w", err)
	}

	return nil
}

// fetchExistingComponentIDs retrieves all component IDs currently in Neo4j.
func (c *Client) fetchExistingComponentIDs(ctx context.Context, tx neo4j.ManagedTransaction) (map[string]bool, error) {
	query := "MATCH (n:Component) RETURN n.id as id"
	result, err := tx.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing components: %w", err)
	}

	existingIDs := make(map[string]bool)
	for result.Next(ctx) {
		record := result.Record()
		if id, ok := record.Get("id"); ok {
			if idStr, ok := id.(string); ok {
				existingIDs[idStr] = true
			}
		}
	}

	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate existing components: %w", err)
	}

	return existingIDs, nil
}

// deleteObsoleteComponents removes components that exist in Neo4j but not in
// the new graph.
func (c *Client) deleteObsoleteComponents(ctx context.Context, tx neo4j.ManagedTransaction, existingIDs map[string]bool, g *graph.Graph) error {
	newIDs := make(map[string]bool, len(g.Nodes))
	for _, node := range g.Nodes {
		newIDs[node.ID] = true
	}

	var idsToDelete []string
	for existingID := range existingIDs {
		if !newIDs[existingID] {
			idsToDelete = append(idsToDelete, existingID)
		}
	}

	if len(idsToDelete) > 0 {
		query := "UNWIND $obsoleteIds AS obsoleteId MATCH (n:Component {id: obsoleteId}) DETACH DELETE n"
		params := map[string]interface{}{"obsoleteIds": idsToDelete}

		if _, err := tx.Run(ctx, query, params); err != nil {
			return fmt.Errorf("failed to delete obsolete components: %w", err)
		}
	}

	return nil
}

// upsertGraph inserts or updates the current graph state in Neo4j.
func (c *Client) upsertGraph(ctx context.Context, tx neo4j.ManagedTransaction, g *graph.Graph) (interface{}, error) {
	query, params := render.ToCypherTransaction(g)
	result, err := tx.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert graph: %w", err)
	}
	return result.Consume(ctx)
}
