package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	mu   sync.Mutex
	node *snowflake.Node
)

// Init sets the node used by GenerateID. Every process writing to the same
// database needs its own node number (0..1023).
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("init snowflake node %d: %w", nodeID, err)
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// GenerateID returns a new snowflake id. Falls back to node 1 when Init was
// never called (tests, CLI subcommands).
func GenerateID() int64 {
	mu.Lock()
	if node == nil {
		node, _ = snowflake.NewNode(1)
	}
	n := node
	mu.Unlock()
	return n.Generate().Int64()
}
