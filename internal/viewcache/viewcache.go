package viewcache

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache holds rendered list/detail responses keyed per owner so that reads
// skip the database between mutations. Services invalidate the affected
// owner's entries on every write.
type Cache struct {
	lru *lru.Cache[string, []byte]
}

func New(size int) (*Cache, error) {
	c, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create view cache: %w", err)
	}
	return &Cache{lru: c}, nil
}

func ListKey(ownerID string) string {
	return "list:" + ownerID
}

func DetailKey(ownerID string, campsiteID int64) string {
	return fmt.Sprintf("detail:%s:%d", ownerID, campsiteID)
}

func (c *Cache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

func (c *Cache) Set(key string, value []byte) {
	c.lru.Add(key, value)
}

// InvalidateOwner drops the owner's list entry and every detail entry.
func (c *Cache) InvalidateOwner(ownerID string) {
	c.lru.Remove(ListKey(ownerID))
	prefix := "detail:" + ownerID + ":"
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.lru.Remove(key)
		}
	}
}

// InvalidateDetail drops one campsite's detail entry along with the owner's
// list entry, which embeds the same record.
func (c *Cache) InvalidateDetail(ownerID string, campsiteID int64) {
	c.lru.Remove(ListKey(ownerID))
	c.lru.Remove(DetailKey(ownerID, campsiteID))
}
