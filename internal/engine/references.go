package engine

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gcbaptista/cog-motif-finder/internal/errors"
	"github.com/gcbaptista/cog-motif-finder/internal/filtering"
	"github.com/gcbaptista/cog-motif-finder/store"
)

// cachedTable is a loaded reference table and the file state it was loaded from.
type cachedTable struct {
	modTime time.Time
	size    int64
	table   interface{}
}

// referenceCache keeps loaded reference tables between runs. An entry is reused
// only while its file keeps the same size and modification time.
type referenceCache struct {
	mu     sync.Mutex
	tables map[string]cachedTable
}

func newReferenceCache() *referenceCache {
	return &referenceCache{tables: make(map[string]cachedTable)}
}

// load returns the cached table for path or calls loader and caches its result.
func (c *referenceCache) load(kind, path string, loader func(path string) (interface{}, error)) (interface{}, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewReferenceFileError(kind, path, err)
	}
	key := kind + ":" + path
	if abs, err := filepath.Abs(path); err == nil {
		key = kind + ":" + abs
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.tables[key]; ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return cached.table, nil
	}

	table, err := loader(path)
	if err != nil {
		return nil, err
	}
	c.tables[key] = cachedTable{modTime: info.ModTime(), size: info.Size(), table: table}
	log.Printf("Loaded %s reference table %s", kind, path)
	return table, nil
}

// references are the tables one run needs. Lookups of a category without
// criteria stay nil.
type references struct {
	taxonomy filtering.TaxonomyLookup
	habitat  filtering.HabitatLookup
	activity *store.ActivityTable
}

// loadReferences loads the activity table and any filter table the criteria need.
func (e *Engine) loadReferences(taxonomyPath, habitatPath, activityPath string, criteria filtering.Criteria) (references, error) {
	var refs references

	if len(criteria.Taxonomy) > 0 {
		table, err := e.references.load("taxonomy", taxonomyPath, func(p string) (interface{}, error) {
			return store.LoadTaxonomyTable(p)
		})
		if err != nil {
			return references{}, err
		}
		refs.taxonomy = table.(*store.TaxonomyTable)
	}

	if len(criteria.Habitat) > 0 {
		table, err := e.references.load("habitat", habitatPath, func(p string) (interface{}, error) {
			return store.LoadHabitatTable(p)
		})
		if err != nil {
			return references{}, err
		}
		refs.habitat = table.(*store.HabitatTable)
	}

	table, err := e.references.load("activity", activityPath, func(p string) (interface{}, error) {
		return store.LoadActivityTable(p)
	})
	if err != nil {
		return references{}, err
	}
	refs.activity = table.(*store.ActivityTable)

	return refs, nil
}
