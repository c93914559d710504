// Package index holds the authoritative in-memory store of documents and
// their embedded chunks. It is the only mutable process-wide state besides
// the loaded embedding model; all access goes through its methods under a
// single readers-writer lock.
package index

import (
	"errors"
	"fmt"
	"sync"

	"github.com/docsift/docsift/internal/models"
)

var (
	// ErrNotFound indicates no document exists for the given safe filename.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateDocument indicates an insert with an already-used safe filename.
	ErrDuplicateDocument = errors.New("duplicate document")
)

// Index is the in-memory document and chunk store. Mutations (Insert, Delete,
// Clear) take the write lock; List and Snapshot take the read lock, so a
// search can never observe a half-inserted document.
type Index struct {
	mu     sync.RWMutex
	docs   map[string]models.Document
	order  []string // safe filenames in insertion order, for stable listings
	chunks []models.Chunk
	nextID int64
}

// New creates an empty index.
func New() *Index {
	return &Index{
		docs:   make(map[string]models.Document),
		nextID: 1,
	}
}

// Insert atomically adds doc and its chunks. Chunk IDs are assigned here,
// under the write lock, so they are unique across the whole index and
// ascending in insertion order. The caller's doc and chunks are updated with
// the assigned values. Fails with ErrDuplicateDocument without mutating
// anything when the safe filename is taken.
func (ix *Index) Insert(doc *models.Document, chunks []models.Chunk) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, exists := ix.docs[doc.SafeFilename]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDocument, doc.SafeFilename)
	}
	for i := range chunks {
		chunks[i].ChunkID = ix.nextID
		chunks[i].SafeFilename = doc.SafeFilename
		ix.nextID++
	}
	doc.TotalChunks = len(chunks)

	ix.docs[doc.SafeFilename] = *doc
	ix.order = append(ix.order, doc.SafeFilename)
	ix.chunks = append(ix.chunks, chunks...)
	return nil
}

// Delete removes the document and every chunk it owns. Fails with
// ErrNotFound when the safe filename is unknown.
func (ix *Index) Delete(safeFilename string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, exists := ix.docs[safeFilename]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, safeFilename)
	}
	delete(ix.docs, safeFilename)
	for i, name := range ix.order {
		if name == safeFilename {
			ix.order = append(ix.order[:i], ix.order[i+1:]...)
			break
		}
	}
	kept := ix.chunks[:0]
	for _, ch := range ix.chunks {
		if ch.SafeFilename != safeFilename {
			kept = append(kept, ch)
		}
	}
	ix.chunks = kept
	return nil
}

// Clear removes every document and chunk, returning the index to its empty
// initial state. Chunk IDs keep increasing so stale result sets stay unique.
func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.docs = make(map[string]models.Document)
	ix.order = nil
	ix.chunks = nil
}

// List returns all documents in upload order. The returned slice is a copy.
func (ix *Index) List() []models.Document {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]models.Document, 0, len(ix.order))
	for _, name := range ix.order {
		out = append(out, ix.docs[name])
	}
	return out
}

// Snapshot is a consistent point-in-time read view for search: every chunk
// plus the owner's display filename. Chunk structs are copied; embeddings
// share backing arrays, which are immutable after insert.
type Snapshot struct {
	Chunks    []models.Chunk
	Filenames map[string]string
}

// Snapshot returns the current search view under a single read lock.
func (ix *Index) Snapshot() Snapshot {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	snap := Snapshot{
		Chunks:    make([]models.Chunk, len(ix.chunks)),
		Filenames: make(map[string]string, len(ix.docs)),
	}
	copy(snap.Chunks, ix.chunks)
	for name, doc := range ix.docs {
		snap.Filenames[name] = doc.Filename
	}
	return snap
}

// DocumentCount returns the number of stored documents.
func (ix *Index) DocumentCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// ChunkCount returns the number of stored chunks across all documents.
func (ix *Index) ChunkCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks)
}

// Stats summarizes the index contents.
type Stats struct {
	TotalDocuments  int `json:"total_documents"`
	TotalChunks     int `json:"total_chunks"`
	TotalCharacters int `json:"total_characters"`
	AvgChunkSize    int `json:"avg_chunk_size"`
}

// Stats returns aggregate statistics over all indexed chunks.
func (ix *Index) Stats() Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	s := Stats{
		TotalDocuments: len(ix.docs),
		TotalChunks:    len(ix.chunks),
	}
	for _, ch := range ix.chunks {
		s.TotalCharacters += len(ch.Text)
	}
	if s.TotalChunks > 0 {
		s.AvgChunkSize = s.TotalCharacters / s.TotalChunks
	}
	return s
}
