// Package models defines core data structures for documents, chunks, and search results.
package models

import "time"

// Document is the metadata for one ingested PDF. SafeFilename is the unique
// key; Filename is the user-supplied name kept for display only. A Document is
// immutable once inserted into the index.
type Document struct {
	Filename       string    `json:"filename"`
	SafeFilename   string    `json:"safe_filename"`
	PageCount      int       `json:"page_count"`
	TotalChunks    int       `json:"total_chunks"`
	UploadTime     time.Time `json:"upload_time"`
	FileSizeMB     float64   `json:"file_size_mb"`
	PagesTextLayer int       `json:"pages_text_layer"`
	PagesOCR       int       `json:"pages_ocr"`
}

// Chunk is one indexed passage of text from a document page. ChunkID is unique
// across the whole process, not just within one document. The embedding is
// computed once at ingestion and never mutated.
type Chunk struct {
	ChunkID      int64     `json:"chunk_id"`
	SafeFilename string    `json:"safe_filename"`
	PageNum      int       `json:"page_num"`
	Text         string    `json:"text"`
	Embedding    []float32 `json:"-"`
}
