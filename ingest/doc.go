// Package ingest loads profiles into the directory, embedding their text in
// concurrent batches and normalizing vectors before storage.
package ingest
