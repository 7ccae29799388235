// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package docstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/flowtypes/lib/canonical"
	"github.com/bureau-foundation/flowtypes/lib/contentid"
)

// MaxDocumentSize bounds the uncompressed size recorded in a document
// header. Larger headers are treated as corruption rather than
// allocated.
const MaxDocumentSize = 64 << 20

// tmpDir holds in-flight writes. It lives under the root so the final
// rename never crosses a filesystem boundary.
const tmpDir = "tmp"

// ErrNotFound is returned by [Store.Get] when no document is stored
// under the identifier.
var ErrNotFound = errors.New("docstore: document not found")

// CorruptError reports a stored file that cannot be read back as the
// document its name promises.
type CorruptError struct {
	ID     contentid.ID
	Path   string
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("docstore: %s (%s): %s", e.ID, e.Path, e.Reason)
}

// Options configure a Store.
type Options struct {
	// Compression applied to new documents. Defaults to
	// CompressionNone.
	Compression CompressionTag

	// Prefix names the identifiers [Store.Put] assigns. Defaults to
	// contentid.DocumentPrefix.
	Prefix contentid.Prefix

	// Logger receives write and verification events. Nil discards
	// them.
	Logger *slog.Logger
}

// Store is a directory of canonical documents. It is safe for
// concurrent use.
type Store struct {
	root        string
	compression CompressionTag
	prefix      contentid.Prefix
	logger      *slog.Logger
}

// Open returns a Store rooted at root, creating the directory layout
// if needed.
func Open(root string, options Options) (*Store, error) {
	if root == "" {
		return nil, errors.New("docstore: root directory is required")
	}
	if options.Compression > CompressionZstd {
		return nil, fmt.Errorf("docstore: unsupported compression %s", options.Compression)
	}
	prefix := options.Prefix
	if prefix == (contentid.Prefix{}) {
		prefix = contentid.DocumentPrefix
	}
	if err := prefix.Validate(); err != nil {
		return nil, fmt.Errorf("docstore: %w", err)
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if err := os.MkdirAll(filepath.Join(root, tmpDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory %s: %w", root, err)
	}
	return &Store{
		root:        root,
		compression: options.Compression,
		prefix:      prefix,
		logger:      logger,
	}, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// Put stores a canonical document and returns its identifier. The
// document must already be canonical; use [Store.PutValue] for Go
// values. Storing a document that is already present is a no-op.
func (s *Store) Put(document []byte) (contentid.ID, error) {
	id, err := contentid.DeriveStrict(document, s.prefix)
	if err != nil {
		return contentid.ID{}, fmt.Errorf("docstore: %w", err)
	}
	if len(document) > MaxDocumentSize {
		return contentid.ID{}, fmt.Errorf("docstore: document is %d bytes, limit is %d", len(document), MaxDocumentSize)
	}

	path := s.path(id)
	if _, err := os.Stat(path); err == nil {
		return id, nil
	}

	body, tag, err := compress(document, s.compression)
	if err != nil {
		return contentid.ID{}, fmt.Errorf("docstore: compressing %s: %w", id, err)
	}
	header := binary.AppendUvarint([]byte{byte(tag)}, uint64(len(document)))
	if err := s.writeFile(path, append(header, body...)); err != nil {
		return contentid.ID{}, err
	}

	s.logger.Debug("stored document",
		"id", id.String(),
		"size", len(document),
		"stored_size", len(header)+len(body),
		"compression", tag.String(),
	)
	return id, nil
}

// PutValue encodes v canonically and stores the result.
func (s *Store) PutValue(v any) (contentid.ID, error) {
	document, err := canonical.ToCanonical(v)
	if err != nil {
		return contentid.ID{}, fmt.Errorf("docstore: %w", err)
	}
	return s.Put(document)
}

// Get returns the canonical document stored under id. The content is
// verified against id before it is returned. The payload of id may be
// in either case.
func (s *Store) Get(id contentid.ID) ([]byte, error) {
	id, err := normalize(id)
	if err != nil {
		return nil, err
	}
	path := s.path(id)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("docstore: reading %s: %w", path, err)
	}

	corrupt := func(reason string) error {
		s.logger.Warn("stored document failed verification", "id", id.String(), "path", path, "reason", reason)
		return &CorruptError{ID: id, Path: path, Reason: reason}
	}

	if len(data) == 0 {
		return nil, corrupt("empty file")
	}
	tag := CompressionTag(data[0])
	size, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return nil, corrupt("malformed length header")
	}
	if size > MaxDocumentSize {
		return nil, corrupt(fmt.Sprintf("recorded size %d exceeds limit", size))
	}
	document, err := decompress(data[1+n:], tag, int(size))
	if err != nil {
		return nil, corrupt(err.Error())
	}

	actual, err := contentid.DeriveStrict(document, id.Prefix())
	if err != nil {
		return nil, corrupt(err.Error())
	}
	if actual != id {
		return nil, corrupt("content hashes to " + actual.String())
	}
	return document, nil
}

// Has reports whether a document is stored under id. The content is
// not verified.
func (s *Store) Has(id contentid.ID) (bool, error) {
	if id.IsZero() {
		return false, nil
	}
	id, err := normalize(id)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("docstore: %w", err)
	}
	return true, nil
}

// normalize re-renders id from its digest, so payloads that differ
// only in case name the same file. Payloads that do not hold a full
// digest are rejected.
func normalize(id contentid.ID) (contentid.ID, error) {
	if id.IsZero() {
		return contentid.ID{}, errors.New("docstore: zero identifier")
	}
	digest, err := id.Digest()
	if err != nil {
		return contentid.ID{}, fmt.Errorf("docstore: %s: %w", id, err)
	}
	return contentid.FromDigest(digest, id.Prefix())
}

// path returns the sharded file path for a normalized id.
func (s *Store) path(id contentid.ID) string {
	prefix := id.Prefix()
	payload := id.Payload()
	return filepath.Join(s.root, prefix.Namespace, fmt.Sprintf("v%d", prefix.Version), payload[:2], payload)
}

// writeFile atomically writes data to path.
func (s *Store) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("docstore: creating shard directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Join(s.root, tmpDir), "doc-*.tmp")
	if err != nil {
		return fmt.Errorf("docstore: creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("docstore: writing document: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("docstore: closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("docstore: renaming document to %s: %w", path, err)
	}

	success = true
	return nil
}
