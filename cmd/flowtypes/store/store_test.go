// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"bytes"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/flowtypes/lib/canonical"
	"github.com/bureau-foundation/flowtypes/lib/config"
	"github.com/bureau-foundation/flowtypes/lib/docstore"
)

func testStore(t *testing.T, namespace string) *docstore.Store {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Root = t.TempDir()
	cfg.Store.Compression = "lz4"
	cfg.IDs.Namespace = namespace
	documents, err := openStore(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	return documents
}

func TestPutGet(t *testing.T) {
	documents := testStore(t, "doc")
	// {"a": 1, "b": 2}
	document := []byte{0xa2, 0x61, 0x61, 0x01, 0x61, 0x62, 0x02}

	var output bytes.Buffer
	if err := putDocument(documents, document, false, &output); err != nil {
		t.Fatalf("putDocument: %v", err)
	}
	id := strings.TrimSpace(output.String())
	if !strings.HasPrefix(id, "doc:v1:") {
		t.Errorf("id = %q, want doc:v1: prefix", id)
	}

	var retrieved bytes.Buffer
	if err := getDocument(documents, id, false, &retrieved); err != nil {
		t.Fatalf("getDocument: %v", err)
	}
	if !bytes.Equal(retrieved.Bytes(), document) {
		t.Errorf("get = %x, want %x", retrieved.Bytes(), document)
	}

	retrieved.Reset()
	if err := getDocument(documents, id, true, &retrieved); err != nil {
		t.Fatalf("getDocument hex: %v", err)
	}
	if got := strings.TrimSpace(retrieved.String()); got != hex.EncodeToString(document) {
		t.Errorf("hex get = %s", got)
	}
}

func TestPutCanonicalize(t *testing.T) {
	documents := testStore(t, "cfg")
	// {"b": 2, "a": 1}: out of order.
	reordered := []byte{0xa2, 0x61, 0x62, 0x02, 0x61, 0x61, 0x01}

	var output bytes.Buffer
	err := putDocument(documents, reordered, false, &output)
	if !errors.Is(err, canonical.ErrNotCanonical) {
		t.Fatalf("putDocument non-canonical error = %v, want ErrNotCanonical", err)
	}

	if err := putDocument(documents, reordered, true, &output); err != nil {
		t.Fatalf("putDocument --canonicalize: %v", err)
	}
	if !strings.HasPrefix(output.String(), "cfg:v1:") {
		t.Errorf("id = %q, want configured namespace", output.String())
	}
}

func TestGetMissing(t *testing.T) {
	documents := testStore(t, "doc")
	var output bytes.Buffer
	err := getDocument(documents, "doc:v1:0123456789ABCDEFGHJKMNPQR0", false, &output)
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("getDocument error = %v, want ErrNotFound", err)
	}

	if err := getDocument(documents, "not-an-id", false, &output); err == nil {
		t.Error("getDocument accepted a malformed identifier")
	}
}

func TestPutEmpty(t *testing.T) {
	documents := testStore(t, "doc")
	if err := putDocument(documents, nil, false, &bytes.Buffer{}); err == nil {
		t.Error("putDocument accepted empty input")
	}
}
