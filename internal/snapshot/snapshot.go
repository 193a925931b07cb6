// Package snapshot serializes a compile's debug artifacts — tokens and
// symbol table dump — to a compact binary form for golden tests and the
// driver's --dump flag (SPEC_FULL.md §B), grounded on the teacher's
// msgpack-based internal/driver/dcache.go disk-cache encode/decode pattern.
package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"langcore/internal/lexer"
	"langcore/internal/symbols"
	"langcore/internal/token"
)

// schemaVersion is bumped whenever Snapshot's shape changes, so a stale
// cached snapshot on disk is detected rather than silently misdecoded.
const schemaVersion uint16 = 1

// TokenRecord is a msgpack-friendly flattening of a token.Token: trivia and
// exact byte spans are dropped, keeping just what a reader comparing
// against a golden fixture needs (spec §8.1's token-stream tests).
type TokenRecord struct {
	Kind   string
	Text   string
	Line   uint32
	Column uint32
}

// Snapshot is the full debug dump captured for one compiled file.
type Snapshot struct {
	Schema  uint16
	Tokens  []TokenRecord
	Symbols string // symbols.Table.Dump() rendering, root-down
}

// FromTokenStream flattens every real token (trivia aside) in ts into a
// Snapshot's Tokens field.
func FromTokenStream(ts *lexer.TokenStream) []TokenRecord {
	var out []TokenRecord
	for {
		tok := ts.Current()
		out = append(out, TokenRecord{
			Kind:   token.ToString(tok.Kind),
			Text:   tok.Text,
			Line:   tok.Span.Start.Line,
			Column: tok.Span.Start.Column,
		})
		if tok.IsEOF() {
			break
		}
		ts.Advance()
	}
	return out
}

// FromSymbolTable renders table's symbol graph from root via Table.Dump.
func FromSymbolTable(table *symbols.Table) string {
	var buf bytes.Buffer
	table.Dump(&buf, table.Root(), 0)
	return buf.String()
}

// Encode msgpack-encodes snap to w.
func Encode(w io.Writer, snap *Snapshot) error {
	snap.Schema = schemaVersion
	return msgpack.NewEncoder(w).Encode(snap)
}

// Decode msgpack-decodes a Snapshot from r, rejecting a mismatched schema
// version outright rather than risking a partially-populated struct.
func Decode(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, err
	}
	if snap.Schema != schemaVersion {
		return nil, fmt.Errorf("snapshot: schema mismatch: got %d, want %d", snap.Schema, schemaVersion)
	}
	return &snap, nil
}

// WriteFile encodes snap and atomically replaces path with it, mirroring
// the teacher's write-to-temp-then-rename disk cache pattern.
func WriteFile(path string, snap *Snapshot) (err error) {
	tmp, err := os.CreateTemp(dirOf(path), "snapshot-*.mp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	if err = Encode(tmp, snap); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadFile decodes the Snapshot stored at path.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
