// Copyright 2026 The DST Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package workspace keeps track of a set of open DST documents and the
// diagnostics and cross references computed for them.
//
// Every change starts a validation cycle. A cycle re-analyses the changed
// document and every document whose book or library links could be
// affected by it. Cycles are numbered; results of a cycle are only
// published for documents no newer cycle has published results for, so
// that the diagnostics of a document always come from its latest cycle.
package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"dstlang.org/go/dst/ast"
	"dstlang.org/go/dst/parser"
	"dstlang.org/go/dst/token"
	"dstlang.org/go/internal/core/validate"
	"dstlang.org/go/internal/diag"
)

// Config configures a Workspace.
type Config struct {
	// Logger receives debug logs of validation cycles. If nil,
	// slog.Default is used.
	Logger *slog.Logger

	// CacheSize is the number of analyses to keep. If zero, 128 is used.
	CacheSize int

	// Registry holds the checks to run. If nil, validate.Default is used.
	Registry *validate.Registry
}

// A Workspace holds open documents. It is safe for concurrent use.
type Workspace struct {
	id     uuid.UUID
	logger *slog.Logger
	reg    *validate.Registry
	cache  *lru.Cache[cacheKey, *Analysis]

	mu          sync.Mutex
	gen         uint64
	docs        map[string]*document
	published   map[string]*Analysis
	publishedAt map[string]uint64 // cycle that published the analysis
}

// New returns an empty workspace.
func New(cfg *Config) (*Workspace, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = 128
	}
	cache, err := lru.New[cacheKey, *Analysis](size)
	if err != nil {
		return nil, fmt.Errorf("cannot create analysis cache: %w", err)
	}
	w := &Workspace{
		id:          uuid.New(),
		logger:      cfg.Logger,
		reg:         cfg.Registry,
		cache:       cache,
		docs:        make(map[string]*document),
		published:   make(map[string]*Analysis),
		publishedAt: make(map[string]uint64),
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	w.logger = w.logger.With("workspace", w.id.String())
	if w.reg == nil {
		w.reg = validate.Default()
	}
	return w, nil
}

// ID returns the identifier of w. Log records of w carry it as the
// "workspace" attribute.
func (w *Workspace) ID() uuid.UUID { return w.id }

// Update stores a new version of a document and runs a validation cycle.
// src may be anything accepted by parser.ParseFile. A document that fails to
// parse is still stored; its parse errors are reported as diagnostics.
// Only a source that cannot be read is returned as an error.
//
// If ctx is cancelled during the cycle, Update returns ctx.Err() and
// publishes nothing; the document itself remains stored.
func (w *Workspace) Update(ctx context.Context, filename string, version int32, src any) error {
	f, parseErr := parser.ParseFile(filename, src)
	if f == nil {
		return parseErr
	}

	w.mu.Lock()
	w.gen++
	gen := w.gen
	w.docs[filename] = &document{
		filename: filename,
		version:  version,
		stamp:    gen,
		file:     f,
		parseErr: parseErr,
	}
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.purge(filename)
	return w.cycle(ctx, gen, snap, filename)
}

// Close removes a document and re-validates the documents that depended
// on it.
func (w *Workspace) Close(ctx context.Context, filename string) error {
	w.mu.Lock()
	if _, ok := w.docs[filename]; !ok {
		w.mu.Unlock()
		return fmt.Errorf("%s: no such document", filename)
	}
	w.gen++
	gen := w.gen
	delete(w.docs, filename)
	delete(w.published, filename)
	delete(w.publishedAt, filename)
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.purge(filename)
	return w.cycle(ctx, gen, snap, filename)
}

// purge drops cached analyses of filename.
func (w *Workspace) purge(filename string) {
	for _, k := range w.cache.Keys() {
		if k.filename == filename {
			w.cache.Remove(k)
		}
	}
}

func (w *Workspace) snapshotLocked() *snapshot {
	return &snapshot{docs: sortedDocs(w.docs)}
}

// cycle analyses all documents of snap after a change of the document
// called changed. Documents whose inputs are unchanged are taken from the
// cache: the cache key of a document covers the versions of the documents
// its links may resolve to, so only the changed document and its
// dependents are analysed afresh.
func (w *Workspace) cycle(ctx context.Context, gen uint64, snap *snapshot, changed string) error {
	log := w.logger.With("cycle", gen)
	dependents := 0
	for _, d := range snap.docs {
		if d.filename != changed && snap.dependsOn(d, changed) {
			dependents++
		}
	}
	log.Debug("cycle start", "changed", changed, "documents", len(snap.docs), "dependents", dependents)

	results := make([]*Analysis, 0, len(snap.docs))
	hits := 0
	for _, d := range snap.docs {
		key := cacheKey{
			filename: d.filename,
			version:  d.version,
			stamp:    d.stamp,
			deps:     snap.fingerprint(d),
		}
		if a, ok := w.cache.Get(key); ok {
			hits++
			results = append(results, a)
			continue
		}
		a, err := analyse(ctx, snap, d, w.reg)
		if err != nil {
			log.Debug("cycle cancelled", "file", d.filename, "err", err)
			return err
		}
		a.Generation = gen
		w.cache.Add(key, a)
		results = append(results, a)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, a := range results {
		cur, ok := w.docs[a.Filename]
		if !ok || cur.file != a.File || w.publishedAt[a.Filename] > gen {
			log.Debug("result superseded", "file", a.Filename)
			continue
		}
		w.published[a.Filename] = a
		w.publishedAt[a.Filename] = gen
	}
	log.Debug("cycle done", "analysed", len(results)-hits, "cached", hits)
	return nil
}

// Lookup returns the first top-level element with the given name, in
// filename order.
func (w *Workspace) Lookup(name string) ast.Model {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked().Lookup(name)
}

// Models returns the top-level elements of all documents in filename order.
func (w *Workspace) Models() []ast.Model {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked().Models()
}

// Filenames returns the names of all open documents in order.
func (w *Workspace) Filenames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var a []string
	for _, d := range w.snapshotLocked().docs {
		a = append(a, d.filename)
	}
	return a
}

// Analysis returns the latest published analysis of a document.
func (w *Workspace) Analysis(filename string) (*Analysis, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a, ok := w.published[filename]
	return a, ok
}

// Diagnostics returns the latest published diagnostics of a document.
func (w *Workspace) Diagnostics(filename string) []diag.Diagnostic {
	a, ok := w.Analysis(filename)
	if !ok {
		return nil
	}
	return slices.Clone(a.Diagnostics)
}

// Definition returns the nodes the identifier at the given 1-based line
// and column of a document refers to.
func (w *Workspace) Definition(filename string, line, column int) []ast.Node {
	a, ok := w.Analysis(filename)
	if !ok {
		return nil
	}
	off := a.Definitions.Offset(line, column)
	if off < 0 {
		return nil
	}
	return a.Definitions.ForOffset(off)
}

// References returns all references, in any document, to what the
// identifier at the given 1-based line and column of a document denotes.
// The result is ordered by filename and then by position.
func (w *Workspace) References(filename string, line, column int) []*ast.Ident {
	targets := w.Definition(filename, line, column)
	if len(targets) == 0 {
		return nil
	}

	w.mu.Lock()
	var all []*Analysis
	for _, d := range w.snapshotLocked().docs {
		if a, ok := w.published[d.filename]; ok {
			all = append(all, a)
		}
	}
	w.mu.Unlock()

	var refs []*ast.Ident
	for _, a := range all {
		var inFile []*ast.Ident
		for _, t := range targets {
			inFile = append(inFile, a.Definitions.References(t)...)
		}
		slices.SortFunc(inFile, func(x, y *ast.Ident) int {
			return token.Pos.Compare(x.NamePos, y.NamePos)
		})
		refs = append(refs, slices.Compact(inFile)...)
	}
	return refs
}
