// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/terrascope/internal/models"
)

// artifactExt is the extension of rendered artifacts.
const artifactExt = ".html"

// Document is everything a renderer needs.
type Document struct {
	ID        string
	Company   models.Company
	Variant   Variant
	Sections  []Section
	CreatedAt time.Time
}

// Artifact locates a rendered document.
type Artifact struct {
	Name string
	Path string
	Size int64
}

// Renderer turns a document into a downloadable artifact.
type Renderer interface {
	Render(ctx context.Context, doc Document) (*Artifact, error)
}

// HTMLRenderer writes printable HTML documents into a directory. Files are
// named after the document ID.
type HTMLRenderer struct {
	dir  string
	tmpl *template.Template
}

var funcMap = template.FuncMap{
	"formatDate": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"titleCase": func(v Variant) string {
		s := string(v)
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"paragraphs": func(s string) []string {
		var out []string
		for _, p := range strings.Split(s, "\n\n") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	},
}

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Company.Name}} Environmental Impact Report</title>
<style>
body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; color: #1b1b1b; line-height: 1.5; }
header { border-bottom: 2px solid #2e7d32; margin-bottom: 1.5rem; }
h1 { font-size: 1.8rem; margin: 0 0 .25rem; }
h2 { font-size: 1.2rem; color: #2e7d32; margin-top: 1.75rem; }
.meta { color: #555; font-size: .9rem; }
p { white-space: pre-line; }
@page { size: A4; margin: 20mm; }
@media print {
  body { margin: 0; max-width: none; }
  section { page-break-inside: avoid; }
}
</style>
</head>
<body>
<header>
<h1>{{.Company.Name}}</h1>
<div class="meta">Environmental Impact Report ({{titleCase .Variant}}) | {{formatDate .CreatedAt}}{{if .Company.Industry}} | {{.Company.Industry}}{{end}}</div>
</header>
{{range .Sections}}<section>
<h2>{{.Title}}</h2>
{{range paragraphs .Body}}<p>{{.}}</p>
{{end}}</section>
{{end}}<footer class="meta">Report {{.ID}}</footer>
</body>
</html>
`

// NewHTMLRenderer creates the directory if needed.
func NewHTMLRenderer(dir string) (*HTMLRenderer, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create artifacts directory: %w", err)
	}
	tmpl, err := template.New("report").Funcs(funcMap).Parse(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &HTMLRenderer{dir: dir, tmpl: tmpl}, nil
}

// Dir returns the artifacts directory.
func (r *HTMLRenderer) Dir() string { return r.dir }

// Render writes doc to <dir>/<doc.ID>.html. Every failure wraps
// models.ErrRenderingFailure.
func (r *HTMLRenderer) Render(_ context.Context, doc Document) (*Artifact, error) {
	if _, err := uuid.Parse(doc.ID); err != nil {
		return nil, fmt.Errorf("%w: invalid document id %q", models.ErrRenderingFailure, doc.ID)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("%w: execute template: %w", models.ErrRenderingFailure, err)
	}

	name := doc.ID + artifactExt
	path := filepath.Join(r.dir, name)
	tmp, err := os.CreateTemp(r.dir, ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrRenderingFailure, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return nil, fmt.Errorf("%w: write artifact: %w", models.ErrRenderingFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: close artifact: %w", models.ErrRenderingFailure, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrRenderingFailure, err)
	}
	return &Artifact{Name: name, Path: path, Size: int64(buf.Len())}, nil
}

// ArtifactPath resolves a name previously returned by Render. Names that
// are not "<uuid>.html" are rejected so callers cannot escape the
// directory.
func (r *HTMLRenderer) ArtifactPath(name string) (string, error) {
	id, ok := strings.CutSuffix(name, artifactExt)
	if !ok {
		return "", models.ErrNotFound
	}
	if _, err := uuid.Parse(id); err != nil || strings.ContainsAny(id, `/\`) {
		return "", models.ErrNotFound
	}
	path := filepath.Join(r.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", models.ErrNotFound
	}
	return path, nil
}
