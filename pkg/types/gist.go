// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the domain types, configuration structs, and
// error taxonomy shared across gist-hunter stages.
package types

// GistFile is one named file inside a gist, as returned by the GitHub
// gists listing.
type GistFile struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// Gist is one record from the public gists stream. Description may be
// empty; GitHub sends null for gists created without one.
type Gist struct {
	ID          string              `json:"id"`
	HTMLURL     string              `json:"html_url"`
	Description string              `json:"description"`
	Files       map[string]GistFile `json:"files"`
}

// HasContent reports whether the gist has at least one file of positive
// size. Gists without any are never filtered or fetched, only ledgered.
func (g Gist) HasContent() bool {
	for _, f := range g.Files {
		if f.Size > 0 {
			return true
		}
	}
	return false
}

// Filenames returns the names of the gist's files.
func (g Gist) Filenames() []string {
	names := make([]string, 0, len(g.Files))
	for _, f := range g.Files {
		names = append(names, f.Filename)
	}
	return names
}
