// Package manifest defines the lesson manifest document and assembles it
// from a content listing.
package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"git.home.luguber.info/inful/lessonindex/internal/content"
)

// RootSectionID is the JSON id of the synthetic section holding loose root files.
const RootSectionID = "root"

// Manifest is the generated table of contents for one content module.
type Manifest struct {
	ModuleID    string    `json:"moduleId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Direction   string    `json:"direction"`
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Sections    []Section `json:"sections"`
}

// SectionKind tags a section as a real directory or the synthetic root bucket.
type SectionKind int

const (
	SectionDirectory SectionKind = iota
	SectionRoot
)

func (k SectionKind) String() string {
	if k == SectionRoot {
		return "root"
	}
	return "directory"
}

// Section is an ordered group of items. Dir is empty for the root section.
type Section struct {
	Kind  SectionKind `json:"-"`
	Dir   string      `json:"-"`
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Order int         `json:"order"`
	Items []Item      `json:"items"`
}

// Item is one lesson asset.
type Item struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Type     content.Kind `json:"type"`
	Path     string       `json:"path"`
	Order    int          `json:"order"`
	Metadata Metadata     `json:"metadata"`
}

// Metadata carries derived item metadata. Duration is present only for documents.
type Metadata struct {
	Duration *int     `json:"duration,omitempty"`
	Tags     []string `json:"tags"`
}

// ItemCount returns the total number of items across sections.
func (m *Manifest) ItemCount() int {
	n := 0
	for _, s := range m.Sections {
		n += len(s.Items)
	}
	return n
}

// ToJSON serializes the manifest with two-space indentation and a trailing newline.
func (m *Manifest) ToJSON() ([]byte, error) {
	data, err := encode(m, "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	for i := range m.Sections {
		if m.Sections[i].ID == RootSectionID {
			m.Sections[i].Kind = SectionRoot
		}
	}
	return &m, nil
}

// SectionsHash computes a deterministic hash of the sections only. Identity
// fields and generatedAt are excluded, so two runs over an unchanged tree
// hash identically.
func (m *Manifest) SectionsHash() (string, error) {
	return hashOf(m.Sections)
}

// ContentHash hashes everything a consumer reads except generatedAt: the
// identity fields, version and sections. A change to any of them changes
// the hash.
func (m *Manifest) ContentHash() (string, error) {
	unstamped := *m
	unstamped.GeneratedAt = time.Time{}
	return hashOf(&unstamped)
}

func hashOf(v any) (string, error) {
	data, err := encode(v, "")
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
