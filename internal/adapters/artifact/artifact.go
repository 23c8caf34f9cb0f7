// Package artifact defines the badge artifact generation contract and a
// content-addressed in-memory implementation. The real renderer and
// pinning service live outside this repository; this package only
// produces stable URIs and OpenSea-style metadata documents.
package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/reflekt-labs/reflekt/internal/domain/model"
)

// Request carries everything the generator needs to render one badge.
type Request struct {
	Address   model.Address
	Score     int
	Tier      string
	Badges    []string
	Breakdown model.Breakdown
}

// Artifact is the generated output: a metadata URI suitable for a token
// URI field, plus the image URI the metadata references.
type Artifact struct {
	MetadataURI string `json:"metadata_uri"`
	ImageURI    string `json:"image_uri"`
}

// Generator produces badge artifacts.
type Generator interface {
	// Generate renders and publishes the artifact for req. Fails with
	// ErrArtifactGeneration when the artifact cannot be produced.
	Generate(ctx context.Context, req Request) (Artifact, error)
}

// attribute follows the OpenSea metadata attribute shape.
type attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// metadataDoc is the token metadata document.
type metadataDoc struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Attributes  []attribute `json:"attributes"`
}

// InMemoryGenerator content-addresses metadata documents into ipfs://
// style URIs and keeps them retrievable for inspection. Deterministic:
// identical requests yield identical URIs.
type InMemoryGenerator struct {
	mu   sync.RWMutex
	docs map[string][]byte // URI -> metadata document
}

// NewInMemoryGenerator creates an empty generator.
func NewInMemoryGenerator() *InMemoryGenerator {
	return &InMemoryGenerator{docs: make(map[string][]byte)}
}

// Generate builds the metadata document and derives content-addressed URIs.
func (g *InMemoryGenerator) Generate(ctx context.Context, req Request) (Artifact, error) {
	if req.Address == "" || req.Tier == "" {
		return Artifact{}, fmt.Errorf("%w: incomplete request", ErrArtifactGeneration)
	}

	imageURI := contentURI([]byte(fmt.Sprintf("badge|%s|%s|%d", req.Address, req.Tier, req.Score)))

	doc := metadataDoc{
		Name:        fmt.Sprintf("Web3 Reputation Badge - %s", req.Tier),
		Description: fmt.Sprintf("Reputation credential for %s. Score: %d/100. Tier: %s.", req.Address, req.Score, req.Tier),
		Image:       imageURI,
		Attributes: []attribute{
			{TraitType: "Reputation Score", Value: req.Score},
			{TraitType: "Tier", Value: req.Tier},
		},
	}
	for _, c := range model.Criteria() {
		doc.Attributes = append(doc.Attributes, attribute{
			TraitType: fmt.Sprintf("Contribution: %s", c),
			Value:     req.Breakdown[c],
		})
	}
	for _, b := range req.Badges {
		doc.Attributes = append(doc.Attributes, attribute{TraitType: "Achievement", Value: b})
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrArtifactGeneration, err)
	}
	metadataURI := contentURI(raw)

	g.mu.Lock()
	g.docs[metadataURI] = raw
	g.mu.Unlock()

	return Artifact{MetadataURI: metadataURI, ImageURI: imageURI}, nil
}

// Lookup returns the stored metadata document for a generated URI.
func (g *InMemoryGenerator) Lookup(uri string) ([]byte, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	doc, ok := g.docs[uri]
	return doc, ok
}

func contentURI(payload []byte) string {
	sum := sha256.Sum256(payload)
	return "ipfs://" + hex.EncodeToString(sum[:])
}
