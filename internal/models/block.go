// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
)

// BlockType is the tag of a legacy page block.
type BlockType string

const (
	BlockHero        BlockType = "hero"
	BlockFeatures    BlockType = "features"
	BlockCTA         BlockType = "cta"
	BlockTestimonial BlockType = "testimonial"
	BlockImage       BlockType = "image"
	BlockText        BlockType = "text"
)

// Block is one section of a block-sequence page. Content is kept as raw JSON
// because its shape depends on Type; use Decode or String to read it.
type Block struct {
	Type    BlockType       `json:"type"`
	Content json.RawMessage `json:"content"`
}

// HeroContent is the content of a hero block.
type HeroContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Bg       string `json:"bg"`
}

// FeatureItem is one card in a features block.
type FeatureItem struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// FeaturesContent is the content of a features block.
type FeaturesContent struct {
	Title string        `json:"title"`
	Items []FeatureItem `json:"items"`
}

// CTAContent is the content of a call-to-action block.
type CTAContent struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	ButtonText string `json:"buttonText"`
}

// TestimonialContent is the content of a testimonial block.
type TestimonialContent struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Role   string `json:"role"`
}

// Decode unmarshals the block content into v. Missing or null content leaves
// v untouched.
func (b Block) Decode(v any) error {
	raw := bytes.TrimSpace(b.Content)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// String returns the content when it is a JSON string, and "" otherwise.
func (b Block) String() string {
	var s string
	if err := json.Unmarshal(b.Content, &s); err != nil {
		return ""
	}
	return s
}

// NewBlock encodes content and returns a block of the given type.
func NewBlock(t BlockType, content any) (Block, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return Block{}, err
	}
	return Block{Type: t, Content: raw}, nil
}
