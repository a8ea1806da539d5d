// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns stored content records into displayable HTML, both
// as an embeddable fragment for previews and as a standalone document for
// download. Rendering is a pure function of the record.
//
// Markup payloads are user-authored HTML/CSS and are emitted verbatim, so a
// page can carry script. Block fields go through html/template contextual
// escaping, except the hero background which is trusted as CSS.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"pagecraft/internal/models"
	"pagecraft/internal/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

// Placeholder is shown in place of a page without content.
const Placeholder = `<p style="text-align:center;padding:4rem">No content</p>`

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// heroView carries hero block fields into the template. Bg is typed as CSS
// so gradients and url() values survive the style attribute filter.
type heroView struct {
	Title    string
	Subtitle string
	Bg       template.CSS
}

// Render returns the page body for c: the payload rendered to HTML, or the
// placeholder when there is nothing to show.
func Render(c *models.Content) (template.HTML, error) {
	return Payload(c.Payload)
}

// Payload renders a payload to an HTML fragment. Markup payloads become
// their stylesheet followed by the markup; block payloads become the page
// viewer with one section per block.
func Payload(p models.Payload) (template.HTML, error) {
	switch p.Kind {
	case models.PayloadBlocks:
		return blocks(p.Blocks)
	default:
		if p.HTML == "" {
			return Placeholder, nil
		}
		return template.HTML("<style>" + p.CSS + "</style>" + p.HTML), nil
	}
}

func blocks(list []models.Block) (template.HTML, error) {
	if len(list) == 0 {
		return Placeholder, nil
	}

	sections := make([]template.HTML, 0, len(list))
	for i, b := range list {
		html, err := Block(b)
		if err != nil {
			return "", fmt.Errorf("render block %d: %w", i, err)
		}
		sections = append(sections, html)
	}
	return execute("viewer", sections)
}

// Block renders a single block with the template for its type. Unknown or
// missing types use the text template. Content that does not match the
// type's shape renders with empty fields.
func Block(b models.Block) (template.HTML, error) {
	switch b.Type {
	case models.BlockHero:
		var c models.HeroContent
		_ = b.Decode(&c)
		return execute("hero", heroView{Title: c.Title, Subtitle: c.Subtitle, Bg: template.CSS(c.Bg)})
	case models.BlockFeatures:
		var c models.FeaturesContent
		_ = b.Decode(&c)
		return execute("features", c)
	case models.BlockCTA:
		var c models.CTAContent
		_ = b.Decode(&c)
		return execute("cta", c)
	case models.BlockTestimonial:
		var c models.TestimonialContent
		_ = b.Decode(&c)
		return execute("testimonial", c)
	case models.BlockImage:
		return execute("image", b.String())
	default:
		return execute("text", b.String())
	}
}

// Export wraps the rendered page in a standalone HTML document and returns
// it along with the download filename derived from the title.
func Export(c *models.Content) (filename string, document []byte, err error) {
	title := c.Title
	if title == "" {
		title = slug.DefaultTitle
	}

	data := struct {
		Title string
		CSS   template.CSS
		Body  template.HTML
	}{Title: title}

	switch {
	case c.Payload.Kind == models.PayloadBlocks:
		data.Body, err = blocks(c.Payload.Blocks)
		if err != nil {
			return "", nil, err
		}
	case c.Payload.HTML == "":
		data.Body = Placeholder
	default:
		data.CSS = template.CSS(c.Payload.CSS)
		data.Body = template.HTML(c.Payload.HTML)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "export", data); err != nil {
		return "", nil, fmt.Errorf("render export: %w", err)
	}
	return slug.Filename(c.Title), buf.Bytes(), nil
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
