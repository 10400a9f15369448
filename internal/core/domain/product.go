package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Shopify export column names the pipeline reads directly. Every other
// column is carried through opaquely.
const (
	ColumnHandle         = "Handle"
	ColumnTitle          = "Title"
	ColumnVendor         = "Vendor"
	ColumnType           = "Type"
	ColumnTags           = "Tags"
	ColumnBodyHTML       = "Body (HTML)"
	ColumnVariantPrice   = "Variant Price"
	ColumnSEOTitle       = "SEO Title"
	ColumnSEODescription = "SEO Description"
)

// Candidate column lists tried in order for fields vendors name
// inconsistently. The order is part of the CSV-schema contract.
var (
	DescriptionColumns = []string{ColumnBodyHTML, "Body HTML", "Description"}
	PriceColumns       = []string{ColumnVariantPrice, "Price"}
	SKUColumns         = []string{"Variant SKU", "SKU"}
	IDColumns          = []string{ColumnHandle, "ID", "id"}
)

// Product is one catalog row. Fields holds the vendor export columns
// verbatim; Enrichment stays nil until the batch engine processes the row.
type Product struct {
	ID         string            `json:"id"`
	Fields     map[string]string `json:"fields"`
	Enrichment *Enrichment       `json:"enrichment,omitempty"`
}

// Enrichment carries the snapshot and derived fields added by one
// enrichment pass. Re-enrichment replaces the whole value atomically.
type Enrichment struct {
	EnrichedAt time.Time  `json:"enriched_at"`
	Collection Collection `json:"collection"`

	OriginalDescription    string `json:"original_description"`
	OriginalTags           string `json:"original_tags"`
	OriginalSEOTitle       string `json:"original_seo_title"`
	OriginalSEODescription string `json:"original_seo_description"`

	NewDescription    string `json:"new_description"`
	NewTags           string `json:"new_tags"`
	NewSEOTitle       string `json:"new_seo_title"`
	NewSEODescription string `json:"new_seo_description"`

	Shopping ShoppingFields `json:"shopping"`
}

func (p Product) Enriched() bool {
	return p.Enrichment != nil
}

func (p Product) Field(name string) string {
	return strings.TrimSpace(p.Fields[name])
}

// FirstField returns the first populated value among the candidate columns.
func (p Product) FirstField(candidates []string) string {
	for _, name := range candidates {
		if v := p.Field(name); v != "" {
			return v
		}
	}
	return ""
}

func (p Product) Title() string  { return p.Field(ColumnTitle) }
func (p Product) Handle() string { return p.Field(ColumnHandle) }
func (p Product) Vendor() string { return p.Field(ColumnVendor) }
func (p Product) Tags() string   { return p.Field(ColumnTags) }

// RawDescription returns the vendor description with markup intact.
func (p Product) RawDescription() string {
	return p.FirstField(DescriptionColumns)
}

// Price parses the first populated price column. Missing or unparsable
// prices read as zero, which lands the product in the lowest tier.
func (p Product) Price() float64 {
	raw := p.FirstField(PriceColumns)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "$"))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

// ProductKey derives the stable identity for a row: vendor handle, else an
// explicit id column, else a synthesized positional key.
func ProductKey(fields map[string]string, index int) string {
	for _, name := range IDColumns {
		if v := strings.TrimSpace(fields[name]); v != "" {
			return v
		}
	}
	return fmt.Sprintf("product_%d", index)
}

// Clone deep-copies the product so enrichment can assemble on a copy
// without mutating the committed catalog.
func (p Product) Clone() Product {
	out := Product{ID: p.ID, Fields: make(map[string]string, len(p.Fields))}
	for k, v := range p.Fields {
		out.Fields[k] = v
	}
	if p.Enrichment != nil {
		enr := *p.Enrichment
		out.Enrichment = &enr
	}
	return out
}

// Catalog is the session's working set: input column order plus rows in
// original file order.
type Catalog struct {
	Columns  []string  `json:"columns"`
	Products []Product `json:"products"`
}

func (c Catalog) Empty() bool {
	return len(c.Products) == 0
}

func (c Catalog) EnrichedCount() int {
	n := 0
	for _, p := range c.Products {
		if p.Enriched() {
			n++
		}
	}
	return n
}

// IndexByID locates a product by identity key, -1 when absent.
func (c Catalog) IndexByID(id string) int {
	for i, p := range c.Products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (c Catalog) Clone() Catalog {
	out := Catalog{
		Columns:  append([]string(nil), c.Columns...),
		Products: make([]Product, len(c.Products)),
	}
	for i, p := range c.Products {
		out.Products[i] = p.Clone()
	}
	return out
}

// SavedCatalog is a persisted session snapshot.
type SavedCatalog struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Catalog   Catalog   `json:"catalog"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
