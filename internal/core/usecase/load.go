package usecase

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

// CatalogLoaderService establishes a catalog from a Shopify-style CSV
// export. A malformed or empty file is a blocking condition: no partial
// catalog is ever created.
type CatalogLoaderService struct{}

func NewCatalogLoader() *CatalogLoaderService {
	return &CatalogLoaderService{}
}

func (s *CatalogLoaderService) Load(r io.Reader) (domain.Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Catalog{}, domain.WrapError(domain.ErrEmptyCatalog, "load catalog", errors.New("file has no header row"))
		}
		return domain.Catalog{}, domain.WrapError(domain.ErrInvalidInput, "load catalog", err)
	}
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Catalog{}, domain.WrapError(domain.ErrInvalidInput, "load catalog", err)
		}
		if blankRecord(record) {
			continue
		}
		fields := make(map[string]string, len(columns))
		for i, column := range columns {
			if i < len(record) {
				fields[column] = record[i]
			} else {
				fields[column] = ""
			}
		}
		rows = append(rows, fields)
	}

	if len(rows) == 0 {
		return domain.Catalog{}, domain.WrapError(domain.ErrEmptyCatalog, "load catalog", errors.New("file has no data rows"))
	}

	inheritVariantTitles(rows)

	// Variant rows repeat the parent handle, so derived keys are
	// deduplicated with the row position to keep identity unique.
	seen := make(map[string]bool, len(rows))
	products := make([]domain.Product, len(rows))
	for i, fields := range rows {
		key := domain.ProductKey(fields, i)
		for seen[key] {
			key = fmt.Sprintf("%s_%d", key, i)
		}
		seen[key] = true
		products[i] = domain.Product{
			ID:     key,
			Fields: fields,
		}
	}
	return domain.Catalog{Columns: columns, Products: products}, nil
}

// inheritVariantTitles fills blank variant titles from the first row of the
// same handle: a pre-pass collects handle titles, a post-pass fills blanks.
func inheritVariantTitles(rows []map[string]string) {
	titles := make(map[string]string)
	for _, fields := range rows {
		handle := strings.TrimSpace(fields[domain.ColumnHandle])
		title := strings.TrimSpace(fields[domain.ColumnTitle])
		if handle != "" && title != "" {
			if _, seen := titles[handle]; !seen {
				titles[handle] = title
			}
		}
	}
	for _, fields := range rows {
		handle := strings.TrimSpace(fields[domain.ColumnHandle])
		if handle == "" || strings.TrimSpace(fields[domain.ColumnTitle]) != "" {
			continue
		}
		if title, ok := titles[handle]; ok {
			fields[domain.ColumnTitle] = title
		}
	}
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
