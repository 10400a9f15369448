package usecase

import (
	"fmt"
	"time"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

// Column names appended to the export on top of the input column universe.
const (
	ColumnShoppingCategory      = "Google Shopping / Google Product Category"
	ColumnShoppingGender        = "Google Shopping / Gender"
	ColumnShoppingAgeGroup      = "Google Shopping / Age Group"
	ColumnShoppingCondition     = "Google Shopping / Condition"
	ColumnShoppingCustomProduct = "Google Shopping / Custom Product"
	ColumnShoppingCustomLabel0  = "Google Shopping / Custom Label 0"
	ColumnShoppingCustomLabel1  = "Google Shopping / Custom Label 1"
	ColumnShoppingCustomLabel2  = "Google Shopping / Custom Label 2"
	ColumnShoppingCustomLabel3  = "Google Shopping / Custom Label 3"
	ColumnShoppingCustomLabel4  = "Google Shopping / Custom Label 4"

	ColumnTrackingStatus     = "Enrichment Status"
	ColumnTrackingCollection = "Detected Collection"
	ColumnTrackingDate       = "Enriched Date"
)

var shoppingColumns = []string{
	ColumnShoppingCategory,
	ColumnShoppingGender,
	ColumnShoppingAgeGroup,
	ColumnShoppingCondition,
	ColumnShoppingCustomProduct,
	ColumnShoppingCustomLabel0,
	ColumnShoppingCustomLabel1,
	ColumnShoppingCustomLabel2,
	ColumnShoppingCustomLabel3,
	ColumnShoppingCustomLabel4,
}

var trackingColumns = []string{
	ColumnTrackingStatus,
	ColumnTrackingCollection,
	ColumnTrackingDate,
}

// Exporter re-serializes the catalog for re-import. Import-ready mode
// overwrites the four enrichment target columns and appends the shopping
// feed columns; tracking mode adds the three bookkeeping columns on top.
// Internal state (identity keys, snapshots, enrichment struct) never leaks
// into the output.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportRows renders the header and data rows. Exporting an empty catalog
// or a catalog with nothing enriched is a blocking condition.
func (e *Exporter) ExportRows(catalog domain.Catalog, tracking bool) ([]string, [][]string, error) {
	if catalog.Empty() {
		return nil, nil, domain.ErrEmptyCatalog
	}
	if catalog.EnrichedCount() == 0 {
		return nil, nil, domain.ErrNothingEnriched
	}

	header := exportHeader(catalog, tracking)
	rows := make([][]string, len(catalog.Products))
	for i, product := range catalog.Products {
		row := make([]string, len(header))
		for j, column := range header {
			row[j] = exportCell(product, column, tracking)
		}
		rows[i] = row
	}
	return header, rows, nil
}

func exportHeader(catalog domain.Catalog, tracking bool) []string {
	header := append([]string(nil), catalog.Columns...)
	seen := make(map[string]bool, len(header))
	for _, column := range header {
		seen[column] = true
	}

	appendMissing := func(columns []string) {
		for _, column := range columns {
			if !seen[column] {
				header = append(header, column)
				seen[column] = true
			}
		}
	}

	// Enrichment target columns must exist even when the input lacked them.
	appendMissing([]string{domain.ColumnBodyHTML, domain.ColumnTags, domain.ColumnSEOTitle, domain.ColumnSEODescription})
	appendMissing(shoppingColumns)
	if tracking {
		appendMissing(trackingColumns)
	}
	return header
}

func exportCell(product domain.Product, column string, tracking bool) string {
	enr := product.Enrichment

	if enr != nil {
		switch column {
		case domain.ColumnBodyHTML:
			return firstNonEmpty(enr.NewDescription, enr.OriginalDescription)
		case domain.ColumnTags:
			return firstNonEmpty(enr.NewTags, enr.OriginalTags)
		case domain.ColumnSEOTitle:
			return firstNonEmpty(enr.NewSEOTitle, enr.OriginalSEOTitle)
		case domain.ColumnSEODescription:
			return firstNonEmpty(enr.NewSEODescription, enr.OriginalSEODescription)
		case ColumnShoppingCategory:
			return enr.Shopping.Category
		case ColumnShoppingGender:
			return enr.Shopping.Gender
		case ColumnShoppingAgeGroup:
			return enr.Shopping.AgeGroup
		case ColumnShoppingCondition:
			return enr.Shopping.Condition
		case ColumnShoppingCustomProduct:
			return enr.Shopping.CustomProduct
		case ColumnShoppingCustomLabel0:
			return enr.Shopping.CustomLabel0
		case ColumnShoppingCustomLabel1:
			return enr.Shopping.CustomLabel1
		case ColumnShoppingCustomLabel2:
			return enr.Shopping.CustomLabel2
		case ColumnShoppingCustomLabel3:
			return enr.Shopping.CustomLabel3
		case ColumnShoppingCustomLabel4:
			return enr.Shopping.CustomLabel4
		}
	}

	if tracking {
		switch column {
		case ColumnTrackingStatus:
			if product.Enriched() {
				return "Enriched"
			}
			return "Pending"
		case ColumnTrackingCollection:
			if enr != nil {
				return string(enr.Collection)
			}
			return ""
		case ColumnTrackingDate:
			if enr != nil {
				return enr.EnrichedAt.Format(time.RFC3339)
			}
			return ""
		}
	}

	return product.Fields[column]
}

// ExportFilename builds the timestamped download name for an export mode.
func ExportFilename(tracking bool, format string, now time.Time) string {
	prefix := "thrivera_shopify_import"
	if tracking {
		prefix = "thrivera_products_with_tracking"
	}
	if format == "" {
		format = "csv"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("2006-01-02"), format)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
