package usecase

import (
	"strings"
	"testing"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

func TestLoadCatalog(t *testing.T) {
	loader := NewCatalogLoader()
	csv := strings.Join([]string{
		"Handle,Title,Vendor,Variant Price",
		"mat,Yoga Mat,FlowGoods,42.00",
		"balm,Lavender Balm,CraftCo,12.50",
	}, "\n")

	catalog, err := loader.Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(catalog.Columns) != 4 || catalog.Columns[0] != "Handle" {
		t.Fatalf("unexpected columns %v", catalog.Columns)
	}
	if len(catalog.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(catalog.Products))
	}
	if catalog.Products[0].ID != "mat" {
		t.Fatalf("expected handle-derived id, got %q", catalog.Products[0].ID)
	}
	if catalog.Products[1].Title() != "Lavender Balm" {
		t.Fatalf("unexpected title %q", catalog.Products[1].Title())
	}
}

func TestLoadVariantTitleInheritance(t *testing.T) {
	loader := NewCatalogLoader()
	csv := strings.Join([]string{
		"Handle,Title,Variant Price",
		"mat,Yoga Mat,42.00",
		"mat,,38.00",
		"mat,,35.00",
	}, "\n")

	catalog, err := loader.Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for i, product := range catalog.Products {
		if product.Title() != "Yoga Mat" {
			t.Fatalf("row %d: expected inherited title, got %q", i, product.Title())
		}
	}
}

func TestLoadVariantTitleInheritanceWorksOutOfOrder(t *testing.T) {
	loader := NewCatalogLoader()
	// The titled row comes after a blank variant of the same handle; the
	// pre-pass still finds it.
	csv := strings.Join([]string{
		"Handle,Title",
		"mat,",
		"mat,Yoga Mat",
	}, "\n")

	catalog, err := loader.Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if catalog.Products[0].Title() != "Yoga Mat" {
		t.Fatalf("expected backfilled title, got %q", catalog.Products[0].Title())
	}
}

func TestLoadKeyDerivation(t *testing.T) {
	loader := NewCatalogLoader()
	csv := strings.Join([]string{
		"ID,Title",
		"sku-9,Tea",
		",Anonymous",
	}, "\n")

	catalog, err := loader.Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if catalog.Products[0].ID != "sku-9" {
		t.Fatalf("expected id column fallback, got %q", catalog.Products[0].ID)
	}
	if catalog.Products[1].ID != "product_1" {
		t.Fatalf("expected positional key, got %q", catalog.Products[1].ID)
	}
}

func TestLoadVariantRowsGetUniqueKeys(t *testing.T) {
	loader := NewCatalogLoader()
	csv := strings.Join([]string{
		"Handle,Title,Variant Price",
		"mat-01,Yoga Mat,42.00",
		"mat-01,,38.00",
		"mat-01,,35.00",
	}, "\n")

	catalog, err := loader.Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	seen := make(map[string]bool)
	for i, product := range catalog.Products {
		if seen[product.ID] {
			t.Fatalf("row %d: duplicate key %q", i, product.ID)
		}
		seen[product.ID] = true
	}
	if catalog.Products[0].ID != "mat-01" {
		t.Fatalf("first variant must keep the handle key, got %q", catalog.Products[0].ID)
	}
	if catalog.Products[1].ID != "mat-01_1" || catalog.Products[2].ID != "mat-01_2" {
		t.Fatalf("expected positional suffixes, got %q and %q",
			catalog.Products[1].ID, catalog.Products[2].ID)
	}
}

func TestLoadSuffixedKeyAvoidsNaturalCollision(t *testing.T) {
	loader := NewCatalogLoader()
	// A vendor handle that happens to equal the suffix a duplicate would
	// take must not collide with it.
	csv := strings.Join([]string{
		"Handle,Title",
		"mat,Yoga Mat",
		"mat,",
		"mat_1,Yoga Mat Strap",
	}, "\n")

	catalog, err := loader.Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	seen := make(map[string]bool)
	for i, product := range catalog.Products {
		if seen[product.ID] {
			t.Fatalf("row %d: duplicate key %q", i, product.ID)
		}
		seen[product.ID] = true
	}
}

func TestLoadSkipsBlankRows(t *testing.T) {
	loader := NewCatalogLoader()
	csv := strings.Join([]string{
		"Handle,Title",
		"mat,Yoga Mat",
		",",
		"balm,Lavender Balm",
	}, "\n")

	catalog, err := loader.Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(catalog.Products) != 2 {
		t.Fatalf("expected blank row skipped, got %d products", len(catalog.Products))
	}
}

func TestLoadEmptyFile(t *testing.T) {
	loader := NewCatalogLoader()

	_, err := loader.Load(strings.NewReader(""))
	if !domain.IsKind(err, domain.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	loader := NewCatalogLoader()

	_, err := loader.Load(strings.NewReader("Handle,Title\n"))
	if !domain.IsKind(err, domain.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestLoadMalformedCSV(t *testing.T) {
	loader := NewCatalogLoader()

	_, err := loader.Load(strings.NewReader("Handle,Title\n\"mat,Yoga Mat\n"))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadShortRowsPadded(t *testing.T) {
	loader := NewCatalogLoader()
	csv := strings.Join([]string{
		"Handle,Title,Vendor",
		"mat,Yoga Mat",
	}, "\n")

	catalog, err := loader.Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := catalog.Products[0].Fields["Vendor"]; got != "" {
		t.Fatalf("expected empty cell for short row, got %q", got)
	}
}
