// Command vitrine-import stores one catalog product per image directory.
// The directory name becomes the SKU; existing products are replaced.
package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/llehouerou/vitrine/internal/catalog"
	"github.com/llehouerou/vitrine/internal/config"
)

func main() {
	catalogPath := pflag.String("catalog", "", "product catalog database (default from config)")
	dryRun := pflag.Bool("dry-run", false, "list what would be imported")
	pflag.Parse()

	dirs := pflag.Args()
	if len(dirs) == 0 {
		log.Fatalf("usage: vitrine-import [--catalog PATH] [--dry-run] DIR...")
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *catalogPath != "" {
		cfg.Catalog = *catalogPath
	}

	c, err := catalog.Open(cfg.GetCatalogPath())
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer c.Close()
	log.Printf("Importing into %s", cfg.GetCatalogPath())

	imported := 0
	for _, dir := range dirs {
		p, err := productFromDir(dir)
		if err != nil {
			log.Printf("  ERROR: %s: %v", dir, err)
			continue
		}
		if len(p.Media) == 0 {
			log.Printf("Skipping %s: no images", dir)
			continue
		}

		log.Printf("Importing %s (%d images)", p.SKU, len(p.Media))
		if *dryRun {
			for _, ref := range p.Media {
				log.Printf("  %s", filepath.Base(ref))
			}
			continue
		}
		if err := c.SaveProduct(p); err != nil {
			log.Printf("  ERROR: %v", err)
			continue
		}
		imported++
	}

	log.Printf("Import complete: %d of %d products", imported, len(dirs))
	if imported < len(dirs) && !*dryRun {
		os.Exit(1)
	}
}

// productFromDir builds a product from the images directly inside dir.
func productFromDir(dir string) (catalog.Product, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return catalog.Product{}, err
	}
	files, err := catalog.ScanDir(abs)
	if err != nil {
		return catalog.Product{}, err
	}

	name := filepath.Base(abs)
	return catalog.Product{
		SKU:   strings.ToUpper(strings.ReplaceAll(name, " ", "-")),
		Title: name,
		Media: files,
	}, nil
}
