package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/drinkbox/storefront/internal/app"
	"github.com/drinkbox/storefront/internal/domain/catalog"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// catalogFile is the layout of a catalog import file:
//
//	products:
//	  - name: Kékfrankos 2021
//	    slug: kekfrankos-2021
//	    category: wine
//	    unit_price: "3490"
//	    stock: 120
type catalogFile struct {
	Products []catalogEntry `yaml:"products"`
}

type catalogEntry struct {
	Name                 string `yaml:"name"`
	Slug                 string `yaml:"slug"`
	Description          string `yaml:"description"`
	Category             string `yaml:"category"`
	UnitPrice            string `yaml:"unit_price"`
	Currency             string `yaml:"currency"`
	Stock                int    `yaml:"stock"`
	Active               *bool  `yaml:"active"`
	SubscriptionEligible bool   `yaml:"subscription_eligible"`
	ImageURL             string `yaml:"image_url"`
}

func (e catalogEntry) toProduct() (*catalog.Product, error) {
	price, err := decimal.NewFromString(e.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("product %s: invalid unit_price %q", e.Slug, e.UnitPrice)
	}
	active := true
	if e.Active != nil {
		active = *e.Active
	}
	return &catalog.Product{
		Name:                 e.Name,
		Slug:                 e.Slug,
		Description:          e.Description,
		Category:             e.Category,
		UnitPrice:            price,
		Currency:             e.Currency,
		Stock:                e.Stock,
		Active:               active,
		SubscriptionEligible: e.SubscriptionEligible,
		ImageURL:             e.ImageURL,
	}, nil
}

// parseCatalog decodes a catalog import file. Unknown keys are rejected so
// typos do not silently drop fields.
func parseCatalog(r io.Reader) ([]*catalog.Product, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog file is empty")
		}
		return nil, fmt.Errorf("failed to decode catalog file: %w", err)
	}
	if len(file.Products) == 0 {
		return nil, errors.New("catalog file lists no products")
	}

	seen := make(map[string]bool, len(file.Products))
	products := make([]*catalog.Product, 0, len(file.Products))
	for _, entry := range file.Products {
		if entry.Slug == "" {
			return nil, fmt.Errorf("product %q has no slug", entry.Name)
		}
		if seen[entry.Slug] {
			return nil, fmt.Errorf("duplicate slug %s", entry.Slug)
		}
		seen[entry.Slug] = true

		p, err := entry.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// ImportCatalogCmd upserts the products of a YAML file by slug.
func ImportCatalogCmd(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("invalid file flag: %w", err)
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer f.Close()

	products, err := parseCatalog(f)
	if err != nil {
		return err
	}

	env, err := openEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	adminService, err := app.NewProductAdminService(env.repos.Products, env.repos.Transactor, env.clock, env.logger)
	if err != nil {
		return fmt.Errorf("failed to create product admin service: %w", err)
	}

	created, updated, err := adminService.Import(cmd.Context(), products)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d products (%d created, %d updated)\n", created+updated, created, updated)
	return err
}

// InitCatalogCommands registers catalog-related commands
func InitCatalogCommands(rootCmd *cobra.Command) error {
	var catalogCmd = &cobra.Command{
		Use:   "catalog",
		Short: "Manage the product catalog",
	}

	var importCmd = &cobra.Command{
		Use:   "import",
		Short: "Import products from a YAML file, matching existing ones by slug",
		Args:  cobra.NoArgs,
		RunE:  ImportCatalogCmd,
	}
	importCmd.Flags().StringP("file", "f", "", "Path to the catalog YAML file")
	if err := importCmd.MarkFlagRequired("file"); err != nil {
		return err
	}

	catalogCmd.AddCommand(importCmd)
	rootCmd.AddCommand(catalogCmd)

	return nil
}
