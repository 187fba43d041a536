// =============================================================================
// Master Data Converter - Catalog
// =============================================================================
//
// The catalog is the read side of the converter. It loads the JSON documents
// written by the "pa" and "mda" conversions and answers lookups by company id.
//
// LOADING:
//   Both documents are read concurrently. Either path may be empty, in which
//   case that list stays empty. A configured path that cannot be read or
//   decoded fails the whole load.
//
// LOOKUPS:
//   Company ids are not unique in the source data. A lookup returns the
//   first record in document order, which is (country, company) order.
//
// =============================================================================

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/masterdata-converter/internal/types"
)

// Catalog holds the loaded master data. It is read-only after Load.
type Catalog struct {
	permissionAdministrators []types.PermissionAdministrator
	marketDataAdministrators []types.MarketDataAdministrator
}

// New builds a catalog from in-memory records.
func New(pas []types.PermissionAdministrator, mdas []types.MarketDataAdministrator) *Catalog {
	if pas == nil {
		pas = []types.PermissionAdministrator{}
	}
	if mdas == nil {
		mdas = []types.MarketDataAdministrator{}
	}
	return &Catalog{
		permissionAdministrators: pas,
		marketDataAdministrators: mdas,
	}
}

// Load reads the pa and mda documents.
//
// PARAMETERS:
//   - ctx: Cancels the load.
//   - paFile: The permission administrator document. May be empty.
//   - mdaFile: The market data administrator document. May be empty.
//
// RETURNS:
//   - The loaded catalog.
//   - An error if a configured document cannot be read or decoded.
func Load(ctx context.Context, paFile, mdaFile string) (*Catalog, error) {
	var (
		pas  []types.PermissionAdministrator
		mdas []types.MarketDataAdministrator
	)

	g, ctx := errgroup.WithContext(ctx)

	if paFile != "" {
		g.Go(func() error {
			return readDocument(ctx, paFile, &pas)
		})
	}
	if mdaFile != "" {
		g.Go(func() error {
			return readDocument(ctx, mdaFile, &mdas)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return New(pas, mdas), nil
}

func readDocument(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// PermissionAdministrators returns all permission administrators.
func (c *Catalog) PermissionAdministrators() []types.PermissionAdministrator {
	return c.permissionAdministrators
}

// MarketDataAdministrators returns all market data administrators.
func (c *Catalog) MarketDataAdministrators() []types.MarketDataAdministrator {
	return c.marketDataAdministrators
}

// PermissionAdministrator returns the first permission administrator with
// the given company id, or types.ErrNotFound.
func (c *Catalog) PermissionAdministrator(companyID string) (types.PermissionAdministrator, error) {
	for _, pa := range c.permissionAdministrators {
		if pa.CompanyID == companyID {
			return pa, nil
		}
	}
	return types.PermissionAdministrator{}, fmt.Errorf("permission administrator %q: %w", companyID, types.ErrNotFound)
}

// MarketDataAdministrator returns the first market data administrator with
// the given company id, or types.ErrNotFound.
func (c *Catalog) MarketDataAdministrator(companyID string) (types.MarketDataAdministrator, error) {
	for _, mda := range c.marketDataAdministrators {
		if mda.CompanyID == companyID {
			return mda, nil
		}
	}
	return types.MarketDataAdministrator{}, fmt.Errorf("market data administrator %q: %w", companyID, types.ErrNotFound)
}

// Find looks a company id up in the list selected by recordType.
func (c *Catalog) Find(recordType types.RecordType, companyID string) (types.Record, error) {
	var (
		record types.Record
		err    error
	)

	switch recordType {
	case types.PermissionAdministratorType:
		record, err = c.PermissionAdministrator(companyID)
	case types.MarketDataAdministratorType:
		record, err = c.MarketDataAdministrator(companyID)
	default:
		err = fmt.Errorf("%w: %q", types.ErrUnknownRecordType, recordType)
	}

	if err != nil {
		return nil, err
	}
	return record, nil
}
