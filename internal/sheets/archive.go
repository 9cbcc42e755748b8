// Package sheets appends archived checkouts to a Google spreadsheet ledger.
package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const defaultRange = "Checkouts!A:H"

type ArchiveExporter struct {
	service       *sheets.Service
	spreadsheetID string
	writeRange    string
}

type Config struct {
	CredentialsJSON []byte
	SpreadsheetID   string
	// Range defaults to "Checkouts!A:H".
	Range string
}

func New(ctx context.Context, cfg Config) (*ArchiveExporter, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(cfg.CredentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newExporter(service, cfg), nil
}

func newExporter(service *sheets.Service, cfg Config) *ArchiveExporter {
	writeRange := cfg.Range
	if writeRange == "" {
		writeRange = defaultRange
	}

	return &ArchiveExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		writeRange:    writeRange,
	}
}

// AppendCheckout writes one row per archived checkout.
func (e *ArchiveExporter) AppendCheckout(ctx context.Context, archive domain.CheckoutArchive) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{Row(archive)},
	}

	_, err := e.service.Spreadsheets.Values.
		Append(e.spreadsheetID, e.writeRange, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append checkout %s to spreadsheet: %w", archive.CheckoutID, err)
	}

	return nil
}

// Row lays out the columns: archived at, checkout, cart, user, outcome,
// item count, total price, archived date.
func Row(a domain.CheckoutArchive) []interface{} {
	return []interface{}{
		a.ArchivedAt.UTC().Format(time.RFC3339),
		a.CheckoutID,
		a.CartID,
		a.UserID,
		a.Outcome,
		a.ItemCount,
		a.TotalPrice,
		a.ArchivedAt.UTC().Format("2006-01-02"),
	}
}
