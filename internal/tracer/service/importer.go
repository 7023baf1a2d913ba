package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/spendtrace/spendtrace/internal/tracer/domain"
	"github.com/spendtrace/spendtrace/internal/tracer/store"
	"github.com/spendtrace/spendtrace/pkg/idx"
	"github.com/spendtrace/spendtrace/pkg/slogx"
)

// importDateLayout is the purchase date format expected in import files.
const importDateLayout = "2006-01-02"

// ImportService bulk-loads historical purchase rows from a CSV source with
// columns: purchase_date, username, purchaser, shopname, value, subject.
// The whole batch runs in one transaction: any bad row rolls everything back.
type ImportService struct {
	Store          store.Store
	DetectLanguage func(string) string
}

// ImportCSV reads rows from r and appends them to the ledger. Usernames must
// resolve to existing users (ErrUnknownUser otherwise); shops are created
// lazily. Returns the number of purchases imported.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	log := slogx.FromContext(ctx)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 6
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("import: reading csv: %w", err)
	}
	if len(records) > 0 && records[0][0] == "purchase_date" {
		records = records[1:] // header row
	}

	var count int
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// Usernames repeat a lot in historical exports; resolve each once.
		users := make(map[string]domain.User)

		for i, rec := range records {
			row := i + 1

			purchaseDate, err := time.Parse(importDateLayout, rec[0])
			if err != nil {
				return fmt.Errorf("import: row %d: %w", row,
					invalidField("purchase_date", "expected "+importDateLayout))
			}

			username := rec[1]
			author, ok := users[username]
			if !ok {
				author, err = tx.Users().GetUserByUsername(ctx, username)
				if err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return fmt.Errorf("import: row %d: user %q: %w", row, username, ErrUnknownUser)
					}
					return err
				}
				users[username] = author
			}

			value, err := strconv.ParseFloat(rec[4], 64)
			if err != nil || value <= 0 {
				return fmt.Errorf("import: row %d: %w", row,
					invalidField("value", "must be a number greater than zero"))
			}

			shop, err := getOrCreateShop(ctx, tx, rec[3])
			if err != nil {
				return fmt.Errorf("import: row %d: %w", row, err)
			}

			subject := rec[5]
			language := ""
			if s.DetectLanguage != nil {
				language = sanitizeLanguage(s.DetectLanguage(subject))
			}

			purchase := domain.Purchase{
				ID:           idx.New().String(),
				UserID:       author.ID,
				ShopID:       shop.ID,
				Purchaser:    rec[2],
				PurchaseDate: purchaseDate.UTC(),
				Value:        value,
				Subject:      subject,
				Language:     language,
				CreatedAt:    time.Now().UTC(),
			}
			if err := tx.Purchases().CreatePurchase(ctx, purchase); err != nil {
				return fmt.Errorf("import: row %d: %w", row, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info("import finished", slog.Int("purchases", count))
	return count, nil
}
