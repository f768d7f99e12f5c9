package main

import (
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"

	"github.com/poiesic/corpus"
	"github.com/poiesic/corpus/core"
	"github.com/poiesic/corpus/ingestion"
)

var documents = []*core.Record{
	{Id: "kb-001", Title: "Requesting a refund", Category: "refund", Content: "Customers can request a refund within 30 days of purchase. Refunds are issued to the original payment method within 5 business days."},
	{Id: "kb-002", Title: "Chargeback disputes", Category: "refund", Content: "When a chargeback is filed, the account is flagged until the dispute is resolved with the card issuer."},
	{Id: "kb-003", Title: "Return shipping labels", Category: "refund", Content: "Prepaid return labels are emailed automatically once a return is approved. Labels expire after 14 days."},
	{Id: "kb-004", Title: "Money-back guarantee terms", Category: "refund", Content: "The money-back guarantee covers the first subscription term only and excludes usage-based charges."},
	{Id: "kb-010", Title: "Understanding your invoice", Category: "billing", Content: "Invoices are generated on the first day of each billing cycle and list every subscription line item with prorated charges."},
	{Id: "kb-011", Title: "Updating payment methods", Category: "billing", Content: "Payment methods can be updated from the billing settings page. The new card is charged on the next cycle."},
	{Id: "kb-012", Title: "Failed payment retries", Category: "billing", Content: "Failed payments are retried three times over seven days before the subscription is suspended."},
	{Id: "kb-013", Title: "Subscription tier changes", Category: "billing", Content: "Upgrading a subscription takes effect immediately with a prorated charge. Downgrades apply at the end of the current cycle."},
	{Id: "kb-014", Title: "Tax and VAT on invoices", Category: "billing", Content: "VAT is applied based on the billing address. Tax-exempt organizations can upload an exemption certificate."},
	{Id: "kb-020", Title: "Resetting your password", Category: "account", Content: "Use the forgot password link on the sign-in page. Reset emails are valid for one hour."},
	{Id: "kb-021", Title: "Enabling two-factor authentication", Category: "account", Content: "Two-factor authentication supports authenticator apps and hardware keys. Recovery codes are shown once at setup."},
	{Id: "kb-022", Title: "Changing your email address", Category: "account", Content: "Email changes require confirmation from both the old and the new address before taking effect."},
	{Id: "kb-023", Title: "Deleting your account", Category: "account", Content: "Account deletion is permanent after a 30 day grace period. Export your data before requesting deletion."},
	{Id: "kb-030", Title: "API rate limits", Category: "developer", Content: "The API allows 600 requests per minute per key. Responses include remaining quota in the rate limit headers."},
	{Id: "kb-031", Title: "Webhook delivery and retries", Category: "developer", Content: "Webhooks are signed with a shared secret and retried with exponential backoff for up to 24 hours."},
	{Id: "kb-032", Title: "Rotating API keys", Category: "developer", Content: "Keys can be rotated without downtime. Old keys keep working for 24 hours after a rotation."},
	{Id: "kb-033", Title: "Sandbox environment", Category: "developer", Content: "The sandbox mirrors production APIs with synthetic data. Sandbox keys never touch live billing."},
	{Id: "kb-040", Title: "Exporting your data", Category: "data", Content: "Exports are generated as compressed JSON archives and remain downloadable for seven days."},
	{Id: "kb-041", Title: "Data retention policy", Category: "data", Content: "Operational logs are retained for 90 days. Backups are kept for one year in encrypted storage."},
	{Id: "kb-042", Title: "Importing documents in bulk", Category: "data", Content: "Bulk imports accept JSON and JSON-Lines files. Duplicate ids are skipped rather than overwritten."},
}

var seedFileName = flag.String("src", "", "JSON or JSON-Lines file of seed documents")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// recordsFromSlice returns an iterator over a slice of records.
func recordsFromSlice(records []*core.Record) iter.Seq[*core.Record] {
	return func(yield func(*core.Record) bool) {
		for _, record := range records {
			if !yield(record) {
				return
			}
		}
	}
}

// ingestBatched reads from a source iterator and ingests documents in batches.
func ingestBatched(ctx context.Context, pipeline *ingestion.Pipeline, source iter.Seq[*core.Record], batchSize int) (*ingestion.Report, error) {
	total := &ingestion.Report{}
	batch := make([]*core.Record, 0, batchSize)

	flush := func() error {
		report, err := pipeline.Ingest(ctx, batch)
		if report != nil {
			total.Inserted += report.Inserted
			total.Skipped += report.Skipped
			total.Failed = append(total.Failed, report.Failed...)
		}
		batch = batch[:0]
		return err
	}

	for record := range source {
		batch = append(batch, record)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}

	// Process any remaining documents
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return total, err
		}
	}

	return total, nil
}

func main() {
	db, err := corpus.NewDatabase("./corpus_db")
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := db.EnsureIndexes(ctx); err != nil {
		panic(err)
	}

	ingester, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	// Determine source of seed data
	var source iter.Seq[*core.Record]
	if seedFileName != nil && *seedFileName != "" {
		records, err := ingestion.LoadRecords(*seedFileName)
		if err != nil {
			panic(err)
		}
		source = recordsFromSlice(records)
	} else {
		source = recordsFromSlice(documents)
	}

	// Ingest in batches of 5
	report, err := ingestBatched(ctx, ingester, source, 5)
	if err != nil {
		panic(err)
	}

	fmt.Printf("inserted=%d skipped=%d failed=%d\n",
		report.Inserted, report.Skipped, len(report.Failed))
}
