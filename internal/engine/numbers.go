package engine

import (
	"context"
	"fmt"
	"time"
)

// Sequence scopes for the yearly counters.
const (
	seqContract = "contract"
	seqPayment  = "payment"
)

// formatNumber renders a document number such as CTR-2026-0042.  The
// sequence part is padded to four digits and grows past that without
// truncation.
func formatNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%04d-%04d", prefix, year, seq)
}

// nextContractNumber draws the next CTR number for the current year.
func nextContractNumber(ctx context.Context, seqs SequenceStore, now time.Time) (string, error) {
	year := now.UTC().Year()
	n, err := seqs.Next(ctx, seqContract, year)
	if err != nil {
		return "", err
	}
	return formatNumber("CTR", year, n), nil
}

// nextPaymentNumber draws the next PAY number for the current year.
func nextPaymentNumber(ctx context.Context, seqs SequenceStore, now time.Time) (string, error) {
	year := now.UTC().Year()
	n, err := seqs.Next(ctx, seqPayment, year)
	if err != nil {
		return "", err
	}
	return formatNumber("PAY", year, n), nil
}
