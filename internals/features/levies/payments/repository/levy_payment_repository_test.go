package repository

import (
	"strings"
	"testing"
)

func TestLedgerSearchSkipsDeletedTraders(t *testing.T) {
	if !strings.Contains(ledgerSearchSQL, "trader_deleted_at IS NULL") {
		t.Fatal("ledger name search must not resolve soft-deleted traders")
	}
	if got := strings.Count(ledgerSearchSQL, "?"); got != 2 {
		t.Fatalf("ledger search placeholders = %d, want 2", got)
	}
}
