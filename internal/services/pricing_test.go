package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDepositSplitHalvesAndSums(t *testing.T) {
	cases := []struct {
		total     string
		deposit   string
		remaining string
	}{
		{"100.00", "50.00", "50.00"},
		{"45.50", "22.75", "22.75"},
		{"0.01", "0.01", "0.00"},
		{"33.33", "16.67", "16.66"},
		{"0.00", "0.00", "0.00"},
	}
	for _, tc := range cases {
		total := decimal.RequireFromString(tc.total)
		deposit, remaining, err := DepositSplit(total)
		if err != nil {
			t.Fatalf("DepositSplit(%s): unexpected error: %v", tc.total, err)
		}
		if got := deposit.StringFixed(2); got != tc.deposit {
			t.Fatalf("DepositSplit(%s): deposit = %s, want %s", tc.total, got, tc.deposit)
		}
		if got := remaining.StringFixed(2); got != tc.remaining {
			t.Fatalf("DepositSplit(%s): remaining = %s, want %s", tc.total, got, tc.remaining)
		}
		if !deposit.Add(remaining).Equal(total) {
			t.Fatalf("DepositSplit(%s): parts do not sum to total", tc.total)
		}
	}
}

func TestDepositSplitRejectsNegative(t *testing.T) {
	_, _, err := DepositSplit(decimal.RequireFromString("-1.00"))
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"12.50", 1250},
		{"0.00", 0},
		{"99.99", 9999},
		{"100", 10000},
	}
	for _, tc := range cases {
		if got := MinorUnits(decimal.RequireFromString(tc.amount)); got != tc.want {
			t.Fatalf("MinorUnits(%s) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}
