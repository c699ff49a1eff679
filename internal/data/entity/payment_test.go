package entity

import "testing"

func TestMapProviderStatus(t *testing.T) {
	cases := []struct {
		provider string
		want     PaymentStatus
	}{
		{"approved", PaymentStatusApproved},
		{"cancelled", PaymentStatusCancelled},
		{"rejected", PaymentStatusCancelled},
		{"refunded", PaymentStatusRefunded},
		{"pending", PaymentStatusPending},
		{"in_process", PaymentStatusPending},
		{"authorized", PaymentStatusPending},
		{"charged_back", PaymentStatusPending},
		{"", PaymentStatusPending},
		{"something_new", PaymentStatusPending},
	}

	for _, tc := range cases {
		if got := MapProviderStatus(tc.provider); got != tc.want {
			t.Errorf("MapProviderStatus(%q) = %s, want %s", tc.provider, got, tc.want)
		}
	}
}
