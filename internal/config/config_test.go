package config

import (
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a@b.com", []string{"a@b.com"}},
		{"a@b.com, c@d.com ,,", []string{"a@b.com", "c@d.com"}},
	}
	for _, tc := range cases {
		if got := splitList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsAdminEmail(t *testing.T) {
	cfg := Config{AdminEmails: []string{"Admin@Selta.shop"}}

	if !cfg.IsAdminEmail("admin@selta.shop") {
		t.Error("expected case-insensitive match")
	}
	if cfg.IsAdminEmail("other@selta.shop") {
		t.Error("unexpected match")
	}
	if (Config{}).IsAdminEmail("admin@selta.shop") {
		t.Error("empty list should never match")
	}
}
