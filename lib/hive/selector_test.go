// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package hive

import (
	"strings"
	"testing"
)

func selectorHive() *Hive {
	return &Hive{Nodes: map[string]Node{
		"web-01":  {Tags: []string{"web"}},
		"web-02":  {Tags: []string{"web", "canary"}},
		"db-01":   {Tags: []string{"db"}},
		"monitor": {},
	}}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expression string
		want       []string
	}{
		{"", []string{"db-01", "monitor", "web-01", "web-02"}},
		{"  ", []string{"db-01", "monitor", "web-01", "web-02"}},
		{"monitor", []string{"monitor"}},
		{"web-*", []string{"web-01", "web-02"}},
		{"@web", []string{"web-01", "web-02"}},
		{"@canary", []string{"web-02"}},
		{"@db,monitor", []string{"db-01", "monitor"}},
		{"web-01,web-01,@canary", []string{"web-01", "web-02"}},
		{"@nosuchtag", nil},
		{"nosuchnode", nil},
	}

	hive := selectorHive()
	for _, test := range tests {
		got, err := hive.Select(test.expression)
		if err != nil {
			t.Errorf("Select(%q): %v", test.expression, err)
			continue
		}
		if len(got) != len(test.want) {
			t.Errorf("Select(%q) = %v, want %v", test.expression, got, test.want)
			continue
		}
		for i := range test.want {
			if got[i] != test.want[i] {
				t.Errorf("Select(%q)[%d] = %q, want %q", test.expression, i, got[i], test.want[i])
			}
		}
	}
}

func TestSelect_BadPattern(t *testing.T) {
	t.Parallel()

	_, err := selectorHive().Select("web-[")
	if err == nil {
		t.Fatal("expected error for malformed glob")
	}
	if !strings.Contains(err.Error(), "web-[") {
		t.Errorf("error = %v, want the offending pattern", err)
	}
}
