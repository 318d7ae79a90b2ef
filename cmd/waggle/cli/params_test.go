// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"
	"time"
)

func TestFlagsFromParams_BindsTaggedFields(t *testing.T) {
	t.Parallel()

	type params struct {
		Parallel int           `flag:"parallel,p" desc:"parallelism limit" default:"10"`
		Verbose  bool          `flag:"verbose,v" desc:"be verbose"`
		On       string        `flag:"on" desc:"node selector"`
		Grace    time.Duration `flag:"grace" default:"30s"`
		Ignored  string
	}

	var p params
	flagSet := FlagsFromParams("apply", &p)

	if err := flagSet.Parse([]string{"-p", "4", "-v", "--on", "@web"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Parallel != 4 {
		t.Errorf("Parallel = %d, want 4", p.Parallel)
	}
	if !p.Verbose {
		t.Error("Verbose not set")
	}
	if p.On != "@web" {
		t.Errorf("On = %q, want @web", p.On)
	}
	if p.Grace != 30*time.Second {
		t.Errorf("Grace = %v, want the 30s default", p.Grace)
	}
	if flagSet.Lookup("Ignored") != nil || flagSet.Lookup("ignored") != nil {
		t.Error("untagged field was bound")
	}
}

func TestFlagsFromParams_Defaults(t *testing.T) {
	t.Parallel()

	type params struct {
		Parallel int  `flag:"parallel" default:"10"`
		Gzip     bool `flag:"gzip" default:"true"`
	}

	var p params
	flagSet := FlagsFromParams("apply", &p)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Parallel != 10 || !p.Gzip {
		t.Errorf("defaults not applied: %+v", p)
	}
}

func TestFlagsFromParams_EmbeddedStruct(t *testing.T) {
	t.Parallel()

	type common struct {
		Hive string `flag:"hive" desc:"hive file path"`
	}
	type params struct {
		common
		Verbose bool `flag:"verbose,v"`
	}

	var p params
	flagSet := FlagsFromParams("nodes", &p)
	if err := flagSet.Parse([]string{"--hive", "/etc/hive.yaml"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Hive != "/etc/hive.yaml" {
		t.Errorf("embedded field Hive = %q", p.Hive)
	}
}

func TestFlagsFromParams_PanicsOnUnsupportedType(t *testing.T) {
	t.Parallel()

	type params struct {
		Bad float32 `flag:"bad"`
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unsupported field type")
		}
	}()
	var p params
	FlagsFromParams("apply", &p)
}

func TestFlagsFromParams_PanicsOnNonStruct(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-struct params")
		}
	}()
	value := 3
	FlagsFromParams("apply", &value)
}
