// Copyright 2026 The Waggle Authors
// SPDX-License-Identifier: Apache-2.0

// Package hive loads the deployment inventory: the set of known
// nodes, their already-built system closures, their tags, and how to
// reach them. The hive file is the boundary to both external
// collaborators the deployment engine does not implement — the
// inventory (connection targets) and the build stage (closure store
// paths).
//
// The file is YAML, named explicitly via the WAGGLE_HIVE environment
// variable or the --hive flag. There is no search path and no
// automatic discovery; deployments should be deterministic and
// auditable.
package hive

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/waggle-tools/waggle/lib/nix"
	"github.com/waggle-tools/waggle/lib/sshexec"
)

// EnvVar names the hive file when no --hive flag is given.
const EnvVar = "WAGGLE_HIVE"

// Node is one machine in the hive.
type Node struct {
	// Closure is the store path of the node's built system closure.
	// Empty means the node has not been built; it will be skipped.
	Closure string `yaml:"closure,omitempty"`

	// Tags group nodes for selection (e.g. "@web" in --on).
	Tags []string `yaml:"tags,omitempty"`

	// Target says how to reach the node. Nil means the node cannot
	// be deployed to and is diverted to the skip set.
	Target *sshexec.Target `yaml:"target,omitempty"`
}

// HasTag reports whether the node carries the tag.
func (n Node) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Hive is the full inventory.
type Hive struct {
	Nodes map[string]Node `yaml:"nodes"`
}

// Load reads the hive file named by WAGGLE_HIVE.
func Load() (*Hive, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your hive file, or use the --hive flag", EnvVar)
	}
	return LoadFile(path)
}

// LoadFile reads and validates a hive file.
func LoadFile(path string) (*Hive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var hive Hive
	if err := yaml.Unmarshal(data, &hive); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := hive.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &hive, nil
}

// validate rejects structurally broken inventories early, before any
// selection or scheduling happens.
func (h *Hive) validate() error {
	if len(h.Nodes) == 0 {
		return fmt.Errorf("no nodes defined")
	}
	for name, node := range h.Nodes {
		if name == "" {
			return fmt.Errorf("node with empty name")
		}
		if node.Closure != "" {
			if err := nix.ValidateStorePath(node.Closure); err != nil {
				return fmt.Errorf("node %q: %w", name, err)
			}
		}
		if node.Target != nil && node.Target.Host == "" {
			return fmt.Errorf("node %q: target without a host", name)
		}
	}
	return nil
}

// Names returns every node name, sorted.
func (h *Hive) Names() []string {
	names := make([]string, 0, len(h.Nodes))
	for name := range h.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Closures returns the name → closure mapping for nodes that have a
// built closure.
func (h *Hive) Closures() map[string]string {
	closures := make(map[string]string)
	for name, node := range h.Nodes {
		if node.Closure != "" {
			closures[name] = node.Closure
		}
	}
	return closures
}
