// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type issue struct {
	scenario string
	seed     uint64
	err      error
}

func (i *issue) Error() error {
	return i.err
}

func (i *issue) Scenario() string {
	return i.scenario
}

func (i *issue) Seed() uint64 {
	return i.seed
}

// IssuesCollector gathers failed scenarios reported by concurrent workers.
type IssuesCollector struct {
	issues []issue
	mu     sync.Mutex
}

func (c *IssuesCollector) AddIssue(scenario string, seed uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issues = append(c.issues, issue{scenario, seed, err})
}

func (c *IssuesCollector) NumIssues() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.issues)
}

func (c *IssuesCollector) GetIssues() []issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issues
}

type issueRecord struct {
	Scenario string `json:"scenario"`
	Seed     uint64 `json:"seed"`
	Error    string `json:"error"`
}

// ExportIssues prints all collected issues and dumps each of them into a JSON
// file of a fresh temporary directory, which is returned. If there are no
// issues, nothing is exported and an empty path is returned.
func (c *IssuesCollector) ExportIssues() (string, error) {
	issues := c.GetIssues()
	if len(issues) == 0 {
		return "", nil
	}
	jsonDir, err := os.MkdirTemp("", "fuzzy_issues_*")
	if err != nil {
		return "", fmt.Errorf("failed to create output directory for %d issues", len(issues))
	}
	for i, issue := range issues {
		fmt.Printf("----------------------------\n")
		fmt.Printf("%s (seed %d)\n%v\n", issue.scenario, issue.seed, issue.err)

		path := filepath.Join(jsonDir, fmt.Sprintf("issue_%06d.json", i))
		if err := exportIssue(issue, path); err == nil {
			fmt.Printf("Issue dumped to %s\n", path)
		} else {
			fmt.Printf("failed to dump issue: %v\n", err)
		}
	}
	return jsonDir, nil
}

func exportIssue(issue issue, path string) error {
	data, err := json.MarshalIndent(issueRecord{
		Scenario: issue.scenario,
		Seed:     issue.seed,
		Error:    issue.err.Error(),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
