// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metadata

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestTracker_UpdateIssueStats(t *testing.T) {
	type update struct {
		createdAt time.Time
		updatedAt time.Time
	}

	jan := func(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name      string
		updates   []update
		wantStats IssueStats
	}{
		{
			name:      "no issues",
			wantStats: IssueStats{},
		},
		{
			name:    "single issue",
			updates: []update{{jan(1), jan(2)}},
			wantStats: IssueStats{
				Count:         1,
				OldestCreated: jan(1),
				NewestUpdated: jan(2),
			},
		},
		{
			name:    "out of order",
			updates: []update{{jan(5), jan(6)}, {jan(1), jan(20)}, {jan(3), jan(4)}},
			wantStats: IssueStats{
				Count:         3,
				OldestCreated: jan(1),
				NewestUpdated: jan(20),
			},
		},
		{
			name:    "zero timestamps ignored for range",
			updates: []update{{time.Time{}, time.Time{}}, {jan(7), jan(8)}},
			wantStats: IssueStats{
				Count:         2,
				OldestCreated: jan(7),
				NewestUpdated: jan(8),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := New()
			for _, u := range tt.updates {
				tracker.UpdateIssueStats(u.createdAt, u.updatedAt)
			}

			if diff := cmp.Diff(tt.wantStats, tracker.Stats()); diff != "" {
				t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTracker_GenerateMetadata(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := []time.Time{start, start.Add(1500 * time.Millisecond)}
	tracker := newWithClock(func() time.Time {
		now := clock[0]
		clock = clock[1:]
		return now
	})

	tracker.IncrementAPICall()
	tracker.SetTotalMatched(42)
	tracker.UpdateIssueStats(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	tracker.UpdateIssueStats(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	params := ExportParams{
		BaseURL:    "https://example.atlassian.net/",
		JQL:        "project = ABC",
		MaxResults: 2,
		Output:     "out.xlsx",
	}

	md := tracker.GenerateMetadata("1.2.3", params)

	if _, err := uuid.Parse(md.ExportID); err != nil {
		t.Errorf("ExportID %q is not a UUID: %v", md.ExportID, err)
	}

	want := &ExportMetadata{
		ToolVersion: "1.2.3",
		ExportID:    md.ExportID,
		Parameters:  params,
		Results: ExportResults{
			IssueCount:    2,
			TotalMatched:  42,
			OldestCreated: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			NewestUpdated: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Duration:      "1.5s",
			APICallCount:  1,
			StartedAt:     start,
			CompletedAt:   start.Add(1500 * time.Millisecond),
		},
	}
	if diff := cmp.Diff(want, md); diff != "" {
		t.Errorf("GenerateMetadata() mismatch (-want +got):\n%s", diff)
	}

	if !md.Results.Truncated() {
		t.Error("Truncated() = false, want true")
	}
}

func TestTracker_UniqueExportIDs(t *testing.T) {
	a := New().GenerateMetadata("dev", ExportParams{})
	b := New().GenerateMetadata("dev", ExportParams{})
	if a.ExportID == b.ExportID {
		t.Errorf("export IDs collide: %s", a.ExportID)
	}
}

func TestTracker_TotalNeverBelowCount(t *testing.T) {
	tracker := New()
	tracker.SetTotalMatched(0)
	tracker.UpdateIssueStats(time.Now(), time.Now())

	md := tracker.GenerateMetadata("dev", ExportParams{})
	if md.Results.TotalMatched != 1 {
		t.Errorf("TotalMatched = %d, want 1", md.Results.TotalMatched)
	}
	if md.Results.Truncated() {
		t.Error("Truncated() = true, want false")
	}
}

func TestExportMetadata_Summary(t *testing.T) {
	tests := []struct {
		name    string
		results ExportResults
		want    string
	}{
		{
			name:    "single issue without dates",
			results: ExportResults{IssueCount: 1, TotalMatched: 1},
			want:    "1 issue exported",
		},
		{
			name: "complete result with dates",
			results: ExportResults{
				IssueCount:    3,
				TotalMatched:  3,
				OldestCreated: time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC),
				NewestUpdated: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
			},
			want: "3 issues exported, created from 2023-12-31, updated through 2024-02-01",
		},
		{
			name:    "truncated",
			results: ExportResults{IssueCount: 100, TotalMatched: 250},
			want:    "100 issues exported of 250 matching",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := &ExportMetadata{Results: tt.results}
			if got := md.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
			if strings.Contains(md.Summary(), "\n") {
				t.Error("Summary() spans multiple lines")
			}
		})
	}
}
