// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/poiesic/ssearch/core"
)

// CapMessage describes a result list truncated to maxResults out of matched.
func CapMessage(maxResults, matched int) string {
	return fmt.Sprintf("Showing only the top %d results (out of %d). "+
		"You can increase the number of results using the --max-results option", maxResults, matched)
}

// FilteredMessage describes files dropped by the similarity threshold.
func FilteredMessage(filtered int, threshold float64) string {
	return fmt.Sprintf("%d files were filtered out because they did not meet the similarity threshold of %s",
		filtered, strconv.FormatFloat(threshold, 'g', -1, 64))
}

// Summary returns the summary lines for result, in output order.
func Summary(result *core.FilterResult, threshold float64, maxResults int) []string {
	var lines []string
	if result.Capped(maxResults) {
		lines = append(lines, CapMessage(max(maxResults, 0), result.Matched))
	}
	if n := result.FilteredOut(); n > 0 {
		lines = append(lines, FilteredMessage(n, threshold))
	}
	return lines
}

// Write prints the kept paths followed by a blank line and the summary.
func Write(w io.Writer, result *core.FilterResult, threshold float64, maxResults int) error {
	bw := bufio.NewWriter(w)

	for _, r := range result.Kept {
		if _, err := fmt.Fprintln(bw, r.Candidate.Path); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw); err != nil {
		return err
	}
	for _, line := range Summary(result, threshold, maxResults) {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}

	return bw.Flush()
}
