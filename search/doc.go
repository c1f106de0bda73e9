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


// Package search ranks files by semantic similarity to a query.
//
// The pipeline has two pure stages that can be tested on their own:
//   - Rank embeds the query and all candidate texts in one batch, normalizes
//     the vectors and scores each candidate by cosine similarity
//   - FilterAndCap applies the threshold, sorts by score (stable on ties)
//     and truncates to the result cap, reporting the counts needed for the
//     summary lines
//
// Searcher wires these stages to file enumeration and content excerpts and
// reports progress through SearchMonitor hooks.
package search
