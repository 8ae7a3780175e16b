// Copyright 2026 Quaesit Systems
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

package retrieve

import (
	"sort"

	"github.com/quaesit/quaesit/core"
)

// TopK scores every universe entry against the query vector by cosine
// similarity and returns the k best candidates, ordered by descending score
// with ties broken by ascending profile ID for determinism.
//
// The result is never longer than k; it is shorter only when the universe
// is. A non-positive k yields nil.
//
// This is the brute-force baseline: a linear scan over the universe. An
// index-backed implementation must preserve exactly this ordering contract.
func TopK(queryVector []float32, universe []core.VectorEntry, k int) []core.CandidateRecord {
	if k <= 0 || len(universe) == 0 {
		return nil
	}

	scored := make([]core.CandidateRecord, 0, len(universe))
	for _, entry := range universe {
		scored = append(scored, core.CandidateRecord{
			ProfileId: entry.ProfileId,
			Score:     CosineSimilarity(queryVector, entry.Vector),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ProfileId < scored[j].ProfileId
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
