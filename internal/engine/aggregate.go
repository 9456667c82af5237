package engine

import (
	"sort"

	"github.com/collegeconnect/suggester-backend/internal/model"
)

type pairKey struct {
	CollegeID int
	CourseID  int
}

// margin computes how much better the student's score is than the
// record's closing score, in the query's own score space. All records
// passed in are already eligible, so the result is never negative.
func margin(q *model.StudentQuery, r *model.AdmissionRecord) float64 {
	if q.Metric == model.MetricRank {
		return float64(*r.ClosingRank - *q.Rank)
	}
	return *q.Percentile - *r.ClosingPercentile
}

// Aggregate collapses eligible round-rows into one CandidateEntry per
// (college, course) pair. Among eligible rounds it keeps the round whose
// closing score sits closest to the student's score, the most realistic
// threshold rather than the most generous one. Non-empty course/region
// preference lists act as hard filters here.
func Aggregate(eligible []model.AdmissionRecord, q *model.StudentQuery, ref *Reference) []model.CandidateEntry {
	best := make(map[pairKey]model.AdmissionRecord)
	order := make([]pairKey, 0, len(eligible))

	for i := range eligible {
		r := eligible[i]
		k := pairKey{r.CollegeID, r.CourseID}
		cur, seen := best[k]
		if !seen {
			best[k] = r
			order = append(order, k)
			continue
		}
		m, curM := margin(q, &r), margin(q, &cur)
		// Tighter margin wins; on equal margin prefer the later round.
		if m < curM || (m == curM && r.Round > cur.Round) {
			best[k] = r
		}
	}

	out := make([]model.CandidateEntry, 0, len(order))
	for _, k := range order {
		if len(q.PreferredCourseIDs) > 0 && !containsInt(q.PreferredCourseIDs, k.CourseID) {
			continue
		}
		if len(q.PreferredRegionIDs) > 0 && !ref.regionMatch(k.CollegeID, q.PreferredRegionIDs) {
			continue
		}
		r := best[k]
		out = append(out, model.CandidateEntry{
			CollegeID:         r.CollegeID,
			CourseID:          r.CourseID,
			ClosingRank:       r.ClosingRank,
			ClosingPercentile: r.ClosingPercentile,
			RoundUsed:         r.Round,
			Margin:            margin(q, &r),
			SeatsTotal:        r.SeatsTotal,
		})
	}

	// Stable base order before ranking, independent of map iteration.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CollegeID != out[j].CollegeID {
			return out[i].CollegeID < out[j].CollegeID
		}
		return out[i].CourseID < out[j].CourseID
	})
	return out
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
