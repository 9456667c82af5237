package engine

import (
	"fmt"
	"sort"

	"github.com/collegeconnect/suggester-backend/internal/model"
)

// Weights tune the composite score. MarginCap bounds the normalized
// margin's contribution so an extremely safe, low-desirability college
// cannot dominate a marginally safer but well-matched one.
type Weights struct {
	Preference float64
	Margin     float64
	Alignment  float64
	MarginCap  float64
}

// DefaultWeights favors stated preferences over raw safety.
func DefaultWeights() Weights {
	return Weights{
		Preference: 0.45,
		Margin:     0.35,
		Alignment:  0.20,
		MarginCap:  0.25,
	}
}

// normalizedMargin maps a candidate's margin into [0,1) space: rank
// margins relative to the closing rank, percentile margins relative to
// the 100-point scale.
func normalizedMargin(c *model.CandidateEntry) float64 {
	if c.ClosingRank != nil {
		if *c.ClosingRank == 0 {
			return 0
		}
		return c.Margin / float64(*c.ClosingRank)
	}
	return c.Margin / 100.0
}

// preferenceRank returns the 0-based position of the first matching
// preference, or -1 when the list is empty (no preference stated).
func courseRank(c *model.CandidateEntry, q *model.StudentQuery) int {
	for i, id := range q.PreferredCourseIDs {
		if id == c.CourseID {
			return i
		}
	}
	return -1
}

func regionRank(c *model.CandidateEntry, q *model.StudentQuery, ref *Reference) int {
	for i, id := range q.PreferredRegionIDs {
		college, ok := ref.Colleges[c.CollegeID]
		if ok && ref.inRegion(college.RegionID, id) {
			return i
		}
	}
	return -1
}

// Rank orders candidates by composite score and truncates to
// q.MaxResults. The order is a strict total order: equal inputs always
// produce byte-identical output. No randomness, no map iteration.
func Rank(candidates []model.CandidateEntry, q *model.StudentQuery, ref *Reference, w Weights) []model.Suggestion {
	out := make([]model.Suggestion, 0, len(candidates))

	for i := range candidates {
		c := candidates[i]
		college := ref.Colleges[c.CollegeID]
		course := ref.Courses[c.CourseID]

		var rationale []string

		// (a) preference rank: earlier positions in the ordered lists
		// score higher; an empty list contributes nothing either way.
		prefScore := 0.0
		prefParts := 0
		if n := len(q.PreferredCourseIDs); n > 0 {
			pos := courseRank(&c, q)
			prefScore += float64(n-pos) / float64(n)
			prefParts++
			rationale = append(rationale, fmt.Sprintf("course preference #%d", pos+1))
		}
		if n := len(q.PreferredRegionIDs); n > 0 {
			pos := regionRank(&c, q, ref)
			if pos >= 0 {
				prefScore += float64(n-pos) / float64(n)
				rationale = append(rationale, fmt.Sprintf("region preference #%d", pos+1))
			}
			prefParts++
		}
		if prefParts > 0 {
			prefScore /= float64(prefParts)
		} else {
			prefScore = 0.5 // no stated preference, neutral
		}

		// (b) capped safety margin.
		nm := normalizedMargin(&c)
		capped := nm
		if capped > w.MarginCap {
			capped = w.MarginCap
		}
		marginScore := 0.0
		if w.MarginCap > 0 {
			marginScore = capped / w.MarginCap
		}
		rationale = append(rationale, fmt.Sprintf("safety margin %.1f%%", nm*100))

		// (c) type and fee-band alignment with stated filters.
		alignScore := 0.0
		if q.CollegeType == nil || college.Type == *q.CollegeType {
			alignScore += 0.5
			if q.CollegeType != nil {
				rationale = append(rationale, "college type match")
			}
		}
		if q.MaxFeeBand == nil || college.FeeBand <= *q.MaxFeeBand {
			alignScore += 0.5
			if q.MaxFeeBand != nil {
				rationale = append(rationale, "within fee band")
			}
		}

		score := w.Preference*prefScore + w.Margin*marginScore + w.Alignment*alignScore

		region := ref.Regions[college.RegionID]
		out = append(out, model.Suggestion{
			CandidateEntry: c,
			Score:          score,
			Rationale:      rationale,
			CollegeName:    college.Name,
			CollegeType:    college.Type,
			CourseName:     course.Name,
			RegionName:     region.Name,
			FeeBand:        college.FeeBand,
		})
	}

	// Strict tie-break chain: higher score, then the tighter (more
	// realistic) margin, then names, then ids for injectivity.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Margin != out[j].Margin {
			return out[i].Margin < out[j].Margin
		}
		if out[i].CollegeName != out[j].CollegeName {
			return out[i].CollegeName < out[j].CollegeName
		}
		if out[i].CourseName != out[j].CourseName {
			return out[i].CourseName < out[j].CourseName
		}
		if out[i].CollegeID != out[j].CollegeID {
			return out[i].CollegeID < out[j].CollegeID
		}
		return out[i].CourseID < out[j].CourseID
	})

	if q.MaxResults > 0 && len(out) > q.MaxResults {
		out = out[:q.MaxResults]
	}
	return out
}
