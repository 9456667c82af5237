package engine

import "github.com/collegeconnect/suggester-backend/internal/model"

// Reference carries the read-only dictionaries the engine consults for
// region filtering, type/fee scoring and presentation enrichment. Built
// once per snapshot from the reference store; never mutated afterwards.
type Reference struct {
	Colleges map[int]model.College
	Courses  map[int]model.Course
	Regions  map[int]model.Region
}

// inRegion reports whether regionID equals wantID or has it as an
// ancestor (city under district under state). The depth guard breaks
// accidental cycles in misconfigured reference data.
func (ref *Reference) inRegion(regionID, wantID int) bool {
	for depth := 0; depth < 8; depth++ {
		if regionID == wantID {
			return true
		}
		region, ok := ref.Regions[regionID]
		if !ok || region.ParentID == nil {
			return false
		}
		regionID = *region.ParentID
	}
	return false
}

// regionMatch reports whether the college's region matches any preferred
// region, directly or through the hierarchy.
func (ref *Reference) regionMatch(collegeID int, preferred []int) bool {
	college, ok := ref.Colleges[collegeID]
	if !ok {
		return false
	}
	for _, want := range preferred {
		if ref.inRegion(college.RegionID, want) {
			return true
		}
	}
	return false
}
