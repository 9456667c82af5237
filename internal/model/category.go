package model

// Category is a reservation/eligibility classification as printed in the
// official CAP cutoff lists (e.g. OPEN, OBC, SC, ST, EWS).
type Category string

const (
	CategoryOpen Category = "OPEN"
	CategoryOBC  Category = "OBC"
	CategorySC   Category = "SC"
	CategoryST   Category = "ST"
	CategoryEWS  Category = "EWS"
	CategoryNT1  Category = "NT1"
	CategoryNT2  Category = "NT2"
	CategoryNT3  Category = "NT3"
	CategorySBC  Category = "SBC"
	CategorySEBC Category = "SEBC"
	CategoryVJ   Category = "VJ"
)

// KnownCategories lists every category the engine accepts in queries and
// import rows. Exam authorities redefine these periodically; rows for a
// category outside this set are rejected at import.
var KnownCategories = []Category{
	CategoryOpen, CategoryOBC, CategorySC, CategoryST, CategoryEWS,
	CategoryNT1, CategoryNT2, CategoryNT3, CategorySBC, CategorySEBC, CategoryVJ,
}

// IsKnownCategory reports whether c is in the known category set.
func IsKnownCategory(c Category) bool {
	for _, k := range KnownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// CategoryRule is one directed relation row: a student of Category also
// qualifies under cutoff rows published for QualifiesFor.
type CategoryRule struct {
	ID           int      `json:"id"`
	Category     Category `json:"category"`
	QualifiesFor Category `json:"qualifies_for"`
}
