package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Computer Science and Engineering", "CSE"},
		{"Computer Science & Engineering", "CSE"},
		{"computer engineering", "CSE"},
		{"COMPUTER SCIENCE AND ENGINEERING (DATA SCIENCE)", "CSE"},
		{"Information Technology", "IT"},
		{"Electronics and Telecommunication Engineering", "ECE"},
		{"Electronics & Communication Engineering", "ECE"},
		{"Electrical Engineering", "EEE"},
		{"Mechanical Engineering", "ME"},
		{"Civil Engineering", "CE"},
		{"Bio-Technology", "BT"},
		{"Artificial Intelligence and Data Science", "AIDS"},
		{"Artificial Intelligence & Machine Learning", "AIML"},
		{"  Mechanical   Engineering  ", "ME"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CourseCode(tt.in), "CourseCode(%q)", tt.in)
	}
}

func TestCourseCodeUnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "Marine Engineering", CourseCode("  Marine Engineering "))
	assert.Equal(t, "", CourseCode(""))
}

func TestRegionName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dist-Pune", "Pune"},
		{"dist. Nagpur", "Nagpur"},
		{"DIST Raigad", "Raigad"},
		{"Tal-Haveli", "Haveli"},
		{"District Satara", "Satara"},
		{"  Mumbai  ", "Mumbai"},
		{"Sangli", "Sangli"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RegionName(tt.in), "RegionName(%q)", tt.in)
	}
}
