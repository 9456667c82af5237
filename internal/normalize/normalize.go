// Package normalize canonicalizes the messy names that appear on official
// cutoff reports: course names collapse to standard short codes (CSE, IT,
// ME, ...) and region names lose their Dist-/Tal- style prefixes.
package normalize

import "strings"

// courseVariants maps a canonical short code to the report spellings that
// collapse into it. Matching is case-insensitive and punctuation-blind.
var courseVariants = map[string][]string{
	"CSE": {
		"Computer Science and Engineering",
		"Computer Science & Engineering",
		"Computer Engineering",
		"Computer Science",
		"Computer Science and Engineering (Artificial Intelligence)",
		"Computer Science and Engineering (Cyber Security)",
		"Computer Science and Engineering (Data Science)",
		"Computer Engineering (Software Engineering)",
		"Computer Science and Business Systems",
		"Computer Science and Design",
	},
	"IT": {
		"Information Technology",
		"Information Technology Engineering",
	},
	"ECE": {
		"Electronics and Communication Engineering",
		"Electronics & Communication Engineering",
		"Electronics and Telecommunication Engineering",
		"Electronics & Telecommunication Engineering",
		"Electronics Engineering",
	},
	"EEE": {
		"Electrical and Electronics Engineering",
		"Electrical & Electronics Engineering",
		"Electrical Engineering",
	},
	"ME": {
		"Mechanical Engineering",
		"Mechanical and Automation Engineering",
	},
	"CE": {
		"Civil Engineering",
		"Civil and Environmental Engineering",
		"Civil Engineering and Planning",
	},
	"CHE": {
		"Chemical Engineering",
		"Chemical Technology",
	},
	"BT": {
		"Bio Technology",
		"Biotechnology",
		"Bio-Technology",
	},
	"BME": {
		"Biomedical Engineering",
		"Bio Medical Engineering",
	},
	"AE": {
		"Automobile Engineering",
		"Automotive Engineering",
	},
	"AERO": {
		"Aeronautical Engineering",
		"Aerospace Engineering",
	},
	"AIDS": {
		"Artificial Intelligence and Data Science",
		"Artificial Intelligence & Data Science",
	},
	"AIML": {
		"Artificial Intelligence and Machine Learning",
		"Artificial Intelligence & Machine Learning",
	},
	"DS": {
		"Data Science",
		"Data Science and Engineering",
	},
	"AI": {
		"Artificial Intelligence",
	},
	"AR": {
		"Automation and Robotics",
		"Robotics and Automation",
	},
	"ARCH": {
		"Architecture",
		"Architectural Assistantship",
	},
}

var courseLookup = buildCourseLookup()

func buildCourseLookup() map[string]string {
	lookup := make(map[string]string)
	for code, variants := range courseVariants {
		for _, v := range variants {
			lookup[foldName(v)] = code
		}
	}
	return lookup
}

// foldName lowercases a name and strips punctuation so spelling variants
// of the same branch compare equal.
func foldName(name string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case '&', '(', ')', ',', '.', '-':
			r = ' '
		}
		if r == ' ' {
			if lastSpace {
				continue
			}
			lastSpace = true
		} else {
			lastSpace = false
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// CourseCode returns the canonical short code for a course name, or the
// trimmed original when no mapping is known.
func CourseCode(name string) string {
	if name == "" {
		return name
	}
	if code, ok := courseLookup[foldName(name)]; ok {
		return code
	}
	return strings.TrimSpace(name)
}

// regionPrefixes are administrative markers the reports prepend to
// district and taluka names.
var regionPrefixes = []string{"dist-", "dist ", "dist.", "tal-", "tal ", "tal.", "district "}

// RegionName strips the report's administrative prefixes from a region
// name and trims surrounding whitespace.
func RegionName(name string) string {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	for _, p := range regionPrefixes {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(trimmed[len(p):])
		}
	}
	return trimmed
}
