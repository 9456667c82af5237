package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/collegeconnect/suggester-backend/internal/config"
	"github.com/collegeconnect/suggester-backend/internal/database"
	"github.com/collegeconnect/suggester-backend/internal/logger"
	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/collegeconnect/suggester-backend/internal/normalize"
	"github.com/collegeconnect/suggester-backend/internal/repository"
)

// seed-catalog loads the reference data the suggestion engine consults:
// regions, colleges and courses from a catalog CSV, and optionally the
// category inclusion rules from a rules CSV.
//
// Catalog columns:
//
//	region,college_code,college_name,college_type,fee_band,course_code,course_name,course_field
//
// Rules columns:
//
//	category,qualifies_for

func main() {
	var catalogPath, rulesPath string
	flag.StringVar(&catalogPath, "catalog", "", "Path to the catalog CSV file")
	flag.StringVar(&rulesPath, "rules", "", "Path to the category rules CSV file (optional)")
	flag.Parse()

	if catalogPath == "" && rulesPath == "" {
		fmt.Println("Usage: seed-catalog -catalog <catalog.csv> [-rules <rules.csv>]")
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	regionRepo := repository.NewRegionRepository(pool)
	collegeRepo := repository.NewCollegeRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	ruleRepo := repository.NewCategoryRuleRepository(pool)

	if catalogPath != "" {
		if err := seedCatalog(ctx, catalogPath, regionRepo, collegeRepo, courseRepo); err != nil {
			log.Fatal().Err(err).Msg("Catalog seed failed")
		}
	}
	if rulesPath != "" {
		if err := seedRules(ctx, rulesPath, ruleRepo); err != nil {
			log.Fatal().Err(err).Msg("Category rules seed failed")
		}
	}
}

func seedCatalog(
	ctx context.Context,
	path string,
	regionRepo repository.RegionRepository,
	collegeRepo repository.CollegeRepository,
	courseRepo repository.CourseRepository,
) error {
	records, err := readCSV(path, 8)
	if err != nil {
		return err
	}

	// Regions already in the database are matched by cleaned name.
	regionIDs := map[string]int{}
	existing, err := regionRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, r := range existing {
		regionIDs[normalize.RegionName(r.Name)] = r.ID
	}

	colleges, courses := 0, 0
	for i, rec := range records {
		regionName := normalize.RegionName(rec[0])
		regionID, ok := regionIDs[regionName]
		if !ok {
			region := &model.Region{Name: regionName}
			if err := regionRepo.Create(ctx, region); err != nil {
				return fmt.Errorf("line %d: create region %q: %w", i+2, regionName, err)
			}
			regionID = region.ID
			regionIDs[regionName] = regionID
		}

		collegeCode, err := strconv.Atoi(rec[1])
		if err != nil {
			return fmt.Errorf("line %d: college_code: %w", i+2, err)
		}
		feeBand, err := strconv.Atoi(rec[4])
		if err != nil {
			return fmt.Errorf("line %d: fee_band: %w", i+2, err)
		}
		college := &model.College{
			Code:     collegeCode,
			Name:     rec[2],
			Type:     model.CollegeType(rec[3]),
			RegionID: regionID,
			FeeBand:  feeBand,
		}
		if err := collegeRepo.Upsert(ctx, college); err != nil {
			return fmt.Errorf("line %d: upsert college %d: %w", i+2, collegeCode, err)
		}
		colleges++

		courseCode, err := strconv.Atoi(rec[5])
		if err != nil {
			return fmt.Errorf("line %d: course_code: %w", i+2, err)
		}
		field := rec[7]
		if field == "" {
			field = normalize.CourseCode(rec[6])
		}
		course := &model.Course{Code: courseCode, Name: rec[6], Field: field}
		if err := courseRepo.Upsert(ctx, course); err != nil {
			return fmt.Errorf("line %d: upsert course %d: %w", i+2, courseCode, err)
		}
		courses++
	}

	fmt.Printf("Catalog seeded: %d regions, %d college rows, %d course rows.\n", len(regionIDs), colleges, courses)
	return nil
}

func seedRules(ctx context.Context, path string, ruleRepo repository.CategoryRuleRepository) error {
	records, err := readCSV(path, 2)
	if err != nil {
		return err
	}

	rules := make([]model.CategoryRule, 0, len(records))
	for i, rec := range records {
		category := model.Category(rec[0])
		qualifiesFor := model.Category(rec[1])
		if !model.IsKnownCategory(category) || !model.IsKnownCategory(qualifiesFor) {
			return fmt.Errorf("line %d: unknown category in rule %s -> %s", i+2, rec[0], rec[1])
		}
		rules = append(rules, model.CategoryRule{Category: category, QualifiesFor: qualifiesFor})
	}

	if err := ruleRepo.Replace(ctx, rules); err != nil {
		return err
	}
	fmt.Printf("Category rules replaced: %d rows.\n", len(rules))
	return nil
}

func readCSV(path string, fields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = fields

	// Skip the header row.
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var out [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
