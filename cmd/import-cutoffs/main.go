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
	"github.com/collegeconnect/suggester-backend/internal/repository"
	"github.com/collegeconnect/suggester-backend/internal/service"
)

// Columns expected in the CSV feed, in order:
// college_code,course_code,category,round,closing_rank,closing_percentile,seats_total,year
// closing_rank and closing_percentile are mutually exclusive; leave the
// unused one empty.

func main() {
	var csvPath string
	flag.StringVar(&csvPath, "file", "", "Path to the cutoff CSV file")
	flag.Parse()

	if csvPath == "" {
		fmt.Println("Usage: import-cutoffs -file <cutoffs.csv>")
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

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	regionRepo := repository.NewRegionRepository(pool)
	collegeRepo := repository.NewCollegeRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	cutoffRepo := repository.NewCutoffRepository(pool)
	ruleRepo := repository.NewCategoryRuleRepository(pool)

	suggestionService := service.NewSuggestionService(cutoffRepo, collegeRepo, courseRepo, regionRepo, ruleRepo, rdb, cfg, log)
	importService := service.NewImportService(cutoffRepo, collegeRepo, courseRepo, suggestionService, rdb, log)

	rows, err := readRows(csvPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read CSV")
	}
	fmt.Printf("=== Importing %d cutoff rows ===\n", len(rows))

	report, err := importService.ImportBatch(ctx, rows)
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	fmt.Printf("\nImport completed: %d/%d rows accepted.\n", report.Accepted, report.Total)
	for _, rej := range report.Rejected {
		fmt.Printf("  row %d rejected: %s\n", rej.Row, rej.Reason)
	}
}

func readRows(path string) ([]model.CutoffImportRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 8

	// Skip the header row.
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []model.CutoffImportRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(record []string) (model.CutoffImportRow, error) {
	var row model.CutoffImportRow
	var err error

	if row.CollegeCode, err = strconv.Atoi(record[0]); err != nil {
		return row, fmt.Errorf("college_code: %w", err)
	}
	if row.CourseCode, err = strconv.Atoi(record[1]); err != nil {
		return row, fmt.Errorf("course_code: %w", err)
	}
	row.Category = model.Category(record[2])
	if row.Round, err = strconv.Atoi(record[3]); err != nil {
		return row, fmt.Errorf("round: %w", err)
	}
	if record[4] != "" {
		rank, err := strconv.Atoi(record[4])
		if err != nil {
			return row, fmt.Errorf("closing_rank: %w", err)
		}
		row.ClosingRank = &rank
	}
	if record[5] != "" {
		pct, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			return row, fmt.Errorf("closing_percentile: %w", err)
		}
		row.ClosingPercentile = &pct
	}
	if record[6] != "" {
		if row.SeatsTotal, err = strconv.Atoi(record[6]); err != nil {
			return row, fmt.Errorf("seats_total: %w", err)
		}
	}
	if record[7] != "" {
		if row.Year, err = strconv.Atoi(record[7]); err != nil {
			return row, fmt.Errorf("year: %w", err)
		}
	}
	return row, nil
}
