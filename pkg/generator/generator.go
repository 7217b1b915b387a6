// pkg/generator/generator.go

// Package generator produces sample customer datasets seeded with the
// quality issues the cleaning engine is built to fix. Useful for demos
// and end-to-end tests.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dataqual/dataqual/pkg/export"
	"github.com/dataqual/dataqual/pkg/table"
)

var (
	firstNames = []string{
		"John", "Jane", "Bob", "Alice", "Charlie", "Diana",
		"Edward", "Fiona", "George", "Hannah", "Ian", "Julia",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones",
		"Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	}
	cities = []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
		"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
	}
	statuses = []string{"active", "inactive", "pending", "suspended"}
	domains  = []string{"gmail.com", "yahoo.com", "hotmail.com", "company.com"}

	ageOutliers    = []float64{5, 150, -10, 200}
	amountOutliers = []float64{0.01, 50000, -100}
)

// Options controls dataset generation
type Options struct {
	NumRows int
	// Seed makes the output reproducible; zero means 42
	Seed int64
	// Messy injects duplicates, missing cells, whitespace and case
	// noise, mixed date formats, outliers, and inconsistent column
	// names
	Messy bool
}

// GenerateSampleData builds a customer dataset. With Messy set, the
// result carries roughly 5% duplicate rows, 10% missing cells spread
// over four columns, padded and upper-cased text, three date formats,
// a handful of extreme ages and purchase amounts, and column names
// that mix spacing, underscores, hyphens, and case.
func GenerateSampleData(opts Options, logger *zap.Logger) (table.Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.NumRows <= 0 {
		return table.Table{}, fmt.Errorf("num rows must be positive, got %d", opts.NumRows)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = 42
	}
	rng := rand.New(rand.NewSource(seed))

	logger.Info("Generating sample data",
		zap.Int("rows", opts.NumRows),
		zap.Bool("messy", opts.Messy))

	n := opts.NumRows
	ids := make([]interface{}, n)
	firsts := make([]interface{}, n)
	lasts := make([]interface{}, n)
	emails := make([]interface{}, n)
	ages := make([]interface{}, n)
	dates := make([]interface{}, n)
	amounts := make([]interface{}, n)
	cityCol := make([]interface{}, n)
	statusCol := make([]interface{}, n)

	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		ids[i] = float64(i + 1)
		firsts[i] = first
		lasts[i] = last
		emails[i] = fmt.Sprintf("%s.%s%d@%s",
			strings.ToLower(first), strings.ToLower(last), i, domains[rng.Intn(len(domains))])
		ages[i] = float64(18 + rng.Intn(62))
		amounts[i] = math.Round((10+rng.Float64()*990)*100) / 100
		cityCol[i] = cities[rng.Intn(len(cities))]
		statusCol[i] = statuses[rng.Intn(len(statuses))]

		date := start.AddDate(0, 0, rng.Intn(1461))
		switch {
		case opts.Messy && rng.Float64() < 0.3:
			dates[i] = date.Format("02/01/2006")
		case opts.Messy && rng.Float64() < 0.3:
			dates[i] = date.Format("01-02-2006")
		default:
			dates[i] = date.Format("2006-01-02")
		}
	}

	if opts.Messy {
		// Duplicate 5% of the rows by appending copies
		numDup := n * 5 / 100
		for d := 0; d < numDup; d++ {
			src := rng.Intn(n)
			ids = append(ids, ids[src])
			firsts = append(firsts, firsts[src])
			lasts = append(lasts, lasts[src])
			emails = append(emails, emails[src])
			ages = append(ages, ages[src])
			dates = append(dates, dates[src])
			amounts = append(amounts, amounts[src])
			cityCol = append(cityCol, cityCol[src])
			statusCol = append(statusCol, statusCol[src])
		}
		total := len(ids)

		// Blank 10% of cells across four columns
		for _, idx := range sampleIndices(rng, total, total/10) {
			switch rng.Intn(4) {
			case 0:
				emails[idx] = nil
			case 1:
				ages[idx] = nil
			case 2:
				cityCol[idx] = nil
			case 3:
				amounts[idx] = nil
			}
		}

		// Pad 15% of each text column with whitespace
		for _, col := range [][]interface{}{firsts, lasts, emails, cityCol, statusCol} {
			for _, idx := range sampleIndices(rng, total, total*15/100) {
				if s, ok := col[idx].(string); ok {
					col[idx] = "  " + s + "  "
				}
			}
		}

		// Upper-case 10% of statuses
		for _, idx := range sampleIndices(rng, total, total/10) {
			if s, ok := statusCol[idx].(string); ok {
				statusCol[idx] = strings.ToUpper(s)
			}
		}

		// Plant extreme ages and amounts in 10 rows
		numOut := 10
		if numOut > total {
			numOut = total
		}
		for _, idx := range sampleIndices(rng, total, numOut) {
			ages[idx] = ageOutliers[rng.Intn(len(ageOutliers))]
			amounts[idx] = amountOutliers[rng.Intn(len(amountOutliers))]
		}
	}

	names := columnNames(opts.Messy)
	cols := make([]table.Column, 0, 9)
	for i, spec := range []struct {
		dtype table.DType
		cells []interface{}
	}{
		{table.Numeric, ids},
		{table.Text, firsts},
		{table.Text, lasts},
		{table.Text, emails},
		{table.Numeric, ages},
		{table.Text, dates},
		{table.Numeric, amounts},
		{table.Text, cityCol},
		{table.Text, statusCol},
	} {
		col, err := table.NewColumn(names[i], spec.dtype, spec.cells)
		if err != nil {
			return table.Table{}, fmt.Errorf("failed to build column %s: %w", names[i], err)
		}
		cols = append(cols, col)
	}

	t, err := table.New(cols...)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to build sample table: %w", err)
	}

	logger.Info("Generated sample data",
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumColumns()))
	return t, nil
}

// GenerateSampleCSV generates a dataset and writes it to path
func GenerateSampleCSV(path string, opts Options, logger *zap.Logger) (table.Table, error) {
	t, err := GenerateSampleData(opts, logger)
	if err != nil {
		return table.Table{}, err
	}
	if err := export.ExportTable(path, t, export.FormatCSV); err != nil {
		return table.Table{}, err
	}
	return t, nil
}

func columnNames(messy bool) []string {
	if messy {
		return []string{
			"Customer ID", " First Name ", "Last_Name", "Email Address",
			"AGE", "Signup Date", "Purchase-Amount", "City", "Status",
		}
	}
	return []string{
		"customer_id", "first_name", "last_name", "email",
		"age", "signup_date", "purchase_amount", "city", "status",
	}
}

// sampleIndices returns k distinct indices in [0, n)
func sampleIndices(rng *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	perm := rng.Perm(n)
	return perm[:k]
}
