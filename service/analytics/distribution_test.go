package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdash-service/service/models"
)

func TestDistributionBy_Salary(t *testing.T) {
	groups, err := DistributionBy(models.MockEmployees(), DimensionDepartment, FieldSalary)
	require.NoError(t, err)
	require.Len(t, groups, 4)

	it := groups[0]
	assert.Equal(t, "IT", it.Key)
	assert.Equal(t, 2, it.Count)
	assert.InDelta(t, 90000.0, it.Min, 1e-9)
	assert.InDelta(t, 91250.0, it.Q1, 1e-9)
	assert.InDelta(t, 92500.0, it.Median, 1e-9)
	assert.InDelta(t, 93750.0, it.Q3, 1e-9)
	assert.InDelta(t, 95000.0, it.Max, 1e-9)

	hr := groups[2]
	assert.Equal(t, "HR", hr.Key)
	assert.Equal(t, hr.Min, hr.Max)
	assert.Equal(t, hr.Median, hr.Mean)
}

func TestDistributionBy_NoData(t *testing.T) {
	_, err := DistributionBy(nil, DimensionDepartment, FieldSalary)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHistogram_Performance(t *testing.T) {
	bins, err := Histogram(models.NineBoxEmployees(), FieldPerformance, 8)
	require.NoError(t, err)
	require.Len(t, bins, 8)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 8, total)

	assert.InDelta(t, 3.0, bins[0].Lower, 1e-9)
	assert.InDelta(t, 9.0, bins[7].Upper, 1e-9)
	assert.Equal(t, 1, bins[0].Count) // 3
	assert.Equal(t, 0, bins[3].Count)
	assert.Equal(t, 2, bins[5].Count) // 7, 7
	assert.Equal(t, 1, bins[7].Count) // 9 落入最后一箱
}

func TestHistogram_SingleValue(t *testing.T) {
	records := []models.EmployeeRecord{{Name: "a", Potential: 5}, {Name: "b", Potential: 5}}
	bins, err := Histogram(records, FieldPotential, 8)
	require.NoError(t, err)
	require.Len(t, bins, 1)
	assert.Equal(t, 2, bins[0].Count)
}

func TestHistogram_Errors(t *testing.T) {
	_, err := Histogram(nil, FieldPotential, 8)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Histogram(models.NineBoxEmployees(), FieldPotential, 0)
	assert.Error(t, err)
}

func TestHistogram_SkipsNonFinite(t *testing.T) {
	records := []models.EmployeeRecord{
		{Name: "a", Performance: 2},
		{Name: "b", Performance: math.NaN()},
		{Name: "c", Performance: math.Inf(1)},
		{Name: "d", Performance: 6},
	}
	var bins []HistogramBin
	var err error
	require.NotPanics(t, func() { bins, err = Histogram(records, FieldPerformance, 4) })
	require.NoError(t, err)
	require.Len(t, bins, 4)
	assert.InDelta(t, 2.0, bins[0].Lower, 1e-9)
	assert.InDelta(t, 6.0, bins[3].Upper, 1e-9)
	assert.Equal(t, 1, bins[0].Count)
	assert.Equal(t, 1, bins[3].Count)

	_, err = Histogram([]models.EmployeeRecord{{Name: "x", Potential: math.NaN()}}, FieldPotential, 4)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestScatterPoints(t *testing.T) {
	points, err := ScatterPoints(models.MockEmployees(), FieldSalary, FieldEngagement, DimensionDepartment)
	require.NoError(t, err)
	require.Len(t, points, 7)
	assert.Equal(t, ScatterPoint{Name: "Alice Johnson", X: 90000, Y: 4.1, Group: "IT"}, points[0])

	points, err = ScatterPoints(models.NineBoxEmployees(), FieldPotential, FieldPerformance, "")
	require.NoError(t, err)
	assert.Equal(t, "", points[0].Group)

	_, err = ScatterPoints(models.MockEmployees(), FieldSalary, FieldEngagement, Dimension("team"))
	assert.ErrorIs(t, err, ErrUnknownDimension)
}
