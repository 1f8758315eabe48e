package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdash-service/service/models"
)

func TestComputeSummaryMetrics(t *testing.T) {
	metrics := ComputeSummaryMetrics(models.MockEmployees())

	assert.Equal(t, 6, metrics.Headcount)
	assert.Equal(t, 6, metrics.ActiveCount)
	assert.Equal(t, 7, metrics.Total)
	require.True(t, metrics.AvgSalary.Valid)
	assert.InDelta(t, 85000.0, metrics.AvgSalary.Value, 1e-9)
}

func TestComputeSummaryMetrics_IndependentFlags(t *testing.T) {
	// 离职标记和在职状态不一致时各自计数
	records := []models.EmployeeRecord{
		{Name: "a", Terminated: true, EmploymentStatus: "Active", Salary: 10},
		{Name: "b", Terminated: false, EmploymentStatus: "Voluntarily Terminated", Salary: 20},
	}
	metrics := ComputeSummaryMetrics(records)
	assert.Equal(t, 1, metrics.Headcount)
	assert.Equal(t, 1, metrics.ActiveCount)
	assert.InDelta(t, 15.0, metrics.AvgSalary.Value, 1e-9)
}

func TestComputeSummaryMetrics_Empty(t *testing.T) {
	metrics := ComputeSummaryMetrics(nil)

	assert.Equal(t, 0, metrics.Headcount)
	assert.Equal(t, 0, metrics.ActiveCount)
	assert.False(t, metrics.AvgSalary.Valid)

	data, err := json.Marshal(metrics)
	require.NoError(t, err)
	assert.JSONEq(t, `{"headcount":0,"active_count":0,"total":0,"avg_salary":{"value":null,"no_data":true}}`, string(data))
}

func TestAverage_JSONRoundTrip(t *testing.T) {
	var avg Average
	require.NoError(t, json.Unmarshal([]byte(`{"value":12.5,"no_data":false}`), &avg))
	assert.Equal(t, Average{Value: 12.5, Valid: true}, avg)

	require.NoError(t, json.Unmarshal([]byte(`{"value":null,"no_data":true}`), &avg))
	assert.Equal(t, NoData(), avg)
}

func TestAggregateByDepartment_Salary(t *testing.T) {
	groups, err := AggregateByDepartment(models.MockEmployees(), FieldSalary)
	require.NoError(t, err)

	require.Len(t, groups, 4)
	expected := []struct {
		key   string
		value float64
	}{{"IT", 92500}, {"Sales", 77500}, {"HR", 65000}, {"Finance", 95000}}
	for i, e := range expected {
		assert.Equal(t, e.key, groups[i].Key)
		assert.InDelta(t, e.value, groups[i].Value, 1e-9)
	}
}

func TestAggregateByDepartment_Engagement(t *testing.T) {
	groups, err := AggregateByDepartment(models.MockEmployees(), FieldEngagement)
	require.NoError(t, err)
	require.Len(t, groups, 4)
	assert.InDelta(t, 4.3, groups[0].Value, 1e-9)
	assert.InDelta(t, 4.0, groups[1].Value, 1e-9)
	assert.Equal(t, 2, groups[1].Count)
}

func TestAggregateByDepartment_OmitsEmptyGroups(t *testing.T) {
	filtered, err := ApplyFilters(models.MockEmployees(), FilterSelection{DimensionDepartment: {"Finance", "HR"}})
	require.NoError(t, err)

	groups, err := AggregateByDepartment(filtered, FieldSalary)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "HR", groups[0].Key)
	assert.Equal(t, "Finance", groups[1].Key)
}

func TestAggregateByDepartment_NoData(t *testing.T) {
	_, err := AggregateByDepartment(nil, FieldSalary)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = AggregateByDepartment(models.MockEmployees(), Field("bonus"))
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestMean(t *testing.T) {
	avg, err := Mean(models.NineBoxEmployees(), FieldPerformance)
	require.NoError(t, err)
	assert.InDelta(t, 49.0/8.0, avg.Value, 1e-9)

	avg, err = Mean(nil, FieldPerformance)
	require.NoError(t, err)
	assert.False(t, avg.Valid)
}

func TestCountTerminationsByDepartment(t *testing.T) {
	breakdown := CountTerminationsByDepartment(models.MockEmployees())

	assert.False(t, breakdown.NoTerminations)
	assert.Equal(t, []GroupCount{{Key: "Sales", Count: 1}}, breakdown.Counts)
}

func TestCountTerminationsByDepartment_None(t *testing.T) {
	filtered, err := ApplyFilters(models.MockEmployees(), FilterSelection{DimensionDepartment: {"IT"}})
	require.NoError(t, err)

	breakdown := CountTerminationsByDepartment(filtered)
	assert.True(t, breakdown.NoTerminations)
	assert.Empty(t, breakdown.Counts)
}

func TestComputeDiversityBreakdown(t *testing.T) {
	records := models.MockEmployees()
	counts, err := ComputeDiversityBreakdown(records, DimensionRace)
	require.NoError(t, err)

	assert.Equal(t, []GroupCount{
		{Key: "White", Count: 3},
		{Key: "Black", Count: 2},
		{Key: "Asian", Count: 1},
		{Key: "Hispanic", Count: 1},
	}, counts)

	sum := 0
	for _, c := range counts {
		sum += c.Count
	}
	assert.Equal(t, len(records), sum)
}

func TestComputeDiversityBreakdown_Empty(t *testing.T) {
	counts, err := ComputeDiversityBreakdown(nil, DimensionRace)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
