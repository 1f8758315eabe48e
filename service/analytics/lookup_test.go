package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdash-service/service/models"
)

func TestSelectOffenders_Performance(t *testing.T) {
	offenders, err := SelectOffenders(models.NineBoxEmployees(), FieldPerformance, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"Carla", "Gustavo"}, names(offenders))
	assert.Equal(t, 4.0, offenders[0].Performance)
	assert.Equal(t, 3.0, offenders[1].Performance)
}

func TestSelectOffenders_StrictThreshold(t *testing.T) {
	// Fernanda 绩效正好为5，不在名单中；潜力为3，在名单中
	offenders, err := SelectOffenders(models.NineBoxEmployees(), FieldPotential, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Daniel", "Fernanda"}, names(offenders))

	offenders, err = SelectOffenders(models.NineBoxEmployees(), FieldPerformance, 3)
	require.NoError(t, err)
	assert.Empty(t, offenders)
}

func TestSelectOffenders_UnknownField(t *testing.T) {
	_, err := SelectOffenders(models.NineBoxEmployees(), Field("age"), 30)
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestLookupRecord(t *testing.T) {
	rec, err := LookupRecord(models.MockEmployees(), "Eve Black")
	require.NoError(t, err)
	assert.Equal(t, "Sales", rec.Department)

	_, err = LookupRecord(models.MockEmployees(), "Zachary")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupRecord_FirstMatch(t *testing.T) {
	records := []models.EmployeeRecord{
		{Name: "Ana", Department: "IT"},
		{Name: "Ana", Department: "HR"},
	}
	rec, err := LookupRecord(records, "Ana")
	require.NoError(t, err)
	assert.Equal(t, "IT", rec.Department)
}

func TestLookupRecord_OutsideFilter(t *testing.T) {
	filtered, err := ApplyFilters(models.NineBoxEmployees(), FilterSelection{DimensionName: {"Alice", "Bruno"}})
	require.NoError(t, err)

	_, err = LookupRecord(filtered, "Carla")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmployeeCardAndRadar(t *testing.T) {
	rec, err := LookupRecord(models.NineBoxEmployees(), "Alice")
	require.NoError(t, err)

	card := NewEmployeeCard(rec)
	assert.Equal(t, EmployeeCard{Name: "Alice", Performance: 7, Potential: 6}, card)

	radar := CompetencyRadar(rec)
	require.Len(t, radar, 5)
	values := make([]float64, len(radar))
	for i, axis := range radar {
		assert.Equal(t, CompetencyFields[i], axis.Axis)
		values[i] = axis.Value
	}
	assert.Equal(t, []float64{3, 4, 5, 3, 4}, values)
}
