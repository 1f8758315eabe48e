/*
 * @module service/analytics/filters_test
 * @description 过滤逻辑单元测试：子集、幂等、全选恒等、空选择
 * @architecture 测试层
 * @dependencies testing, stretchr/testify
 */

package analytics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdash-service/service/models"
)

func names(records []models.EmployeeRecord) []string {
	out := make([]string, len(records))
	for i := range records {
		out[i] = records[i].Name
	}
	return out
}

func TestApplyFilters_DepartmentAndPosition(t *testing.T) {
	records := models.MockEmployees()

	filtered, err := ApplyFilters(records, FilterSelection{
		DimensionDepartment: {"IT", "Finance"},
		DimensionPosition:   {"Developer", "SysAdmin", "Controller"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice Johnson", "Carol White", "Grace Moore"}, names(filtered))
}

func TestApplyFilters_UnconstrainedDimension(t *testing.T) {
	records := models.MockEmployees()

	filtered, err := ApplyFilters(records, FilterSelection{})
	require.NoError(t, err)
	assert.Equal(t, records, filtered)

	filtered, err = ApplyFilters(records, nil)
	require.NoError(t, err)
	assert.Len(t, filtered, len(records))
}

func TestApplyFilters_EmptySelectionExcludesAll(t *testing.T) {
	records := models.MockEmployees()

	filtered, err := ApplyFilters(records, FilterSelection{DimensionDepartment: {}})
	require.NoError(t, err)
	assert.Empty(t, filtered)

	// nil 值同样表示“选中了空集合”
	filtered, err = ApplyFilters(records, FilterSelection{DimensionPosition: nil})
	require.NoError(t, err)
	assert.Empty(t, filtered)
}

func TestApplyFilters_ExactMatch(t *testing.T) {
	records := models.MockEmployees()

	filtered, err := ApplyFilters(records, FilterSelection{DimensionDepartment: {"it"}})
	require.NoError(t, err)
	assert.Empty(t, filtered, "取值区分大小写")
}

func TestApplyFilters_UnknownDimension(t *testing.T) {
	_, err := ApplyFilters(models.MockEmployees(), FilterSelection{"gender": {"F"}})
	assert.ErrorIs(t, err, ErrUnknownDimension)
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	records := models.MockEmployees()
	before := models.MockEmployees()

	filtered, err := ApplyFilters(records, FilterSelection{DimensionDepartment: {"IT"}})
	require.NoError(t, err)
	filtered[0].Name = "changed"

	assert.Equal(t, before, records)
}

func TestDefaultSelection_IsIdentity(t *testing.T) {
	records := models.MockEmployees()

	selection, err := DefaultSelection(records, DimensionDepartment, DimensionPosition, DimensionName)
	require.NoError(t, err)
	assert.Equal(t, []string{"IT", "Sales", "HR", "Finance"}, selection[DimensionDepartment])

	filtered, err := ApplyFilters(records, selection)
	require.NoError(t, err)
	assert.Equal(t, records, filtered)
}

func TestResolveSelection(t *testing.T) {
	records := models.MockEmployees()

	resolved, err := ResolveSelection(records, []Dimension{DimensionDepartment, DimensionPosition}, FilterSelection{
		DimensionDepartment: {"HR"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"HR"}, resolved[DimensionDepartment])
	assert.Len(t, resolved[DimensionPosition], 7)

	resolved, err = ResolveSelection(records, []Dimension{DimensionDepartment}, FilterSelection{DimensionDepartment: nil})
	require.NoError(t, err)
	assert.NotNil(t, resolved[DimensionDepartment])
	assert.Empty(t, resolved[DimensionDepartment])
}

// TestApplyFilters_Properties 随机选择下的子集、成员、幂等性质
func TestApplyFilters_Properties(t *testing.T) {
	records := models.MockEmployees()
	rng := rand.New(rand.NewSource(42))
	dims := []Dimension{DimensionDepartment, DimensionPosition, DimensionRace}

	for iter := 0; iter < 200; iter++ {
		selection := FilterSelection{}
		for _, dim := range dims {
			if rng.Intn(3) == 0 {
				continue
			}
			values, err := DistinctValues(records, dim)
			require.NoError(t, err)
			chosen := []string{}
			for _, v := range values {
				if rng.Intn(2) == 0 {
					chosen = append(chosen, v)
				}
			}
			selection[dim] = chosen
		}

		filtered, err := ApplyFilters(records, selection)
		require.NoError(t, err)

		for i := range filtered {
			assert.Contains(t, records, filtered[i])
			for dim, allowed := range selection {
				v, err := DimensionValue(&filtered[i], dim)
				require.NoError(t, err)
				assert.Contains(t, allowed, v)
			}
		}

		again, err := ApplyFilters(filtered, selection)
		require.NoError(t, err)
		assert.Equal(t, filtered, again)

		for _, allowed := range selection {
			if len(allowed) == 0 {
				assert.Empty(t, filtered)
			}
		}
	}
}
