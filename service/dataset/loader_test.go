package dataset_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hrdash-service/service/dataset"
	"hrdash-service/service/models"
	"hrdash-service/testutil"
)

const hrCSV = `Employee_Name,Department,Position,RaceDesc,Salary,EngagementSurvey,EmploymentStatus,Termd
Alice Johnson,IT,Developer,White,90000,4.1,Active,0
Bob Smith,Sales       ,Sales Rep,Black,75000,3.8,Terminated,1

Carol White,IT,SysAdmin,Asian,95000,4.5,Active,0
`

const nineboxCSV = `Nome,Performance,Potencial,Competencia_1,Competencia_2,Competencia_3,Competencia_4,Competencia_5
Alice,7,6,3,4,5,3,4
Bruno,9,8,4,5,4,5,3
`

func TestParseCSV_HRDataset(t *testing.T) {
	records, err := dataset.ParseCSV(strings.NewReader(hrCSV), "")
	require.NoError(t, err)
	require.Len(t, records, 3)

	bob := records[1]
	assert.Equal(t, "Bob Smith", bob.Name)
	assert.Equal(t, 75000.0, bob.Salary)
	assert.Equal(t, 3.8, bob.EngagementSurvey)
	assert.True(t, bob.Terminated)
	assert.Equal(t, 2, bob.RowNum)
	assert.Equal(t, 3, records[2].RowNum)
}

func TestParseCSV_NineBox(t *testing.T) {
	records, err := dataset.ParseCSV(strings.NewReader(nineboxCSV), "utf-8")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, [5]float64{4, 5, 4, 5, 3}, records[1].Competencies())
	assert.Equal(t, 8.0, records[1].Potential)
}

func TestParseCSV_Encodings(t *testing.T) {
	// windows-1252: é = 0xE9
	latin := []byte("Employee_Name,Department\nJos\xe9 Silva,Finan\xe7as\n")
	records, err := dataset.ParseCSV(bytes.NewReader(latin), "windows-1252")
	require.NoError(t, err)
	assert.Equal(t, "José Silva", records[0].Name)
	assert.Equal(t, "Finanças", records[0].Department)

	bom := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Employee_Name,Salary\nAna,100\n")...)
	records, err = dataset.ParseCSV(bytes.NewReader(bom), "windows-1252")
	require.NoError(t, err)
	assert.Equal(t, "Ana", records[0].Name)
	assert.Equal(t, 100.0, records[0].Salary)

	_, err = dataset.ParseCSV(strings.NewReader(hrCSV), "klingon")
	assert.Error(t, err)
}

func TestParseCSV_Errors(t *testing.T) {
	_, err := dataset.ParseCSV(strings.NewReader("Department,Salary\nIT,1\n"), "")
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)

	_, err = dataset.ParseCSV(strings.NewReader("Employee_Name,Salary\nAna,lots\n"), "")
	assert.ErrorIs(t, err, dataset.ErrInvalidRecord)
	assert.Contains(t, err.Error(), "row 2")

	_, err = dataset.ParseCSV(strings.NewReader("Employee_Name,Termd\nAna,maybe\n"), "")
	assert.ErrorIs(t, err, dataset.ErrInvalidRecord)
}

func TestParseCSV_RejectsNonFiniteNumbers(t *testing.T) {
	cases := []struct {
		name string
		csv  string
		row  string
	}{
		{"nan performance", "Nome,Performance,Potencial\nAlice,NaN,5\nBruno,7,Inf\n", "row 2"},
		{"inf potential", "Nome,Performance,Potencial\nAlice,6,5\nBruno,7,Inf\n", "row 3"},
		{"signed inf salary", "Employee_Name,Salary\nAna,1000\nBia,+Inf\n", "row 3"},
		{"lowercase nan engagement", "Employee_Name,EngagementSurvey\nAna,nan\n", "row 2"},
		{"negative inf competency", "Nome,Competencia_4\nAlice,-Inf\n", "row 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := dataset.ParseCSV(strings.NewReader(tc.csv), "")
			require.ErrorIs(t, err, dataset.ErrInvalidRecord)
			assert.Contains(t, err.Error(), tc.row)
			assert.Contains(t, err.Error(), "finite")
			assert.Nil(t, records)
		})
	}
}

func TestLoad_RejectsScoresOutOfRange(t *testing.T) {
	cases := []struct {
		name string
		csv  string
		row  string
	}{
		{"performance above scale", "Nome,Performance,Potencial\nAlice,11,5\n", "row 1"},
		{"negative potential", "Nome,Performance,Potencial\nAlice,5,5\nBruno,5,-1\n", "row 2"},
		{"competency above scale", "Nome,Performance,Competencia_2\nAlice,5,3\nBruno,5,9\n", "row 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ninebox.csv")
			require.NoError(t, os.WriteFile(path, []byte(tc.csv), 0o644))
			loader, err := dataset.NewLoader(dataset.SourceConfig{Type: dataset.SourceCSV, Path: path})
			require.NoError(t, err)

			store := dataset.NewStore(loader, nil)
			_, err = store.Reload(context.Background(), models.LoadTriggerManual)
			require.ErrorIs(t, err, dataset.ErrInvalidRecord)
			assert.Contains(t, err.Error(), tc.row)
			assert.Contains(t, err.Error(), "超出范围")
		})
	}
}

func xlsxBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	data := xlsxBytes(t, [][]interface{}{
		{"Employee_Name", "Department", "Salary", "Termd"},
		{"Frank West", "Finance", 70000, 0},
		{"Grace Moore", "Finance", 120000, 1},
	})

	records, err := dataset.ParseXLSX(bytes.NewReader(data), "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Grace Moore", records[1].Name)
	assert.Equal(t, 120000.0, records[1].Salary)
	assert.True(t, records[1].Terminated)

	_, err = dataset.ParseXLSX(bytes.NewReader(data), "Missing")
	assert.Error(t, err)
}

func TestFileLoaders(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "hr.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(hrCSV), 0o644))
	xlsxPath := filepath.Join(dir, "hr.xlsx")
	require.NoError(t, os.WriteFile(xlsxPath, xlsxBytes(t, [][]interface{}{{"Nome"}, {"Alice"}}), 0o644))

	ctx := context.Background()

	loader, err := dataset.NewLoader(dataset.SourceConfig{Type: dataset.SourceCSV, Path: csvPath})
	require.NoError(t, err)
	records, err := loader.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, csvPath, loader.Describe())

	loader, err = dataset.NewLoader(dataset.SourceConfig{Type: dataset.SourceXLSX, Path: xlsxPath})
	require.NoError(t, err)
	records, err = loader.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", records[0].Name)

	loader, err = dataset.NewLoader(dataset.SourceConfig{Type: dataset.SourceCSV, Path: filepath.Join(dir, "missing.csv")})
	require.NoError(t, err)
	_, err = loader.Load(ctx)
	assert.Error(t, err)
}

func TestNewLoader_Sources(t *testing.T) {
	_, err := dataset.NewLoader(dataset.SourceConfig{Type: "ftp"})
	assert.ErrorIs(t, err, dataset.ErrUnknownSource)

	_, err = dataset.NewLoader(dataset.SourceConfig{Type: dataset.SourceDatabase})
	assert.ErrorIs(t, err, dataset.ErrUnknownSource)

	_, err = dataset.NewLoader(dataset.SourceConfig{Type: dataset.SourceFixture, Fixture: "payroll"})
	assert.ErrorIs(t, err, dataset.ErrUnknownSource)

	loader, err := dataset.NewLoader(dataset.SourceConfig{Type: dataset.SourceFixture, Fixture: dataset.FixtureAll})
	require.NoError(t, err)
	records, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 15)
	assert.Equal(t, 15, records[14].RowNum)
}

func TestDBLoader_OrdersByRowNum(t *testing.T) {
	tdb := testutil.NewTestDB()
	defer tdb.Close()
	factory := testutil.NewTestDataFactory(tdb.DB)

	factory.CreateEmployee(testutil.WithName("Third"), testutil.WithRowNum(3))
	factory.CreateEmployee(testutil.WithName("First"), testutil.WithRowNum(1))
	factory.CreateEmployee(testutil.WithName("Second"), testutil.WithRowNum(2))

	loader, err := dataset.NewLoader(dataset.SourceConfig{Type: dataset.SourceDatabase, DB: tdb.DB})
	require.NoError(t, err)
	records, err := loader.Load(context.Background())
	require.NoError(t, err)

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"First", "Second", "Third"}, names)
	assert.Equal(t, models.EmployeeRecord{}.TableName(), loader.Describe())
}
