package models

// MockEmployees 返回内置的7人HR样例数据（部门/岗位/薪资/敬业度/离职）
func MockEmployees() []EmployeeRecord {
	names := []string{"Alice Johnson", "Bob Smith", "Carol White", "David Green", "Eve Black", "Frank West", "Grace Moore"}
	departments := []string{"IT", "Sales", "IT", "HR", "Sales", "Finance", "Finance"}
	positions := []string{"Developer", "Sales Rep", "SysAdmin", "HR Manager", "Sales Manager", "Analyst", "Controller"}
	races := []string{"White", "Black", "Asian", "White", "Hispanic", "Black", "White"}
	salaries := []float64{90000, 75000, 95000, 65000, 80000, 70000, 120000}
	engagement := []float64{4.1, 3.8, 4.5, 3.9, 4.2, 3.0, 3.5}
	statuses := []string{"Active", "Terminated", "Active", "Active", "Active", "Active", "Active"}
	terminated := []bool{false, true, false, false, false, false, false}

	records := make([]EmployeeRecord, len(names))
	for i := range names {
		records[i] = EmployeeRecord{
			RowNum:           i + 1,
			Name:             names[i],
			Department:       departments[i],
			Position:         positions[i],
			RaceDesc:         races[i],
			Salary:           salaries[i],
			EngagementSurvey: engagement[i],
			EmploymentStatus: statuses[i],
			Terminated:       terminated[i],
		}
	}
	return records
}

// NineBoxEmployees 返回内置的8人九宫格样例数据（绩效/潜力/五项能力）
func NineBoxEmployees() []EmployeeRecord {
	names := []string{"Alice", "Bruno", "Carla", "Daniel", "Eduardo", "Fernanda", "Gustavo", "Helena"}
	performance := []float64{7, 9, 4, 6, 8, 5, 3, 7}
	potential := []float64{6, 8, 5, 4, 9, 3, 7, 6}
	competencies := [5][]float64{
		{3, 4, 2, 5, 4, 3, 4, 5},
		{4, 5, 3, 3, 5, 4, 2, 4},
		{5, 4, 2, 4, 5, 3, 3, 5},
		{3, 5, 4, 2, 4, 5, 3, 4},
		{4, 3, 5, 4, 3, 4, 5, 3},
	}

	records := make([]EmployeeRecord, len(names))
	for i := range names {
		records[i] = EmployeeRecord{
			RowNum:      i + 1,
			Name:        names[i],
			Performance: performance[i],
			Potential:   potential[i],
			Competency1: competencies[0][i],
			Competency2: competencies[1][i],
			Competency3: competencies[2][i],
			Competency4: competencies[3][i],
			Competency5: competencies[4][i],
		}
	}
	return records
}
