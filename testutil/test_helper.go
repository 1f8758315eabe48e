/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference DESIGN.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, testify, time
 * @refs service/models
 */

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hrdash-service/service/dataset"
	"hrdash-service/service/models"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 内存库每个连接独立，限制为单连接
	sqlDB, err := db.DB()
	if err != nil {
		panic(fmt.Sprintf("failed to get sql db: %v", err))
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.EmployeeRecord{},
		&models.DatasetLoad{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	tables := []string{
		"hr_employees",
		"dataset_loads",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	DB *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{DB: db}
}

// EmployeeOption 员工选项函数类型
type EmployeeOption func(*models.EmployeeRecord)

// WithName 设置姓名
func WithName(name string) EmployeeOption {
	return func(e *models.EmployeeRecord) { e.Name = name }
}

// WithDepartment 设置部门
func WithDepartment(department string) EmployeeOption {
	return func(e *models.EmployeeRecord) { e.Department = department }
}

// WithSalary 设置薪资
func WithSalary(salary float64) EmployeeOption {
	return func(e *models.EmployeeRecord) { e.Salary = salary }
}

// WithRowNum 设置行序
func WithRowNum(n int) EmployeeOption {
	return func(e *models.EmployeeRecord) { e.RowNum = n }
}

// Terminated 标记为离职
func Terminated() EmployeeOption {
	return func(e *models.EmployeeRecord) {
		e.Terminated = true
		e.EmploymentStatus = models.EmploymentStatusTerminated
	}
}

// CreateEmployee 创建测试员工
func (f *TestDataFactory) CreateEmployee(opts ...EmployeeOption) *models.EmployeeRecord {
	employee := &models.EmployeeRecord{
		Name:             "test_employee_" + generateSuffix(),
		Department:       "IT",
		Position:         "Developer",
		RaceDesc:         "White",
		Salary:           80000,
		EngagementSurvey: 4.0,
		EmploymentStatus: models.EmploymentStatusActive,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	// 应用选项
	for _, opt := range opts {
		opt(employee)
	}

	err := f.DB.Create(employee).Error
	if err != nil {
		panic(fmt.Sprintf("failed to create test employee: %v", err))
	}

	return employee
}

// SeedEmployees 批量写入员工记录
func (f *TestDataFactory) SeedEmployees(records []models.EmployeeRecord) {
	for i := range records {
		records[i].ID = ""
	}
	if err := f.DB.Create(&records).Error; err != nil {
		panic(fmt.Sprintf("failed to seed employees: %v", err))
	}
}

func generateSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano()%100000)
}

// MockReloader Mock数据集重载
type MockReloader struct {
	mock.Mock
}

// Reload 实现 dataset.Reloader
func (m *MockReloader) Reload(ctx context.Context, trigger string) (*dataset.Snapshot, error) {
	args := m.Called(trigger)
	snap, _ := args.Get(0).(*dataset.Snapshot)
	return snap, args.Error(1)
}

// LoaderFunc 以函数实现 dataset.Loader
type LoaderFunc func(ctx context.Context) ([]models.EmployeeRecord, error)

// StubLoader 测试用加载器，可在运行中替换返回值
type StubLoader struct {
	Fn LoaderFunc
}

// Load 实现 dataset.Loader
func (s *StubLoader) Load(ctx context.Context) ([]models.EmployeeRecord, error) {
	return s.Fn(ctx)
}

// Type 实现 dataset.Loader
func (s *StubLoader) Type() string { return "stub" }

// Describe 实现 dataset.Loader
func (s *StubLoader) Describe() string { return "stub" }

// HTTPTestHelper HTTP测试辅助工具
type HTTPTestHelper struct{}

// NewHTTPTestHelper 创建HTTP测试辅助工具
func NewHTTPTestHelper() *HTTPTestHelper {
	return &HTTPTestHelper{}
}

// CreateJSONRequest 创建JSON请求
func (h *HTTPTestHelper) CreateJSONRequest(method, url string, body interface{}) (*http.Request, error) {
	var reqBody io.Reader

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// DecodeResponse 解析统一响应结构，Data 解码到 out
func (h *HTTPTestHelper) DecodeResponse(t *testing.T, w *httptest.ResponseRecorder, out interface{}) (status int, msg string) {
	t.Helper()
	var envelope struct {
		Status int             `json:"status"`
		Msg    string          `json:"msg"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	if out != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return envelope.Status, envelope.Msg
}

// AssertJSONResponse 断言JSON响应
func (h *HTTPTestHelper) AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedBody interface{}) {
	assert.Equal(t, expectedStatus, w.Code)

	if expectedBody != nil {
		var actualBody interface{}
		err := json.Unmarshal(w.Body.Bytes(), &actualBody)
		assert.NoError(t, err)

		expectedJSON, _ := json.Marshal(expectedBody)
		actualJSON, _ := json.Marshal(actualBody)

		assert.JSONEq(t, string(expectedJSON), string(actualJSON))
	}
}
