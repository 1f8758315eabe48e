/*
 * @module service/database/migrate
 * @description 数据库迁移模块，负责创建和更新数据库表结构
 * @architecture 数据访问层 - 迁移管理
 * @documentReference DESIGN.md
 * @stateFlow 应用启动时执行数据库迁移
 * @rules 确保数据库结构与模型定义保持一致
 * @dependencies hrdash-service/service/models, gorm.io/gorm
 * @refs service/models/employee.go
 */

package database

import (
	"log"

	"gorm.io/gorm"

	"hrdash-service/service/models"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	log.Println("开始数据库迁移...")

	err := db.AutoMigrate(
		&models.EmployeeRecord{},
		&models.DatasetLoad{},
	)
	if err != nil {
		return err
	}

	log.Println("数据库迁移完成")
	return nil
}

// InitializeData 员工表为空时写入内置样例数据
func InitializeData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.EmployeeRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("员工表已有 %d 条记录，跳过样例数据初始化", count)
		return nil
	}

	records := models.MockEmployees()
	if err := db.Create(&records).Error; err != nil {
		return err
	}
	log.Printf("已写入 %d 条样例员工数据", len(records))
	return nil
}
