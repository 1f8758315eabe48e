/**
 * @module ReloadScheduler
 * @description 数据集定时重载调度器
 * @architecture 基于robfig/cron的调度器模式
 * @documentReference DESIGN.md
 * @stateFlow Start -> 按Cron表达式触发 -> Reload -> Stop
 * @rules 表达式支持秒级字段；上一次重载未结束时跳过本次触发
 * @dependencies cron库, service/dataset
 * @refs ../dataset/store.go
 */

package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"hrdash-service/service/dataset"
	"hrdash-service/service/models"
)

// ReloadScheduler 数据集重载调度器
type ReloadScheduler struct {
	reloader dataset.Reloader
	cron     *cron.Cron
	entryID  cron.EntryID
	timeout  time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewReloadScheduler 创建调度器，expression 使用带秒的六段Cron表达式
func NewReloadScheduler(reloader dataset.Reloader, expression string) (*ReloadScheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())

	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	s := &ReloadScheduler{
		reloader: reloader,
		cron:     c,
		timeout:  5 * time.Minute,
		ctx:      ctx,
		cancel:   cancel,
	}

	id, err := c.AddFunc(expression, s.run)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("无效的Cron表达式 %q: %w", expression, err)
	}
	s.entryID = id
	return s, nil
}

// Start 启动调度器
func (s *ReloadScheduler) Start() {
	log.Println("启动数据集重载调度器")
	s.cron.Start()
}

// Stop 停止调度器并等待正在执行的重载结束
func (s *ReloadScheduler) Stop() {
	log.Println("停止数据集重载调度器")
	s.cancel()
	<-s.cron.Stop().Done()
}

// Next 下一次触发时间
func (s *ReloadScheduler) Next() time.Time {
	return s.cron.Entry(s.entryID).Next
}

func (s *ReloadScheduler) run() {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	if _, err := s.reloader.Reload(ctx, models.LoadTriggerCron); err != nil {
		log.Printf("定时重载数据集失败: %v", err)
	}
}
