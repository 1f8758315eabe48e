/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、数据集加载、缓存与事件组件的装配
 * @architecture 分层架构 - 服务层
 * @documentReference DESIGN.md
 * @stateFlow 连接数据库 -> 迁移 -> 创建快照存储 -> 装配引擎 -> 启动后台任务
 * @rules 可选组件（Redis、Kafka、文件监听、数据库通知）未配置或不可用时降级运行
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres, gorm.io/driver/sqlite
 * @refs service/config/config.go, api/routes.go
 */

package service

import (
	"context"
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hrdash-service/service/analytics"
	"hrdash-service/service/cache"
	"hrdash-service/service/config"
	"hrdash-service/service/database"
	"hrdash-service/service/dataset"
	"hrdash-service/service/distributed_lock"
	"hrdash-service/service/event"
	"hrdash-service/service/models"
	"hrdash-service/service/monitoring"
	"hrdash-service/service/scheduler"
)

// Services 装配完成的服务组件
type Services struct {
	Config    *config.Config
	DB        *gorm.DB
	Profiles  *analytics.ProfileRegistry
	Store     *dataset.Store
	Engine    *analytics.Engine
	Importer  *dataset.Importer
	Cache     cache.ViewCache
	Publisher event.Publisher
	Metrics   *monitoring.Metrics
	Scheduler *scheduler.ReloadScheduler
	Locker    distributed_lock.Locker

	// Registerer 指标注册表，HTTP中间件与业务指标共用
	Registerer prometheus.Registerer

	ctx    context.Context
	cancel context.CancelFunc
}

// Initialize 按配置装配全部服务
func Initialize(cfg *config.Config) (*Services, error) {
	s := &Services{Config: cfg}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	if err := s.initDatabase(); err != nil {
		return nil, err
	}
	if err := s.runMigrations(); err != nil {
		return nil, err
	}
	if err := s.initServices(); err != nil {
		return nil, err
	}
	log.Println("服务初始化完成")
	return s, nil
}

// initDatabase 初始化数据库连接
func (s *Services) initDatabase() error {
	var dialector gorm.Dialector
	switch s.Config.Database.Driver {
	case config.DriverNone:
		log.Println("未配置数据库，跳过数据库连接")
		return nil
	case config.DriverSQLite:
		dialector = sqlite.Open(s.Config.Database.SQLitePath)
	default:
		dialector = postgres.Open(s.Config.Database.PostgresDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}
	s.DB = db
	log.Println("数据库连接成功")
	return nil
}

// runMigrations 运行数据库迁移
func (s *Services) runMigrations() error {
	if s.DB == nil {
		return nil
	}
	log.Println("开始运行数据库迁移...")

	if err := database.AutoMigrate(s.DB); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	if s.Config.Dataset.Source == dataset.SourceDatabase && s.Config.Dataset.Seed {
		if err := database.InitializeData(s.DB); err != nil {
			return fmt.Errorf("样例数据初始化失败: %w", err)
		}
	}

	if s.Config.Dataset.NotifyChannel != "" {
		if err := dataset.InstallNotifyTrigger(s.DB, s.Config.Dataset.NotifyChannel); err != nil {
			log.Printf("创建员工表通知触发器失败: %v", err)
		}
	}

	log.Println("所有数据库迁移任务完成")
	return nil
}

// initServices 初始化服务
func (s *Services) initServices() error {
	cfg := s.Config

	s.Profiles = analytics.NewProfileRegistry()
	if cfg.ProfilesPath != "" {
		if err := s.Profiles.LoadFile(cfg.ProfilesPath); err != nil {
			return fmt.Errorf("加载看板配置失败: %w", err)
		}
		log.Printf("已加载看板配置: %s", cfg.ProfilesPath)
	}

	loader, err := dataset.NewLoader(dataset.SourceConfig{
		Type:     cfg.Dataset.Source,
		Path:     cfg.Dataset.Path,
		Encoding: cfg.Dataset.Encoding,
		Sheet:    cfg.Dataset.Sheet,
		Fixture:  cfg.Dataset.Fixture,
		DB:       s.DB,
	})
	if err != nil {
		return err
	}
	s.Store = dataset.NewStore(loader, s.DB)

	if s.Registerer == nil {
		s.Registerer = prometheus.DefaultRegisterer
	}
	s.Metrics = monitoring.NewMetrics(s.Registerer)
	s.Store.OnReload(s.Metrics.ReloadHook())

	s.Publisher = event.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		s.Publisher = event.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Printf("数据集事件将发布到Kafka topic: %s", cfg.Kafka.Topic)
	}
	s.Store.OnReload(event.ReloadHook(s.Publisher))

	s.Cache = cache.NopViewCache{}
	if cfg.Redis.Host != "" {
		redisCache, err := cache.NewRedisViewCache(s.ctx, cache.RedisOptions{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			log.Printf("Redis不可用，视图缓存已禁用: %v", err)
		} else {
			s.Cache = redisCache
			s.Locker = distributed_lock.NewRedisLock(redisCache.Client(), distributed_lock.InstanceID())
		}
	}

	s.Engine = analytics.NewEngine(s.Store, s.Profiles, analytics.WithRecorder(s.Metrics))

	if s.DB != nil {
		s.Importer = dataset.NewImporter(s.DB, s.Store, cfg.Dataset.Encoding)
		s.Importer.SetLocker(s.Locker)
	}

	if cfg.Dataset.ReloadCron != "" {
		s.Scheduler, err = scheduler.NewReloadScheduler(s.Store, cfg.Dataset.ReloadCron)
		if err != nil {
			return err
		}
	}
	return nil
}

// Start 加载初始快照并启动后台任务
func (s *Services) Start() {
	if _, err := s.Store.Reload(s.ctx, models.LoadTriggerStartup); err != nil {
		log.Printf("初始数据集加载失败，首次请求时将重试: %v", err)
	}

	cfg := s.Config
	if cfg.Dataset.Watch {
		watcher := dataset.NewWatcher(cfg.Dataset.Path, s.Store, dataset.DefaultDebounce)
		go func() {
			if err := watcher.Run(s.ctx); err != nil {
				log.Printf("数据文件监听退出: %v", err)
			}
		}()
	}

	if cfg.Dataset.NotifyChannel != "" && cfg.Database.Driver == config.DriverPostgres {
		listener := dataset.NewChangeListener(cfg.Database.ListenerDSN(), cfg.Dataset.NotifyChannel, s.Store)
		go func() {
			if err := listener.Run(s.ctx); err != nil {
				log.Printf("数据库变更监听退出: %v", err)
			}
		}()
	}

	if s.Scheduler != nil {
		s.Scheduler.Start()
	}
}

// Shutdown 停止后台任务并释放连接
func (s *Services) Shutdown() {
	s.cancel()
	if s.Scheduler != nil {
		s.Scheduler.Stop()
	}
	if err := s.Publisher.Close(); err != nil {
		log.Printf("关闭事件发布者失败: %v", err)
	}
	if closer, ok := s.Cache.(interface{ Close() error }); ok {
		closer.Close()
	}
	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	log.Println("服务已停止")
}
