package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"hrdash-service/service/models"
)

// DefaultNotifyChannel 员工表变更的 NOTIFY 通道名
const DefaultNotifyChannel = "hr_employees_changed"

// ChangeListener 监听PostgreSQL通知并触发重载
type ChangeListener struct {
	connStr  string
	channel  string
	reloader Reloader
	debounce time.Duration
}

// NewChangeListener 创建数据库变更监听器
func NewChangeListener(connStr, channel string, reloader Reloader) *ChangeListener {
	if channel == "" {
		channel = DefaultNotifyChannel
	}
	return &ChangeListener{connStr: connStr, channel: channel, reloader: reloader, debounce: DefaultDebounce}
}

// Run 阻塞运行直到 ctx 取消
func (l *ChangeListener) Run(ctx context.Context) error {
	listener := pq.NewListener(l.connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			slog.Warn("PostgreSQL监听器事件", "event", ev, "error", err)
		}
	})
	defer listener.Close()

	if err := listener.Listen(l.channel); err != nil {
		return fmt.Errorf("监听数据库通知失败: %w", err)
	}
	slog.Info("数据库变更监听已启动", "channel", l.channel)

	return l.loop(ctx, listener.Notify, listener.Ping)
}

// loop 合并短时间内的多条通知；通知为 nil 表示连接重建，期间可能漏掉变更，同样重载
func (l *ChangeListener) loop(ctx context.Context, notify <-chan *pq.Notification, ping func() error) error {
	keepalive := time.NewTicker(90 * time.Second)
	defer keepalive.Stop()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case n, ok := <-notify:
			if !ok {
				return nil
			}
			if n != nil {
				slog.Debug("收到员工表变更通知", "channel", n.Channel, "payload", n.Extra)
			}
			if fire == nil {
				fire = time.After(l.debounce)
			}
		case <-fire:
			fire = nil
			if _, err := l.reloader.Reload(ctx, models.LoadTriggerNotify); err != nil {
				slog.Warn("数据库变更后重载失败，继续使用上一个快照", "error", err)
			}
		case <-keepalive.C:
			if ping != nil {
				go func() {
					if err := ping(); err != nil {
						slog.Warn("PostgreSQL监听器心跳失败", "error", err)
					}
				}()
			}
		}
	}
}

// InstallNotifyTrigger 在 hr_employees 上创建语句级触发器，变更后发送 NOTIFY
func InstallNotifyTrigger(db *gorm.DB, channel string) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if channel == "" {
		channel = DefaultNotifyChannel
	}
	function := fmt.Sprintf(`
CREATE OR REPLACE FUNCTION hr_employees_notify() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify(%s, TG_OP);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql;`, pq.QuoteLiteral(channel))
	if err := db.Exec(function).Error; err != nil {
		return fmt.Errorf("创建通知函数失败: %w", err)
	}

	statements := []string{
		`DROP TRIGGER IF EXISTS hr_employees_notify_trigger ON hr_employees`,
		`CREATE TRIGGER hr_employees_notify_trigger
AFTER INSERT OR UPDATE OR DELETE OR TRUNCATE ON hr_employees
FOR EACH STATEMENT EXECUTE FUNCTION hr_employees_notify()`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("创建通知触发器失败: %w", err)
		}
	}
	return nil
}
