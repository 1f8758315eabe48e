/*
 * @module service/monitoring/metrics
 * @description Prometheus指标：视图派生次数与耗时、数据集重载结果、当前记录数
 * @architecture 观察者模式 - 作为引擎 Recorder 和数据集重载回调接入
 * @documentReference DESIGN.md
 * @stateFlow 派生/重载完成 -> 更新计数器与直方图 -> /metrics 暴露
 * @rules 指标更新不得阻塞或影响业务结果
 * @dependencies github.com/prometheus/client_golang
 * @refs service/analytics/engine.go, service/dataset/store.go
 */

package monitoring

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hrdash-service/service/dataset"
)

// Metrics 服务指标集合
type Metrics struct {
	derivations        *prometheus.CounterVec
	derivationDuration *prometheus.HistogramVec
	filteredRecords    *prometheus.HistogramVec
	reloads            *prometheus.CounterVec
	datasetRecords     prometheus.Gauge
	cacheLookups       *prometheus.CounterVec
}

// NewMetrics 创建并注册指标
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		derivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrdash",
			Name:      "view_derivations_total",
			Help:      "Dashboard view derivations by profile and result.",
		}, []string{"profile", "result"}),
		derivationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hrdash",
			Name:      "view_derivation_duration_seconds",
			Help:      "Time spent deriving dashboard views.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"profile"}),
		filteredRecords: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hrdash",
			Name:      "view_filtered_records",
			Help:      "Records remaining after filtering.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"profile"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrdash",
			Name:      "dataset_reloads_total",
			Help:      "Dataset reloads by trigger and result.",
		}, []string{"trigger", "result"}),
		datasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hrdash",
			Name:      "dataset_records",
			Help:      "Records in the current dataset snapshot.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrdash",
			Name:      "view_cache_lookups_total",
			Help:      "View cache lookups by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.derivations, m.derivationDuration, m.filteredRecords, m.reloads, m.datasetRecords, m.cacheLookups)
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveDerivation 实现 analytics.Recorder
func (m *Metrics) ObserveDerivation(profile string, filtered int, elapsed time.Duration, err error) {
	m.derivations.WithLabelValues(profile, result(err)).Inc()
	m.derivationDuration.WithLabelValues(profile).Observe(elapsed.Seconds())
	if err == nil {
		m.filteredRecords.WithLabelValues(profile).Observe(float64(filtered))
	}
}

// ObserveCache 记录缓存命中情况
func (m *Metrics) ObserveCache(hit bool) {
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// ReloadHook 返回可注册到 dataset.Store 的回调
func (m *Metrics) ReloadHook() dataset.ReloadHook {
	return func(ctx context.Context, r dataset.ReloadResult) {
		m.reloads.WithLabelValues(r.Trigger, result(r.Err)).Inc()
		if r.Err == nil && r.Snapshot != nil {
			m.datasetRecords.Set(float64(r.Snapshot.Count))
		}
	}
}
