// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics defines the Prometheus collectors exposed by the feature
// engine. They are registered onto the metrics server's registry in
// internal/server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ActivitiesStandardized counts canonical activity records produced per
	// platform during a build run.
	ActivitiesStandardized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churn_features_activities_standardized_total",
			Help: "Total number of raw records standardized into activities",
		},
		[]string{"platform"},
	)

	// RawRecordsSkipped counts raw records or files dropped during
	// standardization (malformed payloads, failed participant joins).
	RawRecordsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churn_features_raw_records_skipped_total",
			Help: "Total number of raw records skipped during standardization",
		},
		[]string{"platform", "reason"},
	)

	// SnapshotsBuilt counts feature snapshots assembled by the table builder.
	SnapshotsBuilt = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "churn_features_snapshots_built_total",
			Help: "Total number of feature snapshots built",
		},
	)

	// BuildDuration observes wall-clock duration of whole build runs.
	BuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "churn_features_build_duration_seconds",
			Help:    "Duration of feature table build runs",
			Buckets: prometheus.DefBuckets,
		},
	)

	// LookupRequests counts requests served by the snapshot lookup service.
	LookupRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "churn_features_lookup_requests_total",
			Help: "Total number of snapshot lookup requests",
		},
		[]string{"endpoint", "status"},
	)
)

// Register registers all engine collectors with the given registry.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(
		ActivitiesStandardized,
		RawRecordsSkipped,
		SnapshotsBuilt,
		BuildDuration,
		LookupRequests,
	)
}
