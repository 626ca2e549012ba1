// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package process

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Launch outcomes recorded in the result label.
const (
	resultSuccess    = "success"
	resultPipeError  = "pipe_error"
	resultSpawnError = "spawn_error"
	resultRejected   = "rejected"
)

var (
	launchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procmanage_launches_total",
			Help: "Total number of launch attempts by result",
		},
		[]string{"result"},
	)

	closesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "procmanage_closes_total",
			Help: "Total number of running children released by Close",
		},
	)

	killsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "procmanage_kills_total",
			Help: "Total number of SIGKILLs delivered",
		},
	)

	runningProcesses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "procmanage_running_processes",
			Help: "Number of handles currently holding a launched child",
		},
	)
)

// MetricsHandler returns an HTTP handler exposing the default Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
