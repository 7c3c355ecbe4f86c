package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SpinsTotal считает разрешенные спины по режиму и признаку подкрутки
	SpinsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wheelparty_spins_total",
		Help: "Количество разрешенных спинов",
	}, []string{"mode", "rigged"})

	// MatchesStarted считает запущенные матчи по режиму
	MatchesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wheelparty_matches_started_total",
		Help: "Количество запущенных матчей",
	}, []string{"mode"})

	// MatchesFinished считает завершенные матчи по режиму
	MatchesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wheelparty_matches_finished_total",
		Help: "Количество завершенных матчей",
	}, []string{"mode"})

	// ActiveSessions - число живых игровых сессий в памяти
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wheelparty_active_sessions",
		Help: "Число активных игровых сессий",
	})

	// SpinsCancelled считает отмененные до разрешения спины
	SpinsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wheelparty_spins_cancelled_total",
		Help: "Количество отмененных спинов",
	})
)
