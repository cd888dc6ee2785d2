package scheduler

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/m-mizutani/matside/pkg/utils/logging"
)

// AlertSource evaluates the alert rules over the stored history
type AlertSource interface {
	Alerts(ctx context.Context) ([]*model.Alert, error)
}

// AlertRecorder receives the result of every evaluation, e.g. metrics
type AlertRecorder interface {
	RecordAlerts(alerts []*model.Alert)
}

// AlertJob periodically evaluates alerts and logs them by severity
type AlertJob struct {
	source   AlertSource
	recorder AlertRecorder
}

// NewAlertJob creates the job. recorder may be nil.
func NewAlertJob(source AlertSource, recorder AlertRecorder) *AlertJob {
	return &AlertJob{
		source:   source,
		recorder: recorder,
	}
}

func (j *AlertJob) Name() string {
	return "alert_evaluation"
}

func (j *AlertJob) Run(ctx context.Context) error {
	alerts, err := j.source.Alerts(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to evaluate alerts")
	}

	logger := logging.From(ctx)
	for _, a := range alerts {
		logger.Log(ctx, severityLevel(a.Severity), a.Message,
			"category", a.Category,
			"priority", a.Priority,
		)
	}
	logger.Info("alerts evaluated", "count", len(alerts))

	if j.recorder != nil {
		j.recorder.RecordAlerts(alerts)
	}

	return nil
}

func severityLevel(s model.Severity) slog.Level {
	switch s {
	case model.SeverityError:
		return slog.LevelError
	case model.SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
