package event

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"posadmin/pkg/domain/model"
)

// LogDispatcher records domain events in the structured log. Dispatch never
// fails the caller.
type LogDispatcher struct {
	logger *log.Entry
}

func NewLogDispatcher(logger *log.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger.WithField("component", "events")}
}

func (d *LogDispatcher) Dispatch(e model.Event) error {
	d.logger.WithFields(log.Fields{
		"event":   e.Type(),
		"payload": fmt.Sprintf("%+v", e),
	}).Info("domain event")
	return nil
}
