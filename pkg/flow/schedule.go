package flow

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ValidateSchedule checks a standard five field cron expression. Descriptors
// such as "@every 5m" are accepted too.
func ValidateSchedule(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}
	return nil
}

// ScheduleReloads reloads the store on the given cron schedule. The returned
// scheduler is not started; call Start and Stop around its lifetime.
func ScheduleReloads(store *Store, spec string, log *logrus.Logger) (*cron.Cron, error) {
	if log == nil {
		log = logrus.New()
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := store.Reload(); err != nil {
			log.WithError(err).Warn("Scheduled flow reload failed, keeping previous flow")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}
	return c, nil
}
