//go:build linux

package disc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pilebones/go-udev/netlink"

	"juiceit/internal/logging"
)

// netlinkWaiter listens for udev media-change events on the kernel netlink
// socket.
type netlinkWaiter struct {
	logger *slog.Logger
}

// NewWaiter returns the insertion waiter for the running platform.
func NewWaiter(logger *slog.Logger) Waiter {
	return &netlinkWaiter{logger: logging.NewComponentLogger(logger, "disc-waiter")}
}

func (w *netlinkWaiter) WaitForDisc(ctx context.Context, device string) (string, error) {
	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return "", fmt.Errorf("connect netlink socket: %w", err)
	}
	defer conn.Close()

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	quit := conn.Monitor(queue, errs, buildMatcher())
	defer close(quit)

	w.logger.Info("waiting for disc insertion", logging.String(logging.FieldDevice, device))
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case uevent := <-queue:
			if devname, ok := acceptEvent(uevent, device); ok {
				w.logger.Info("disc media detected",
					logging.String(logging.FieldEventType, "netlink_disc_detected"),
					logging.String(logging.FieldDevice, devname),
					logging.String("action", string(uevent.Action)))
				return devname, nil
			}
			w.logger.Debug("ignoring media event", logging.String("kobj", uevent.KObj))
		case err := <-errs:
			logging.WarnWithContext(w.logger, "netlink monitor error", "netlink_monitor_error",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check kernel netlink subsystem"),
				logging.String(logging.FieldImpact, "disc insertion may be missed"))
		}
	}
}

// buildMatcher accepts SUBSYSTEM=block, ID_CDROM=1, ID_CDROM_MEDIA=1 with
// ACTION=change|add.
func buildMatcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}

func acceptEvent(uevent netlink.UEvent, device string) (string, bool) {
	devname := deviceName(uevent.Env)
	if devname == "" {
		return "", false
	}
	if device != "" && devname != device {
		return "", false
	}
	return devname, true
}

// deviceName prefers DEVNAME and falls back to the last DEVPATH element.
func deviceName(env map[string]string) string {
	if devname := env["DEVNAME"]; devname != "" {
		if !strings.HasPrefix(devname, "/") {
			devname = "/dev/" + devname
		}
		return devname
	}
	devpath := env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	return "/dev/" + parts[len(parts)-1]
}
