// Package alert talks to the host: the speaker, the desktop
// notification service and the stored notification permission.
package alert

import (
	"errors"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/td0m/taskmaster/pkg/persist"
	"github.com/td0m/taskmaster/pkg/remind"
)

// PermissionKey is where the user's notification choice is stored
const PermissionKey = "notificationPermission"

var (
	_ remind.Beeper           = Speaker{}
	_ remind.Notifier         = Desktop{}
	_ remind.PermissionReader = &StoredPermission{}
)

// Speaker plays tones through the system beeper
type Speaker struct{}

func (Speaker) Beep(freq float64, d time.Duration) error {
	return beeep.Beep(freq, int(d.Milliseconds()))
}

// Desktop sends notifications through the host notification service
type Desktop struct{}

func (Desktop) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// StoredPermission keeps the user's notification choice across sessions
type StoredPermission struct {
	kv persist.KV
}

func NewStoredPermission(kv persist.KV) *StoredPermission {
	return &StoredPermission{kv: kv}
}

// State reads the stored choice; anything unreadable counts as not asked
func (p *StoredPermission) State() remind.Permission {
	bs, err := p.kv.Get(PermissionKey)
	if err != nil {
		return remind.PermissionDefault
	}
	switch strings.TrimSpace(string(bs)) {
	case "granted":
		return remind.PermissionGranted
	case "denied":
		return remind.PermissionDenied
	default:
		return remind.PermissionDefault
	}
}

// Record stores the answer the user gave when asked. Only the consent
// prompt calls it.
func (p *StoredPermission) Record(answer remind.Permission) error {
	if answer == remind.PermissionDefault {
		return errors.New("permission answer must be granted or denied")
	}
	return p.kv.Set(PermissionKey, []byte(answer.String()))
}
