package resilience

import (
	"encoding/json"

	"github.com/anhdng/songngu/internal/logger"
	"github.com/anhdng/songngu/internal/notify"
)

// Outcome says how far a recovery got.
type Outcome int

const (
	// RecoveredFull means the backup value was intact and used as is.
	RecoveredFull Outcome = iota
	// RecoveredPartial means the corrupted value was salvaged by merging
	// it over defaults.
	RecoveredPartial
	// RecoveredReset means nothing was salvageable and defaults were used.
	RecoveredReset
)

func (o Outcome) String() string {
	switch o {
	case RecoveredFull:
		return "full"
	case RecoveredPartial:
		return "partial"
	default:
		return "reset"
	}
}

// Recover salvages a stored value that failed shape validation.
//
// The order is strict: the backup value wins if it independently
// validates; otherwise the corrupted value is shallow-merged over defaults
// and kept if the merge validates; otherwise defaults. Each outcome emits
// a distinctly worded notification so the operator knows what happened.
func Recover[T any](corrupted, backupRaw []byte, defaults T, valid func(T) bool,
	notifier notify.Notifier, log logger.Logger, what string) (T, Outcome) {

	if notifier == nil {
		notifier = notify.Nop{}
	}

	if len(backupRaw) > 0 {
		var fromBackup T
		if err := json.Unmarshal(backupRaw, &fromBackup); err == nil && valid(fromBackup) {
			log.Info("recovered value from backup", logger.String("what", what))
			notifier.Notify(notify.Success, "Data recovered",
				"Corrupted "+what+" was restored from its backup.")
			return fromBackup, RecoveredFull
		}
	}

	if merged, ok := mergeOverDefaults(corrupted, defaults); ok && valid(merged) {
		log.Warn("partially recovered corrupted value", logger.String("what", what))
		notifier.Notify(notify.Warning, "Data partially recovered",
			"Some of the corrupted "+what+" was salvaged; missing fields use defaults.")
		return merged, RecoveredPartial
	}

	log.Error("corrupted value reset to defaults", logger.String("what", what))
	notifier.Notify(notify.Error, "Data reset",
		"Corrupted "+what+" could not be recovered and was reset to defaults.")
	return defaults, RecoveredReset
}

// mergeOverDefaults overlays the corrupted value's JSON keys on top of the
// defaults. Returns false when the corrupted bytes are not a JSON object.
func mergeOverDefaults[T any](corrupted []byte, defaults T) (T, bool) {
	var zero T

	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(corrupted, &overlay); err != nil || overlay == nil {
		return zero, false
	}

	blob, err := json.Marshal(defaults)
	if err != nil {
		return zero, false
	}
	var base map[string]json.RawMessage
	if err := json.Unmarshal(blob, &base); err != nil || base == nil {
		return zero, false
	}

	for k, v := range overlay {
		base[k] = v
	}

	mergedBlob, err := json.Marshal(base)
	if err != nil {
		return zero, false
	}
	var merged T
	if err := json.Unmarshal(mergedBlob, &merged); err != nil {
		return zero, false
	}
	return merged, true
}
