package homework

import "fmt"

// Formatter turns a homework record into the notification text.
type Formatter struct {
	verdicts VerdictTable
}

// NewFormatter copies the given table; later changes to it have no effect.
func NewFormatter(verdicts VerdictTable) *Formatter {
	table := make(VerdictTable, len(verdicts))
	for status, verdict := range verdicts {
		table[status] = verdict
	}
	return &Formatter{verdicts: table}
}

// Format composes the message for rec. It has no side effects.
func (f *Formatter) Format(rec Record) (string, error) {
	if len(rec) == 0 {
		return "", ErrNoHomeworks
	}

	name, err := stringField(rec, KeyName)
	if err != nil {
		return "", err
	}
	status, err := stringField(rec, KeyStatus)
	if err != nil {
		return "", err
	}

	verdict, ok := f.verdicts[Status(status)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}

func stringField(rec Record, key string) (string, error) {
	raw, ok := rec[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, not a string", ErrMissingField, key, raw)
	}
	return value, nil
}
