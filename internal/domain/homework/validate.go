package homework

import "fmt"

// Latest checks the decoded API response and returns its first homework.
// The API lists the most recently updated homework first, so no sorting is done.
// An empty list yields ErrNoHomeworks rather than a zero Record.
func Latest(payload any) (Record, error) {
	body, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: response is %T, not an object", ErrUnexpectedShape, payload)
	}

	raw, ok := body[KeyHomeworks]
	if !ok {
		return nil, fmt.Errorf("%w: key %q is absent", ErrUnexpectedShape, KeyHomeworks)
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, not a list", ErrUnexpectedShape, KeyHomeworks, raw)
	}
	if len(list) == 0 {
		return nil, ErrNoHomeworks
	}

	first, ok := list[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: homework is %T, not an object", ErrUnexpectedShape, list[0])
	}
	return Record(first), nil
}
