// internal/domain/homework/homework.go
package homework

import "errors"

// Keys of a homework object in the review API response.
const (
	KeyHomeworks = "homeworks"
	KeyName      = "homework_name"
	KeyStatus    = "status"
)

// Status is a review verdict code reported by the API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

var (
	// ErrUnexpectedShape means the response is not {"homeworks": [...]}.
	ErrUnexpectedShape = errors.New("unexpected API response shape")
	// ErrNoHomeworks means the response holds no homework to report on.
	ErrNoHomeworks   = errors.New("no reviewed homework in response")
	ErrMissingField  = errors.New("homework record is missing a field")
	ErrUnknownStatus = errors.New("unknown homework status")
)

// Record is a single homework object as decoded from JSON.
// Fields are kept loosely typed so the formatter can report missing keys.
type Record map[string]any

// VerdictTable maps a status code to the sentence shown to the student.
type VerdictTable map[Status]string

// DefaultVerdicts returns the verdict sentences used by the bot.
func DefaultVerdicts() VerdictTable {
	return VerdictTable{
		StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
		StatusReviewing: "Работа взята на проверку ревьюером.",
		StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
	}
}
