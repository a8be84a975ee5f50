// internal/domain/homework/verdict.go
package homework

import "fmt"

// Status is the review state of a homework as reported by the API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdicts maps a review status to the sentence sent to the user.
// A Verdicts value is built once at startup and never mutated afterwards.
type Verdicts map[Status]string

func DefaultVerdicts() Verdicts {
	return Verdicts{
		StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
		StatusReviewing: "Работа взята на проверку ревьюером.",
		StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
	}
}

// ParseStatus turns a single homework record into the notification text.
func (v Verdicts) ParseStatus(record any) (string, error) {
	hw, ok := record.(map[string]any)
	if !ok {
		return "", newError(KindTypeMismatch, "homework record is not an object, got %T", record)
	}

	rawStatus, ok := hw["status"]
	if !ok {
		return "", newError(KindMalformedResponse, `no "status" key in homework record`)
	}
	name, ok := hw["homework_name"]
	if !ok {
		return "", newError(KindMalformedResponse, `no "homework_name" key in homework record`)
	}

	status, _ := rawStatus.(string)
	verdict, ok := v[Status(status)]
	if !ok {
		return "", newError(KindMalformedResponse, "unexpected homework status %v", rawStatus)
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%v\". %s", name, verdict), nil
}
