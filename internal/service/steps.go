package service

// StepLevels maps each proficiency step to the two levels it spans.
// Loaded once, read-only at runtime.
var StepLevels = map[int][]string{
	1: {"A1", "A2"},
	2: {"B1", "B2"},
	3: {"C1", "C2"},
}

// SampleSize is how many questions an exam draws per step at most.
const SampleSize = 44

// MaxQuestionsPerStepLevel caps the bank size the admin CRUD enforces.
const MaxQuestionsPerStepLevel = 22

// Certification labels that never yield a certificate document.
const (
	CertFail = "Fail"
	CertNone = "No certification"
)

// CertDecision is the outcome of the certification policy: the label stored
// on the result and whether the taker may attempt the next step.
type CertDecision struct {
	Certification string
	Proceed       bool
}

// DecideCertification maps (step, percentage) to a certification decision.
// The boundaries are contractual: each bucket is closed on the left and open
// on the right, and step 3 folds everything from 50% up into one bucket with
// no proceed row. Unknown steps fall through to "No certification".
func DecideCertification(step int, percentage float64) CertDecision {
	if step == 1 {
		switch {
		case percentage < 25:
			return CertDecision{Certification: CertFail, Proceed: false}
		case percentage < 50:
			return CertDecision{Certification: "A1 certified", Proceed: false}
		case percentage < 75:
			return CertDecision{Certification: "A2 certified", Proceed: false}
		default:
			return CertDecision{Certification: "A2 certified", Proceed: true}
		}
	}
	if step == 2 {
		switch {
		case percentage < 25:
			return CertDecision{Certification: "Remain at A2", Proceed: false}
		case percentage < 50:
			return CertDecision{Certification: "B1 certified", Proceed: false}
		case percentage < 75:
			return CertDecision{Certification: "B2 certified", Proceed: false}
		default:
			return CertDecision{Certification: "B2 certified", Proceed: true}
		}
	}
	if step == 3 {
		switch {
		case percentage < 25:
			return CertDecision{Certification: "Remain at B2", Proceed: false}
		case percentage < 50:
			return CertDecision{Certification: "C1 certified", Proceed: false}
		default:
			return CertDecision{Certification: "C2 certified", Proceed: false}
		}
	}
	return CertDecision{Certification: CertNone, Proceed: false}
}
