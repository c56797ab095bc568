package contract

type Stage string

// The catalog is a fixed, ordered allowed-list, not a transition graph:
// any member may follow any other, so agents can revert a contract that
// was advanced by mistake. Ordering rules, if ever needed, belong here.
const (
	StageIntake               Stage = "intake"
	StageValuation            Stage = "valuation"
	StagePreparation          Stage = "preparation"
	StageMarketing            Stage = "marketing"
	StageViewings             Stage = "viewings"
	StageOffer                Stage = "offer"
	StageNegotiations         Stage = "negotiations"
	StagePreliminaryAgreement Stage = "preliminary-agreement"
	StageFinancing            Stage = "financing"
	StageNotary               Stage = "notary"
	StageClosing              Stage = "closing"
)

var stageCatalog = []Stage{
	StageIntake,
	StageValuation,
	StagePreparation,
	StageMarketing,
	StageViewings,
	StageOffer,
	StageNegotiations,
	StagePreliminaryAgreement,
	StageFinancing,
	StageNotary,
	StageClosing,
}

// Stages returns the catalog in its canonical order.
func Stages() []Stage {
	out := make([]Stage, len(stageCatalog))
	copy(out, stageCatalog)
	return out
}

func ValidStage(s Stage) bool {
	for _, c := range stageCatalog {
		if c == s {
			return true
		}
	}
	return false
}

// InitialStage is assigned automatically at contract creation.
func InitialStage() Stage { return stageCatalog[0] }

// FinalStage is the last catalog entry; reaching it does not change
// Contract.Status, which stays an independent field.
func FinalStage() Stage { return stageCatalog[len(stageCatalog)-1] }
