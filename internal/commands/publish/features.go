package publishcmd

// FeatureGates toggles publisher command families without unwiring handlers.
// A nil gate means enabled.
type FeatureGates struct {
	PublishEnabled   func() bool
	SyncEnabled      func() bool
	ProofreadEnabled func() bool
}

func (g FeatureGates) publishEnabled() bool {
	if g.PublishEnabled == nil {
		return true
	}
	return g.PublishEnabled()
}

func (g FeatureGates) syncEnabled() bool {
	if g.SyncEnabled == nil {
		return true
	}
	return g.SyncEnabled()
}

func (g FeatureGates) proofreadEnabled() bool {
	if g.ProofreadEnabled == nil {
		return true
	}
	return g.ProofreadEnabled()
}
