package controls

// PanelState is what a control surface needs to render itself.
type PanelState struct {
	Readouts  []Readout `json:"readouts"`
	SaveLabel string    `json:"saveLabel"`
	Loading   string    `json:"loading,omitempty"` // empty when the loading overlay is hidden
}

// Range is a control's slider range.
type Range struct {
	Min, Max float32
}
