package systems

// SystemInfo describes a frame phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Scene or "output"
}

// SystemRegistry holds metadata about every frame phase so the HUD and perf
// tracker name them the same way.
type SystemRegistry struct {
	systems []SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds every frame phase, in the order a frame runs them.
func (r *SystemRegistry) registerDefaults() {
	// Digital scene
	r.Register(SystemInfo{ID: "background", Name: "Background", Description: "Red drift fill", Category: "digital"})
	r.Register(SystemInfo{ID: "digits", Name: "Digits", Description: "Scrolling binary column", Category: "digital"})
	r.Register(SystemInfo{ID: "eyes", Name: "Eyes", Description: "Eye lifecycle, drawing and population", Category: "digital"})
	r.Register(SystemInfo{ID: "ripples", Name: "Ripples", Description: "Blink rings", Category: "digital"})

	// Analog scene
	r.Register(SystemInfo{ID: "waves", Name: "Waves", Description: "Waveform traces and population", Category: "analog"})

	// Shared
	r.Register(SystemInfo{ID: "present", Name: "Present", Description: "Pushes the frame to the display", Category: "output"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Stats windows and CSV output", Category: "output"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// Categories returns all unique categories.
func (r *SystemRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, info := range r.systems {
		if !seen[info.Category] {
			seen[info.Category] = true
			cats = append(cats, info.Category)
		}
	}
	return cats
}
