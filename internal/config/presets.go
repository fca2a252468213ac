package config

// Presets are ready-made experiment setups selectable by name from the
// CLI. Each value is a complete Config.
var Presets = map[string]*Config{
	"balance": {
		Model:   ModelCorrect,
		Policy:  PolicyConfig{Name: "bangbang", Gain: 0.5},
		Episode: EpisodeConfig{MaxSteps: 1000, Runs: 1, Seed: 1},
	},
	"recover": {
		Model:     ModelCorrect,
		Policy:    PolicyConfig{Name: "bangbang", Gain: 0.5},
		Episode:   EpisodeConfig{MaxSteps: 1000, Runs: 1, Seed: 1},
		InitState: InitStateConfig{Angle: 0.1},
	},
	"freefall": {
		Model:     ModelCorrect,
		Policy:    PolicyConfig{Name: "none"},
		Episode:   EpisodeConfig{MaxSteps: 500, Runs: 1, Seed: 1},
		InitState: InitStateConfig{Angle: 0.05},
	},
	"random-walk": {
		Model:   ModelCorrect,
		Policy:  PolicyConfig{Name: "random", Seed: 1},
		Episode: EpisodeConfig{MaxSteps: 500, Runs: 20, Seed: 1},
	},
	"classic-bounce": {
		Model:     ModelClassic,
		Policy:    PolicyConfig{Name: "none"},
		Episode:   EpisodeConfig{MaxSteps: 500, Runs: 1, Seed: 1},
		InitState: InitStateConfig{Angle: 1.52, AngleVel: 0.1},
	},
	"infinite-track": {
		Model:   ModelCorrect,
		Physics: PhysicsConfig{InfiniteTrack: true},
		Policy:  PolicyConfig{Name: "right"},
		Episode: EpisodeConfig{MaxSteps: 500, Runs: 1, Seed: 1},
	},
}

// GetPreset returns a copy of the named preset so callers can adjust it
// without mutating the shared table.
func GetPreset(name string) (*Config, bool) {
	p, ok := Presets[name]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

// ListPresets returns the preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
