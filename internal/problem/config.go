package problem

// Config controls the LLMProvider.
type Config struct {
	// Validators run in order on every generated problem; the first
	// failure rejects it.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the standard settings. strictOptions adds the
// OptionsValidator, rejecting problems whose answer is not exactly one of
// the options.
func DefaultConfig(strictOptions bool) Config {
	cfg := Config{
		Validators:  []Validator{&StructuralValidator{}},
		MaxTokens:   1024,
		Temperature: 0.8,
	}
	if strictOptions {
		cfg.Validators = append(cfg.Validators, &OptionsValidator{})
	}
	return cfg
}
