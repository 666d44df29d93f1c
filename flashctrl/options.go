package flashctrl

// Config holds the controller configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// VerifyAfterErase enables read-back verification after each erase
	VerifyAfterErase bool

	// CreatorPages is the set of info pages frozen by
	// CreatorInfoPagesLockdown
	CreatorPages []InfoPage
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		VerifyAfterErase: true,
		CreatorPages:     DefaultCreatorPages(),
	}
}

// Option is a functional option for configuring the Controller.
type Option func(*Config)

// WithLogger sets a logger for controller operations.
//
// Example:
//
//	ctrl := flashctrl.New(array, flashctrl.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithVerifyAfterErase enables or disables automatic read-back
// verification after each erase operation. Default is true.
//
// Example:
//
//	ctrl := flashctrl.New(array, flashctrl.WithVerifyAfterErase(false))
func WithVerifyAfterErase(verify bool) Option {
	return func(c *Config) {
		c.VerifyAfterErase = verify
	}
}

// WithCreatorPages overrides the set of info pages frozen by
// CreatorInfoPagesLockdown. Invalid page ids are ignored.
//
// Example:
//
//	ctrl := flashctrl.New(array,
//	    flashctrl.WithCreatorPages(flashctrl.InfoPageCreatorSecret),
//	)
func WithCreatorPages(pages ...InfoPage) Option {
	return func(c *Config) {
		valid := make([]InfoPage, 0, len(pages))
		for _, p := range pages {
			if p.Valid() {
				valid = append(valid, p)
			}
		}
		c.CreatorPages = valid
	}
}
