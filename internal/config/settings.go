package config

import (
	"github.com/spf13/viper"
	"github.com/talhabaig007/PhishStop/internal/nav"
)

// Protection policy keys. All default to enabled.
const (
	KeyRealTimeProtection = "protection.real_time"
	KeyBlockPages         = "protection.block_pages"
	KeyShowWarnings       = "protection.show_warnings"
)

// SetProtectionDefaults registers the default protection policy with viper.
// Called once during command initialization, before any config is read.
func SetProtectionDefaults() {
	viper.SetDefault(KeyRealTimeProtection, true)
	viper.SetDefault(KeyBlockPages, true)
	viper.SetDefault(KeyShowWarnings, true)
}

// ViperSettings exposes the protection policy as a nav.SettingsProvider.
// Values are read from viper on every call, so a config change applies to
// the next decision without a restart.
type ViperSettings struct{}

// Settings returns the current protection policy.
func (ViperSettings) Settings() nav.Settings {
	return nav.Settings{
		RealTimeProtection: viper.GetBool(KeyRealTimeProtection),
		BlockPages:         viper.GetBool(KeyBlockPages),
		ShowWarnings:       viper.GetBool(KeyShowWarnings),
	}
}
