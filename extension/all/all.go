// Package all imports every built-in extension so each registers itself.
// Import order fixes command order in help output.
package all

import (
	_ "github.com/jpl-au/entlog/extension/core"
	_ "github.com/jpl-au/entlog/extension/entity"
	_ "github.com/jpl-au/entlog/extension/media"
	_ "github.com/jpl-au/entlog/extension/search"
	_ "github.com/jpl-au/entlog/extension/tag"
	_ "github.com/jpl-au/entlog/extension/transfer"
)
