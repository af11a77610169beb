// flags.go defines constants for CLI flag names shared across extensions.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

const (
	// Boolean flags

	FlagDryRun   = "dry-run"  // Preview without making changes
	FlagExact    = "exact"    // Exact tag matching
	FlagForce    = "force"    // Overwrite existing files
	FlagIDs      = "ids"      // Output ids only
	FlagLocal    = "local"    // Keep the database out of git
	FlagLong     = "long"     // Long format output
	FlagMarkdown = "markdown" // Markdown output
	FlagRaw      = "raw"      // Raw output without terminal rendering
	FlagShare    = "share"    // Commit the database with the project
	FlagTags     = "tags"     // Replace the whole tag set

	// String flags

	FlagAddr        = "addr"        // Listen address
	FlagAddTag      = "add-tag"     // Tag to add
	FlagAttr        = "attr"        // Attribute as key=description
	FlagDescription = "description" // Entity description
	FlagEntity      = "entity"      // Target entity id
	FlagField       = "field"       // Search scope
	FlagImage       = "image"       // Entity image URL
	FlagLocator     = "locator"     // Entity locator
	FlagName        = "name"        // Entity name
	FlagRmAttr      = "rm-attr"     // Attribute key to remove
	FlagRmTag       = "rm-tag"      // Tag to remove
	FlagTag         = "tag"         // Tag value
	FlagType        = "type"        // Entity type

	// Integer flags

	FlagLimit = "limit" // Limit number of results
	FlagSkip  = "skip"  // Results to skip
)
