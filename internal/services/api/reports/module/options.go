package module

import "backoffice/internal/platform/config"

// Options are the reports module settings
type Options struct {
	Locale      string
	DefaultPage int
	MaxPage     int
	IDLength    int

	// ArchiveURL is a directory or s3://bucket/prefix for pdfs saved outside a request
	ArchiveURL string
	S3Region   string
	S3Endpoint string

	// SeedPG copies the built in datasets into postgres on start
	SeedPG bool
}

// FromConfig reads CORE_API_REPORTS_* values
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("REPORTS_")
	return Options{
		Locale:      rc.MayString("LOCALE", "es"),
		DefaultPage: rc.MayIntIn("DEFAULT_PAGE", 50, 1, 1000),
		MaxPage:     rc.MayIntIn("MAX_PAGE", 500, 1, 1000),
		IDLength:    rc.MayIntIn("ID_LENGTH", 8, 4, 21),
		ArchiveURL:  rc.MayString("ARCHIVE", "exports"),
		S3Region:    rc.MayString("S3_REGION", ""),
		S3Endpoint:  rc.MayString("S3_ENDPOINT", ""),
		SeedPG:      rc.MayBool("SEED", true),
	}
}
