package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile       string
	ServiceCatalog   string
	GroupsFile       string
	SpreadsheetID    string
	SpreadsheetRange string
	CredentialsFile  string
	Source           string
	Profile          string
	Region           string
	AthenaDatabase   string
	AthenaTable      string
	AthenaOutputURI  string
	LineItemTypes    []string
	DaysRange        int
	UTCOffsetHours   int
	TopN             int
	YAxisFloor       float64
	ServiceOrder     []string
	Format           string
	Dir              string
	SlackToken       string
	ArchiveBucket    string
	ArchivePrefix    string
	Timezone         string
	Concurrency      int
	DryRun           bool
}
