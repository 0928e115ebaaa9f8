package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	ServiceCatalog   string   `json:"service_catalog" yaml:"service_catalog" toml:"service_catalog"`
	GroupsFile       string   `json:"groups_file" yaml:"groups_file" toml:"groups_file"`
	SpreadsheetID    string   `json:"spreadsheet_id" yaml:"spreadsheet_id" toml:"spreadsheet_id"`
	SpreadsheetRange string   `json:"spreadsheet_range" yaml:"spreadsheet_range" toml:"spreadsheet_range"`
	CredentialsFile  string   `json:"credentials_file" yaml:"credentials_file" toml:"credentials_file"`
	Source           string   `json:"source" yaml:"source" toml:"source"`
	Profile          string   `json:"profile" yaml:"profile" toml:"profile"`
	Region           string   `json:"region" yaml:"region" toml:"region"`
	AthenaDatabase   string   `json:"athena_database" yaml:"athena_database" toml:"athena_database"`
	AthenaTable      string   `json:"athena_table" yaml:"athena_table" toml:"athena_table"`
	AthenaOutputURI  string   `json:"athena_output_uri" yaml:"athena_output_uri" toml:"athena_output_uri"`
	LineItemTypes    []string `json:"line_item_types" yaml:"line_item_types" toml:"line_item_types"`
	DaysRange        int      `json:"days_range" yaml:"days_range" toml:"days_range"`
	UTCOffsetHours   *int     `json:"utc_offset_hours" yaml:"utc_offset_hours" toml:"utc_offset_hours"`
	TopN             int      `json:"top_n" yaml:"top_n" toml:"top_n"`
	YAxisFloor       float64  `json:"y_axis_floor" yaml:"y_axis_floor" toml:"y_axis_floor"`
	ServiceOrder     []string `json:"service_order" yaml:"service_order" toml:"service_order"`
	Format           string   `json:"format" yaml:"format" toml:"format"`
	Dir              string   `json:"dir" yaml:"dir" toml:"dir"`
	ArchiveBucket    string   `json:"archive_bucket" yaml:"archive_bucket" toml:"archive_bucket"`
	ArchivePrefix    string   `json:"archive_prefix" yaml:"archive_prefix" toml:"archive_prefix"`
	Timezone         string   `json:"timezone" yaml:"timezone" toml:"timezone"`
	Concurrency      int      `json:"concurrency" yaml:"concurrency" toml:"concurrency"`
}

// ServiceCatalog is the on-disk form of the service/category table.
// Categories is a list so that its order survives every file format; the
// legend is laid out in this order.
type ServiceCatalog struct {
	Services   map[string]ServiceDef `json:"services" yaml:"services" toml:"services"`
	Categories []CategoryDef         `json:"categories" yaml:"categories" toml:"categories"`
	Others     OthersDef             `json:"others" yaml:"others" toml:"others"`
	Hatches    []string              `json:"hatches" yaml:"hatches" toml:"hatches"`
}

// ServiceDef maps a raw service identifier to its display label and category.
type ServiceDef struct {
	Label    string `json:"label" yaml:"label" toml:"label"`
	Category string `json:"category" yaml:"category" toml:"category"`
}

// CategoryDef is one legend block and its color.
type CategoryDef struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Color string `json:"color" yaml:"color" toml:"color"`
}

// OthersDef styles the synthetic "Others" stack segment.
type OthersDef struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	Color string `json:"color" yaml:"color" toml:"color"`
	Hatch string `json:"hatch" yaml:"hatch" toml:"hatch"`
}

// GroupsFile is the on-disk form of the account group list, used instead of
// the spreadsheet when --groups-file is set.
type GroupsFile struct {
	Groups []GroupDef `json:"groups" yaml:"groups" toml:"groups"`
}

// GroupDef is a single group entry in a groups file.
type GroupDef struct {
	Name          string       `json:"name" yaml:"name" toml:"name"`
	TargetChannel string       `json:"target_channel" yaml:"target_channel" toml:"target_channel"`
	Accounts      []AccountDef `json:"accounts" yaml:"accounts" toml:"accounts"`
}

// AccountDef is an account id and its display name.
type AccountDef struct {
	ID   string `json:"id" yaml:"id" toml:"id"`
	Name string `json:"name" yaml:"name" toml:"name"`
}
