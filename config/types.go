package config

type SourceType string

const (
	SourceXlsx     SourceType = "xlsx"
	SourceCSV      SourceType = "csv"
	SourceMySQL    SourceType = "mysql"
	SourcePostgres SourceType = "postgres"
	SourceSQLite   SourceType = "sqlite3"
	SourceDynamoDB SourceType = "dynamodb"
)

// Defaults applied by JobConfig.ApplyDefaults.
const (
	DefaultMonthToken  = "/3/"
	DefaultNamePattern = "${name}+${template}"
	DefaultMergedName  = "飞行记录合并表.xlsx"
	DefaultOutputDir   = "out"
	DefaultS3Prefix    = "excel-tool-output"
)

// DefaultMonthColumns are the template columns holding the month placeholder.
var DefaultMonthColumns = []string{"J", "M", "N", "O", "P"}

// DefaultColumnMapping writes A, B and C in place and moves field D to column G.
var DefaultColumnMapping = ColumnMappingConfig{A: "A", B: "B", C: "C", D: "G"}

// SourceConfig：source table config
type SourceConfig struct {
	Name    string     `json:"name"              yaml:"name"`
	Type    SourceType `json:"type"              yaml:"type"`
	Path    string     `json:"path,omitempty"    yaml:"path,omitempty"`  // xlsx / csv / sqlite3
	DSN     string     `json:"dsn,omitempty"     yaml:"dsn,omitempty"`   // mysql / postgres
	Table   string     `json:"table,omitempty"   yaml:"table,omitempty"` // sql / dynamodb
	Query   string     `json:"query,omitempty"   yaml:"query,omitempty"`
	Columns []string   `json:"columns,omitempty" yaml:"columns,omitempty"` // dynamodb attribute order
	SortBy  string     `json:"sortBy,omitempty"  yaml:"sortBy,omitempty"`
}

// ColumnMappingConfig：destination template column for source fields A-D
type ColumnMappingConfig struct {
	A string `json:"A" yaml:"A"`
	B string `json:"B" yaml:"B"`
	C string `json:"C" yaml:"C"`
	D string `json:"D" yaml:"D"`
}

// MonthRuleConfig：literal month placeholder and the columns scanned for it
type MonthRuleConfig struct {
	Token   string   `json:"token"   yaml:"token"`
	Columns []string `json:"columns" yaml:"columns"`
}

// OutputConfig：where and how generated files are written
type OutputConfig struct {
	Dir         string `json:"dir"                 yaml:"dir"`
	NamePattern string `json:"namePattern"         yaml:"namePattern"`
	MergedName  string `json:"mergedName"          yaml:"mergedName"`
	S3Bucket    string `json:"s3Bucket,omitempty"  yaml:"s3Bucket,omitempty"`
	S3Prefix    string `json:"s3Prefix,omitempty"  yaml:"s3Prefix,omitempty"`
}

// JobConfig：one mail-merge batch
type JobConfig struct {
	Name          string              `json:"name"          yaml:"name"`
	Template      string              `json:"template"      yaml:"template"`
	Source        string              `json:"source"        yaml:"source"`          // SourceConfig name
	Month         string              `json:"month,omitempty" yaml:"month,omitempty"` // "", "1".."12" or "$date:month:unit:offset"
	ColumnMapping ColumnMappingConfig `json:"columnMapping" yaml:"columnMapping"`
	MonthRule     *MonthRuleConfig    `json:"monthRule,omitempty" yaml:"monthRule,omitempty"`
	Output        OutputConfig        `json:"output"        yaml:"output"`
}

// ApplyDefaults fills every unset option with its default.
func (j *JobConfig) ApplyDefaults() {
	if j.ColumnMapping == (ColumnMappingConfig{}) {
		j.ColumnMapping = DefaultColumnMapping
	}
	if j.MonthRule == nil {
		j.MonthRule = &MonthRuleConfig{}
	}
	if j.MonthRule.Token == "" {
		j.MonthRule.Token = DefaultMonthToken
	}
	if len(j.MonthRule.Columns) == 0 {
		j.MonthRule.Columns = append([]string(nil), DefaultMonthColumns...)
	}
	if j.Output.Dir == "" {
		j.Output.Dir = DefaultOutputDir
	}
	if j.Output.NamePattern == "" {
		j.Output.NamePattern = DefaultNamePattern
	}
	if j.Output.MergedName == "" {
		j.Output.MergedName = DefaultMergedName
	}
	if j.Output.S3Prefix == "" {
		j.Output.S3Prefix = DefaultS3Prefix
	}
}

// Bundle is the on-disk layout of a configuration file.
type Bundle struct {
	Job     JobConfig      `json:"job"     yaml:"job"`
	Sources []SourceConfig `json:"sources" yaml:"sources"`
}
