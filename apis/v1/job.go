// Package v1 holds the ArchiveJob file format.
package v1

const ArchiveJobKind = "ArchiveJob"

type ArchiveJob struct {
	Kind     string         `yaml:"kind" json:"kind" validate:"required,eq=ArchiveJob"`
	Metadata Metadata       `yaml:"metadata" json:"metadata"`
	Spec     ArchiveJobSpec `yaml:"spec" json:"spec"`
}

type Metadata struct {
	Name string `yaml:"name" json:"name" validate:"required"`
}

type ArchiveJobSpec struct {
	// Concurrency bounds how many tasks run at once (default: 1).
	Concurrency int          `yaml:"concurrency,omitempty" json:"concurrency,omitempty" validate:"omitempty,min=1,max=64"`
	Codec       *CodecSpec   `yaml:"codec,omitempty" json:"codec,omitempty"`
	Tasks       []Task       `yaml:"tasks" json:"tasks" validate:"required,min=1,unique=ID,dive"`
	Publish     *PublishSpec `yaml:"publish,omitempty" json:"publish,omitempty"`
	Report      *ReportSpec  `yaml:"report,omitempty" json:"report,omitempty"`
}

// CodecSpec configures the zip codec shared by every task of the job.
type CodecSpec struct {
	// Method is one of deflate, store, zstd (default: deflate).
	Method string `yaml:"method,omitempty" json:"method,omitempty" validate:"omitempty,oneof=deflate store zstd"`
	// Level is the compression level, -2 (Huffman only) to 9. Nil uses the method default.
	Level *int `yaml:"level,omitempty" json:"level,omitempty" validate:"omitempty,min=-2,max=9"`
}

// Task sets exactly one of Compress or Extract.
type Task struct {
	ID       string        `yaml:"id" json:"id" validate:"required"`
	Compress *CompressTask `yaml:"compress,omitempty" json:"compress,omitempty" validate:"required_without=Extract,excluded_with=Extract"`
	Extract  *ExtractTask  `yaml:"extract,omitempty" json:"extract,omitempty" validate:"required_without=Compress,excluded_with=Compress"`
}

type CompressTask struct {
	Source string `yaml:"source" json:"source" validate:"required" template:""`
	// Destination is only honoured when it names an existing file.
	Destination string `yaml:"destination,omitempty" json:"destination,omitempty" template:""`
	// KeepSource leaves the source directory in place after archiving.
	KeepSource bool `yaml:"keep_source,omitempty" json:"keep_source,omitempty"`
}

type ExtractTask struct {
	Archive string `yaml:"archive" json:"archive" validate:"required" template:""`
	// Destination defaults to the archive path without its extension.
	Destination string `yaml:"destination,omitempty" json:"destination,omitempty" template:""`
}

// PublishSpec configures where produced archives are uploaded (one of the fields should be set).
type PublishSpec struct {
	S3         *S3Publish         `yaml:"s3,omitempty" json:"s3,omitempty" validate:"required_without=Filesystem,excluded_with=Filesystem"`
	Filesystem *FilesystemPublish `yaml:"filesystem,omitempty" json:"filesystem,omitempty" validate:"required_without=S3,excluded_with=S3"`
}

type S3Publish struct {
	Bucket         string         `yaml:"bucket" json:"bucket" validate:"required" template:""`
	Prefix         *string        `yaml:"prefix,omitempty" json:"prefix,omitempty" template:""`
	Region         *string        `yaml:"region,omitempty" json:"region,omitempty" template:""`
	Endpoint       *string        `yaml:"endpoint,omitempty" json:"endpoint,omitempty" template:""`
	ForcePathStyle bool           `yaml:"force_path_style,omitempty" json:"force_path_style,omitempty"`
	Credentials    *S3Credentials `yaml:"credentials,omitempty" json:"credentials,omitempty"`
}

type S3Credentials struct {
	AccessKeyID     string `yaml:"access_key_id" json:"access_key_id" validate:"required" template:""`
	SecretAccessKey string `yaml:"secret_access_key" json:"secret_access_key" validate:"required" template:""`
}

type FilesystemPublish struct {
	// Path defaults to the working directory.
	Path   *string `yaml:"path,omitempty" json:"path,omitempty" template:""`
	Prefix *string `yaml:"prefix,omitempty" json:"prefix,omitempty" template:""`
}

// ReportSpec configures the run report.
type ReportSpec struct {
	// Format is json or yaml (default: json).
	Format string `yaml:"format,omitempty" json:"format,omitempty" validate:"omitempty,oneof=json yaml"`
	// Indent applies to JSON. Empty = compact, "  " = 2 spaces, "\t" = tabs.
	Indent string `yaml:"indent,omitempty" json:"indent,omitempty"`
	// Path writes the report to a file. Empty writes to stdout.
	Path string `yaml:"path,omitempty" json:"path,omitempty" template:""`
	// Publish also uploads the report to the publish target.
	Publish bool `yaml:"publish,omitempty" json:"publish,omitempty"`
}
