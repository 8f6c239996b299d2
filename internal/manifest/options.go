package manifest

import (
	"github.com/quantmind-br/pkgfile-go/internal/domain"
	"github.com/quantmind-br/pkgfile-go/internal/utils"
)

// ServiceOptions contains options for the manifest service
type ServiceOptions struct {
	FileSystem domain.FileSystem
	Logger     *utils.Logger
	Format     domain.FormatOptions
}

func (o ServiceOptions) withDefaults() ServiceOptions {
	if o.FileSystem == nil {
		o.FileSystem = utils.NewOSFileSystem()
	}
	if o.Logger == nil {
		o.Logger = utils.NewNopLogger()
	}
	if o.Format.DefaultIndent == "" {
		o.Format.DefaultIndent = domain.DefaultIndent
	}
	return o
}
