package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/filedock/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-u string   upload endpoint path
//	-d string   download endpoint prefix
//	-s int      upload chunk size in bytes
//
// os.Args is filtered through flagx.FilterArgs so flags owned by other
// components pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-d", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.UploadEndpoint, "u", cfg.UploadEndpoint, "upload endpoint path")
	fs.StringVar(&cfg.DownloadEndpoint, "d", cfg.DownloadEndpoint, "download endpoint prefix")
	fs.Int64Var(&cfg.ChunkSize, "s", cfg.ChunkSize, "upload chunk size (bytes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
